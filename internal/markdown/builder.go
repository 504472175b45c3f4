package markdown

import (
	"strconv"
	"strings"
	"unicode"

	"git.home.luguber.info/inful/mdsite/internal/blocks"
	"git.home.luguber.info/inful/mdsite/internal/htmlnode"
	"git.home.luguber.info/inful/mdsite/internal/inline"
)

// Element tags emitted by the builder.
const (
	TagRoot       = "div"
	TagParagraph  = "p"
	TagPre        = "pre"
	TagCode       = "code"
	TagBlockquote = "blockquote"
	TagUL         = "ul"
	TagOL         = "ol"
	TagLI         = "li"
	TagBold       = "b"
	TagItalic     = "i"
	TagLink       = "a"
)

// buildBlock converts one classified block into its top-level node.
func buildBlock(b blocks.Block) (*htmlnode.Node, error) {
	switch b.Kind {
	case blocks.Heading:
		return buildHeading(b)
	case blocks.CodeBlock:
		return buildCode(b)
	case blocks.QuoteBlock:
		return buildQuote(b)
	case blocks.UnorderedList:
		return buildList(b, TagUL, func(int) string { return blocks.BulletMarker })
	case blocks.OrderedList:
		return buildList(b, TagOL, blocks.OrdinalPrefix)
	default:
		return textContainer(TagParagraph, b.Text)
	}
}

// Heading text is emitted literally; it does not go through the inline parser.
func buildHeading(b blocks.Block) (*htmlnode.Node, error) {
	text := strings.TrimPrefix(b.Text, strings.Repeat("#", b.Level)+" ")
	return htmlnode.NewLeaf(headingTag(b.Level), text, nil)
}

func isInfoEnd(r rune) bool {
	return r == '`' || unicode.IsSpace(r)
}

func headingTag(level int) string {
	return "h" + strconv.Itoa(level)
}

// buildCode keeps everything between the opening and the closing fence line,
// including the newline that ends the opening fence. The first word of the
// info string, cut at whitespace or a backtick, becomes a language class on
// the code element.
func buildCode(b blocks.Block) (*htmlnode.Node, error) {
	first := strings.IndexByte(b.Text, '\n')
	last := strings.LastIndexByte(b.Text, '\n')
	body := b.Text[first : last+1]

	var attrs htmlnode.Attributes
	info := strings.TrimSpace(strings.TrimPrefix(b.Text[:first], blocks.Fence))
	if end := strings.IndexFunc(info, isInfoEnd); end >= 0 {
		info = info[:end]
	}
	if info != "" {
		attrs = htmlnode.Attrs("class", "language-"+info)
	}

	code, err := htmlnode.NewLeaf(TagCode, body, attrs)
	if err != nil {
		return nil, err
	}
	return htmlnode.NewContainer(TagPre, []*htmlnode.Node{code}, nil)
}

func buildQuote(b blocks.Block) (*htmlnode.Node, error) {
	lines := b.Lines()
	for i, line := range lines {
		line = strings.TrimPrefix(line, blocks.QuoteMarker)
		lines[i] = strings.TrimPrefix(line, " ")
	}
	return textContainer(TagBlockquote, strings.Join(lines, "\n"))
}

func buildList(b blocks.Block, tag string, marker func(int) string) (*htmlnode.Node, error) {
	lines := b.Lines()
	items := make([]*htmlnode.Node, 0, len(lines))
	for i, line := range lines {
		text := strings.TrimPrefix(line, marker(i))
		text = strings.TrimPrefix(text, " ")
		item, err := textContainer(TagLI, text)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return htmlnode.NewContainer(tag, items, nil)
}

// textContainer inline-parses text and wraps the resulting nodes in tag.
func textContainer(tag, text string) (*htmlnode.Node, error) {
	children, err := inlineNodes(text)
	if err != nil {
		return nil, err
	}
	return htmlnode.NewContainer(tag, children, nil)
}

func inlineNodes(text string) ([]*htmlnode.Node, error) {
	runs, err := inline.Parse(text)
	if err != nil {
		return nil, err
	}
	nodes := make([]*htmlnode.Node, 0, len(runs))
	for _, run := range runs {
		n, err := RunToNode(run)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// RunToNode maps an inline run to its leaf node.
func RunToNode(run inline.Run) (*htmlnode.Node, error) {
	switch run.Style {
	case inline.Bold:
		return htmlnode.NewLeaf(TagBold, run.Content, nil)
	case inline.Italic:
		return htmlnode.NewLeaf(TagItalic, run.Content, nil)
	case inline.Code:
		return htmlnode.NewLeaf(TagCode, run.Content, nil)
	case inline.Link:
		return htmlnode.NewLeaf(TagLink, run.Content, htmlnode.Attrs("href", run.Target))
	case inline.Image:
		return htmlnode.NewLeaf(htmlnode.TagImage, "", htmlnode.Attrs("src", run.Target, "alt", run.Content))
	default:
		return htmlnode.NewLeaf("", run.Content, nil)
	}
}
