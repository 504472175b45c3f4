package lint

import (
	"bytes"
	"fmt"

	gmast "github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// Rule identifiers.
const (
	RuleNestedList     = "nested-list"
	RuleRawHTML        = "raw-html"
	RuleTable          = "table"
	RuleFootnote       = "footnote"
	RuleFenceBlankLine = "fence-blank-line"
	RuleOrderedStart   = "ordered-list-start"
	RuleBulletMarker   = "bullet-marker"
	RuleSetextHeading  = "setext-heading"
	RuleDialect        = "dialect"
	RuleEmptyDocument  = "empty-document"
	RuleFrontmatter    = "frontmatter"
)

// nodeRule inspects one CommonMark AST node. check returns a message when the
// node uses a construct the restricted dialect renders differently.
type nodeRule struct {
	name     string
	severity Severity
	check    func(n gmast.Node, src []byte) (string, bool)
}

var nodeRules = []nodeRule{
	{RuleNestedList, SeverityError, checkNestedList},
	{RuleRawHTML, SeverityWarning, checkRawHTML},
	{RuleTable, SeverityWarning, checkTable},
	{RuleFootnote, SeverityWarning, checkFootnote},
	{RuleFenceBlankLine, SeverityError, checkFenceBlankLine},
	{RuleOrderedStart, SeverityWarning, checkOrderedStart},
	{RuleBulletMarker, SeverityWarning, checkBulletMarker},
	{RuleSetextHeading, SeverityWarning, checkSetextHeading},
}

func checkNestedList(n gmast.Node, _ []byte) (string, bool) {
	if _, ok := n.(*gmast.List); !ok {
		return "", false
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		if _, ok := p.(*gmast.List); ok {
			return "nested lists are not supported; the inner list is rendered as item text", true
		}
	}
	return "", false
}

func checkRawHTML(n gmast.Node, _ []byte) (string, bool) {
	switch n.(type) {
	case *gmast.HTMLBlock, *gmast.RawHTML:
		return "raw HTML is emitted verbatim as text", true
	}
	return "", false
}

func checkTable(n gmast.Node, _ []byte) (string, bool) {
	if _, ok := n.(*east.Table); ok {
		return "tables are not supported; the block is rendered as a paragraph", true
	}
	return "", false
}

func checkFootnote(n gmast.Node, _ []byte) (string, bool) {
	switch n.(type) {
	case *east.Footnote:
		return "footnote definitions are not supported", true
	case *east.FootnoteLink:
		return "footnote references are not supported", true
	}
	return "", false
}

func checkFenceBlankLine(n gmast.Node, src []byte) (string, bool) {
	fcb, ok := n.(*gmast.FencedCodeBlock)
	if !ok {
		return "", false
	}
	lines := fcb.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		if len(bytes.TrimSpace(seg.Value(src))) == 0 {
			return "fenced code containing a blank line is split into separate blocks", true
		}
	}
	return "", false
}

func checkOrderedStart(n gmast.Node, _ []byte) (string, bool) {
	l, ok := n.(*gmast.List)
	if !ok || !l.IsOrdered() || l.Start == 1 {
		return "", false
	}
	return fmt.Sprintf("ordered list starts at %d; lists must be numbered 1, 2, 3", l.Start), true
}

func checkBulletMarker(n gmast.Node, _ []byte) (string, bool) {
	l, ok := n.(*gmast.List)
	if !ok || l.IsOrdered() || l.Marker == '-' {
		return "", false
	}
	return fmt.Sprintf("bullet marker %q is not recognised; use \"- \"", l.Marker), true
}

func checkSetextHeading(n gmast.Node, src []byte) (string, bool) {
	h, ok := n.(*gmast.Heading)
	if !ok || h.Lines().Len() == 0 {
		return "", false
	}
	start := h.Lines().At(0).Start
	lineStart := bytes.LastIndexByte(src[:start], '\n') + 1
	if bytes.HasPrefix(bytes.TrimLeft(src[lineStart:start], " >"), []byte("#")) {
		return "", false
	}
	return "setext headings are rendered as paragraphs; use \"# \"", true
}

// lineOf returns the 1-based line of the first source byte covered by n or
// its closest ancestor with a position, or 0 when none is known.
func lineOf(n gmast.Node, src []byte) int {
	for cur := n; cur != nil; cur = cur.Parent() {
		if off := firstOffset(cur); off >= 0 {
			return 1 + bytes.Count(src[:off], []byte("\n"))
		}
	}
	return 0
}

func firstOffset(n gmast.Node) int {
	switch v := n.(type) {
	case *gmast.Text:
		return v.Segment.Start
	case *gmast.RawHTML:
		if v.Segments.Len() > 0 {
			return v.Segments.At(0).Start
		}
	}
	if n.Type() == gmast.TypeBlock && n.Lines().Len() > 0 {
		return n.Lines().At(0).Start
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if off := firstOffset(c); off >= 0 {
			return off
		}
	}
	return -1
}
