// Package blocks splits a Markdown document into blank-line separated blocks
// and classifies each block into its structural kind.
//
// Blank lines inside fenced code are treated as block separators like any
// other blank line; a fence containing one is split into separate blocks.
package blocks

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Kind is the structural category of a block.
type Kind uint8

const (
	Paragraph Kind = iota
	Heading
	CodeBlock
	QuoteBlock
	UnorderedList
	OrderedList
)

func (k Kind) String() string {
	switch k {
	case Paragraph:
		return "paragraph"
	case Heading:
		return "heading"
	case CodeBlock:
		return "code"
	case QuoteBlock:
		return "quote"
	case UnorderedList:
		return "unordered_list"
	case OrderedList:
		return "ordered_list"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Kinds lists every Kind in classification precedence order (Paragraph last).
var Kinds = []Kind{Heading, CodeBlock, QuoteBlock, UnorderedList, OrderedList, Paragraph}

const (
	// Fence opens and closes a code block.
	Fence = "```"
	// QuoteMarker prefixes every line of a quote block.
	QuoteMarker = ">"
	// BulletMarker prefixes every line of an unordered list.
	BulletMarker = "- "
	// MaxHeadingLevel is the deepest heading recognised.
	MaxHeadingLevel = 6
)

// Block is one classified block of a document. Level is set for headings only.
type Block struct {
	Text  string
	Kind  Kind
	Level int
}

// Lines returns the block text split on newlines.
func (b Block) Lines() []string {
	return strings.Split(b.Text, "\n")
}

var (
	separator = regexp.MustCompile(`\n\s*\n`)
	heading   = regexp.MustCompile(`^(#{1,6}) `)
)

// Segment splits doc on blank lines and returns the trimmed, non-empty blocks
// in document order. Internal newlines and line-leading characters are kept.
func Segment(doc string) []string {
	doc = normalizeNewlines(doc)
	parts := separator.Split(doc, -1)

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// StartLines returns the 1-based line on which each segment returned by
// Segment begins.
func StartLines(doc string) []int {
	doc = normalizeNewlines(doc)

	var lines []int
	emit := func(offset, end int) {
		part := doc[offset:end]
		if strings.TrimSpace(part) == "" {
			return
		}
		start := offset + len(part) - len(strings.TrimLeftFunc(part, unicode.IsSpace))
		lines = append(lines, 1+strings.Count(doc[:start], "\n"))
	}

	pos := 0
	for _, loc := range separator.FindAllStringIndex(doc, -1) {
		emit(pos, loc[0])
		pos = loc[1]
	}
	emit(pos, len(doc))
	return lines
}

// Classify determines the kind of a single block. Rules are checked in
// precedence order and the first match wins; Paragraph is the fallback.
func Classify(text string) Block {
	b := Block{Text: text, Kind: Paragraph}

	if m := heading.FindStringSubmatch(text); m != nil {
		b.Kind = Heading
		b.Level = len(m[1])
		return b
	}

	lines := strings.Split(text, "\n")
	switch {
	case isCodeBlock(lines):
		b.Kind = CodeBlock
	case allHavePrefix(lines, QuoteMarker):
		b.Kind = QuoteBlock
	case allHavePrefix(lines, BulletMarker):
		b.Kind = UnorderedList
	case isOrderedList(lines):
		b.Kind = OrderedList
	}
	return b
}

// Parse segments doc and classifies every block.
func Parse(doc string) []Block {
	segments := Segment(doc)
	out := make([]Block, 0, len(segments))
	for _, s := range segments {
		out = append(out, Classify(s))
	}
	return out
}

// OrdinalPrefix returns the marker line i (0-based) of an ordered list must
// start with.
func OrdinalPrefix(i int) string {
	return strconv.Itoa(i+1) + "."
}

func isCodeBlock(lines []string) bool {
	return len(lines) > 1 &&
		strings.HasPrefix(lines[0], Fence) &&
		strings.HasPrefix(lines[len(lines)-1], Fence)
}

func allHavePrefix(lines []string, prefix string) bool {
	for _, line := range lines {
		if !strings.HasPrefix(line, prefix) {
			return false
		}
	}
	return true
}

func isOrderedList(lines []string) bool {
	for i, line := range lines {
		if !strings.HasPrefix(line, OrdinalPrefix(i)) {
			return false
		}
	}
	return true
}

func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
