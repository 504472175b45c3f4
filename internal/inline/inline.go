// Package inline parses the text of a single block into styled runs.
//
// Parsing is a fixed sequence of passes (bold, italic, code, image, link).
// Each pass rewrites only the runs that are still Plain, so content already
// claimed by an earlier pass, including code spans, is never rescanned.
package inline

import (
	"fmt"
	"strconv"
)

// Style is the formatting of a Run.
type Style uint8

const (
	Plain Style = iota
	Bold
	Italic
	Code
	Link
	Image
)

func (s Style) String() string {
	switch s {
	case Plain:
		return "plain"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Code:
		return "code"
	case Link:
		return "link"
	case Image:
		return "image"
	default:
		return "style(" + strconv.Itoa(int(s)) + ")"
	}
}

// Delimiters of the delimiter passes.
const (
	BoldDelimiter   = "**"
	ItalicDelimiter = "*"
	CodeDelimiter   = "`"
)

// Run is a span of text sharing one Style. Target carries the URL of Link and
// Image runs and is empty otherwise.
type Run struct {
	Content string
	Style   Style
	Target  string
}

func (r Run) String() string {
	if r.Target != "" {
		return fmt.Sprintf("Run(%q, %s, %q)", r.Content, r.Style, r.Target)
	}
	return fmt.Sprintf("Run(%q, %s)", r.Content, r.Style)
}

// PlainRun wraps text as a single Plain run.
func PlainRun(text string) Run { return Run{Content: text, Style: Plain} }

// Pass transforms a run list; it must only rewrite Plain runs.
type Pass func([]Run) ([]Run, error)

// Passes returns the inline passes in the order Parse applies them. Bold must
// run before italic so that "**" is not split on its first "*".
func Passes() []Pass {
	return []Pass{
		func(runs []Run) ([]Run, error) { return SplitDelimiter(runs, BoldDelimiter, Bold) },
		func(runs []Run) ([]Run, error) { return SplitDelimiter(runs, ItalicDelimiter, Italic) },
		func(runs []Run) ([]Run, error) { return SplitDelimiter(runs, CodeDelimiter, Code) },
		SplitImages,
		SplitLinks,
	}
}

// Parse turns text into runs. An unmatched delimiter fails the whole call with
// an *UnmatchedDelimiterError. Empty text yields no runs.
func Parse(text string) ([]Run, error) {
	if text == "" {
		return nil, nil
	}
	runs := []Run{PlainRun(text)}
	for _, pass := range Passes() {
		var err error
		if runs, err = pass(runs); err != nil {
			return nil, err
		}
	}
	return runs, nil
}
