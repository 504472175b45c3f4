// Package frontmatter separates YAML frontmatter from page bodies.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Meta holds the frontmatter fields the publisher understands. Unknown keys
// are kept in Extra.
type Meta struct {
	Title string         `yaml:"title"`
	Draft bool           `yaml:"draft"`
	Extra map[string]any `yaml:",inline"`
}

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a delimiter line, had is false and
// body is the full input. Both LF and CRLF line endings are accepted.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := newlineOf(content)
	open := []byte(delimiter + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	rest := content[start:]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], true, nil
	}
	if bytes.Equal(rest, []byte(delimiter)) {
		return []byte{}, []byte{}, true, nil
	}

	closeSeq := []byte(nl + delimiter + nl)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		// A closing delimiter on the last line has no trailing newline.
		if bytes.HasSuffix(rest, []byte(nl+delimiter)) {
			return rest[:len(rest)-len(delimiter)], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	return rest[:idx+len(nl)], rest[idx+len(closeSeq):], true, nil
}

// Parse decodes raw YAML frontmatter (without delimiters).
func Parse(frontmatter []byte) (Meta, error) {
	var meta Meta
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return meta, nil
	}
	if err := yaml.Unmarshal(frontmatter, &meta); err != nil {
		return Meta{}, fmt.Errorf("invalid frontmatter: %w", err)
	}
	return meta, nil
}

// Read splits content and decodes its frontmatter in one step.
func Read(content []byte) (Meta, []byte, []byte, error) {
	fm, body, _, err := Split(content)
	if err != nil {
		return Meta{}, nil, nil, err
	}
	meta, err := Parse(fm)
	if err != nil {
		return Meta{}, nil, nil, err
	}
	return meta, fm, body, nil
}

func newlineOf(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
