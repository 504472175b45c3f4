package markdown

import (
	"errors"
	"fmt"

	"git.home.luguber.info/inful/mdsite/internal/blocks"
	"git.home.luguber.info/inful/mdsite/internal/htmlnode"
	"git.home.luguber.info/inful/mdsite/internal/inline"
)

// DocumentLevel is the BlockIndex reported for failures not tied to a block.
const DocumentLevel = -1

// ParseErrorKind classifies inline parse failures.
type ParseErrorKind string

const (
	// UnmatchedDelimiter: an opening delimiter with no closing partner.
	UnmatchedDelimiter ParseErrorKind = "unmatched_delimiter"
)

// ParseError reports an inline parse failure and the block it occurred in.
type ParseError struct {
	Kind       ParseErrorKind
	Delimiter  string
	BlockIndex int
	Err        error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("block %d: %s %q", e.BlockIndex, e.Kind, e.Delimiter)
}

func (e *ParseError) Unwrap() error { return e.Err }

// BuildError reports a tree invariant violation and the block that caused it.
type BuildError struct {
	Kind       htmlnode.BuildErrorKind
	BlockIndex int
	BlockKind  blocks.Kind
	Err        error
}

func (e *BuildError) Error() string {
	if e.BlockIndex == DocumentLevel {
		return fmt.Sprintf("document: %v", e.Err)
	}
	return fmt.Sprintf("block %d (%s): %v", e.BlockIndex, e.BlockKind, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// BlockIndexOf returns the block index carried by a ParseError or BuildError
// anywhere in err's chain.
func BlockIndexOf(err error) (int, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.BlockIndex, true
	}
	var be *BuildError
	if errors.As(err, &be) {
		return be.BlockIndex, true
	}
	return 0, false
}

// annotate attaches the block position to errors coming out of the inline
// parser or the node constructors. Other errors are returned unchanged.
func annotate(err error, index int, kind blocks.Kind) error {
	if err == nil {
		return nil
	}
	var ude *inline.UnmatchedDelimiterError
	if errors.As(err, &ude) {
		return &ParseError{Kind: UnmatchedDelimiter, Delimiter: ude.Delimiter, BlockIndex: index, Err: err}
	}
	var nbe *htmlnode.BuildError
	if errors.As(err, &nbe) {
		return &BuildError{Kind: nbe.Kind, BlockIndex: index, BlockKind: kind, Err: err}
	}
	return err
}
