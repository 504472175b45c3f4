// Package markdown turns a restricted Markdown document into an htmlnode tree
// and renders it to HTML.
//
// The supported dialect is block based: headings, fenced code, quotes, flat
// unordered and ordered lists, and paragraphs, with bold, italic, code,
// image and link spans inside textual blocks. Rendering is a pure function of
// the input; every failure aborts the whole document and no partial HTML is
// returned.
package markdown

import (
	"git.home.luguber.info/inful/mdsite/internal/blocks"
	"git.home.luguber.info/inful/mdsite/internal/htmlnode"
)

// Document is a parsed Markdown document.
type Document struct {
	Root   *htmlnode.Node
	Blocks []blocks.Block
}

// Parse segments, classifies and builds doc. An empty document (no blocks)
// fails with a document level EmptyContainer BuildError because the root
// container needs at least one child.
func Parse(doc string) (*Document, error) {
	classified := blocks.Parse(doc)

	children := make([]*htmlnode.Node, 0, len(classified))
	for i, b := range classified {
		n, err := buildBlock(b)
		if err != nil {
			return nil, annotate(err, i, b.Kind)
		}
		children = append(children, n)
	}

	root, err := htmlnode.NewContainer(TagRoot, children, nil)
	if err != nil {
		return nil, annotate(err, DocumentLevel, blocks.Paragraph)
	}
	return &Document{Root: root, Blocks: classified}, nil
}

// ParseDocument returns the node tree for doc without serializing it.
func ParseDocument(doc string) (*htmlnode.Node, error) {
	d, err := Parse(doc)
	if err != nil {
		return nil, err
	}
	return d.Root, nil
}

// Render converts doc to HTML.
func Render(doc string) (string, error) {
	d, err := Parse(doc)
	if err != nil {
		return "", err
	}
	return d.HTML()
}

// HTML serializes the document tree.
func (d *Document) HTML() (string, error) {
	out, err := d.Root.Render()
	if err != nil {
		return "", annotate(err, DocumentLevel, blocks.Paragraph)
	}
	return out, nil
}

// KindCounts returns the number of blocks per kind.
func (d *Document) KindCounts() map[blocks.Kind]int {
	counts := make(map[blocks.Kind]int, len(blocks.Kinds))
	for _, b := range d.Blocks {
		counts[b.Kind]++
	}
	return counts
}
