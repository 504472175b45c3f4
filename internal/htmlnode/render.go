package htmlnode

import (
	"io"
	"strings"
)

// Render serializes n and all of its descendants to HTML. Text is emitted
// verbatim. Any invariant violation anywhere in the tree fails the whole call.
func (n *Node) Render() (string, error) {
	var b strings.Builder
	if err := n.render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteTo writes the serialized tree to w. Nothing is written on error.
func (n *Node) WriteTo(w io.Writer) (int64, error) {
	s, err := n.Render()
	if err != nil {
		return 0, err
	}
	written, err := io.WriteString(w, s)
	return int64(written), err
}

func (n *Node) render(b *strings.Builder) error {
	if n == nil {
		return &BuildError{Kind: NilChild}
	}
	if err := n.validate(); err != nil {
		return err
	}

	switch n.Kind {
	case KindLeaf:
		if n.Tag == "" {
			b.WriteString(n.Text)
			return nil
		}
		openTag(b, n.Tag, n.Attrs)
		b.WriteString(n.Text)
		closeTag(b, n.Tag)
	case KindContainer:
		openTag(b, n.Tag, n.Attrs)
		for _, c := range n.Children {
			if err := c.render(b); err != nil {
				return err
			}
		}
		closeTag(b, n.Tag)
	}
	return nil
}

func openTag(b *strings.Builder, tag string, attrs Attributes) {
	b.WriteByte('<')
	b.WriteString(tag)
	if len(attrs) > 0 {
		b.WriteByte(' ')
		b.WriteString(attrs.HTML())
	}
	b.WriteByte('>')
}

func closeTag(b *strings.Builder, tag string) {
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteByte('>')
}

// HTML renders the attributes as space-joined key="value" pairs in insertion
// order. An empty list renders as "".
func (a Attributes) HTML() string {
	if len(a) == 0 {
		return ""
	}
	parts := make([]string, 0, len(a))
	for _, attr := range a {
		parts = append(parts, attr.Key+`="`+attr.Value+`"`)
	}
	return strings.Join(parts, " ")
}
