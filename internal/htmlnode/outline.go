package htmlnode

import (
	"fmt"
	"strconv"
	"strings"
)

// Outline returns an indented, line-per-node description of the tree, used by
// the CLI tree command and in test failure output.
func (n *Node) Outline() string {
	var b strings.Builder
	n.outline(&b, 0)
	return b.String()
}

func (n *Node) outline(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	if n == nil {
		fmt.Fprintf(b, "%s<nil>\n", indent)
		return
	}

	label := n.Tag
	if label == "" {
		label = "#text"
	}
	b.WriteString(indent)
	b.WriteString(label)
	if len(n.Attrs) > 0 {
		b.WriteString(" [")
		b.WriteString(n.Attrs.HTML())
		b.WriteByte(']')
	}
	if n.IsLeaf() && n.Text != "" {
		b.WriteByte(' ')
		b.WriteString(strconv.Quote(n.Text))
	}
	b.WriteByte('\n')

	for _, c := range n.Children {
		c.outline(b, depth+1)
	}
}

// Walk visits n and its descendants depth-first in document order. Returning
// false from fn stops descent into that node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) || !n.IsContainer() {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
