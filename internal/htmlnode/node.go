// Package htmlnode provides the render-agnostic element tree produced by the
// markdown builder and its HTML serialization.
//
// A Node is one of two variants: a Leaf (optional tag, text, attributes) or a
// Container (mandatory tag, non-empty children, attributes). Both variants are
// serialized by a single recursive rule in Render.
package htmlnode

// Kind discriminates the two Node variants.
type Kind uint8

const (
	KindLeaf Kind = iota + 1
	KindContainer
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindContainer:
		return "container"
	default:
		return "invalid"
	}
}

// TagImage is the only tag allowed on a Leaf with empty text.
const TagImage = "img"

// Attribute is a single key/value pair of an element.
type Attribute struct {
	Key   string
	Value string
}

// Attributes is an ordered attribute list; serialization keeps insertion order.
type Attributes []Attribute

// Attrs builds Attributes from alternating key/value strings. A trailing key
// without a value is ignored.
func Attrs(kv ...string) Attributes {
	if len(kv) < 2 {
		return nil
	}
	out := make(Attributes, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, Attribute{Key: kv[i], Value: kv[i+1]})
	}
	return out
}

// Node is a single element of the output tree.
//
// Fields are exported so tests and tools can inspect a built tree; trees are
// not meant to be mutated after construction.
type Node struct {
	Kind     Kind
	Tag      string
	Text     string
	Children []*Node
	Attrs    Attributes
}

// NewLeaf constructs a Leaf. An empty tag yields a raw text leaf. Empty text
// is only accepted for img leaves.
func NewLeaf(tag, text string, attrs Attributes) (*Node, error) {
	n := &Node{Kind: KindLeaf, Tag: tag, Text: text, Attrs: attrs}
	if err := n.validate(); err != nil {
		return nil, err
	}
	return n, nil
}

// NewContainer constructs a Container. The tag is mandatory and at least one
// child is required.
func NewContainer(tag string, children []*Node, attrs Attributes) (*Node, error) {
	n := &Node{Kind: KindContainer, Tag: tag, Children: children, Attrs: attrs}
	if err := n.validate(); err != nil {
		return nil, err
	}
	return n, nil
}

// IsLeaf reports whether n is a Leaf.
func (n *Node) IsLeaf() bool { return n != nil && n.Kind == KindLeaf }

// IsContainer reports whether n is a Container.
func (n *Node) IsContainer() bool { return n != nil && n.Kind == KindContainer }

// validate checks the invariants of a single node (not its descendants).
func (n *Node) validate() error {
	switch n.Kind {
	case KindLeaf:
		if n.Text == "" && n.Tag != TagImage {
			return &BuildError{Kind: EmptyLeafText, Tag: n.Tag}
		}
	case KindContainer:
		if n.Tag == "" {
			return &BuildError{Kind: MissingTag}
		}
		if len(n.Children) == 0 {
			return &BuildError{Kind: EmptyContainer, Tag: n.Tag}
		}
		for _, c := range n.Children {
			if c == nil {
				return &BuildError{Kind: NilChild, Tag: n.Tag}
			}
		}
	default:
		return &BuildError{Kind: UnknownKind, Tag: n.Tag}
	}
	return nil
}
