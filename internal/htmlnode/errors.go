package htmlnode

import "fmt"

// BuildErrorKind enumerates tree invariant violations.
type BuildErrorKind string

const (
	// EmptyContainer: a Container without children.
	EmptyContainer BuildErrorKind = "empty_container"
	// MissingTag: a Container without a tag.
	MissingTag BuildErrorKind = "missing_tag"
	// EmptyLeafText: a non-img Leaf without text.
	EmptyLeafText BuildErrorKind = "empty_leaf_text"
	// NilChild: a Container holding a nil child.
	NilChild BuildErrorKind = "nil_child"
	// UnknownKind: a Node whose Kind is neither leaf nor container.
	UnknownKind BuildErrorKind = "unknown_kind"
)

// BuildError reports a node that violates the tree invariants, either at
// construction or at serialization time.
type BuildError struct {
	Kind BuildErrorKind
	Tag  string
}

func (e *BuildError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("invalid node: %s", e.Kind)
	}
	return fmt.Sprintf("invalid node <%s>: %s", e.Tag, e.Kind)
}

// IsStructural reports whether the error concerns container shape (missing
// tag or children) rather than leaf content.
func (e *BuildError) IsStructural() bool {
	return e.Kind != EmptyLeafText
}
