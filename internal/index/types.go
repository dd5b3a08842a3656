// Package index defines the contract with the semantic indexer: the entity
// tree and structure tree reported per compilation unit, point cursor queries,
// and the Adapter interface any indexing backend must satisfy.
package index

// Entity is one node of the declaration/reference tree reported by the
// semantic indexer for a compilation unit. Entities are plain recursive
// values with child lists; the tree is immutable once returned.
type Entity struct {
	// USR is the stable symbol identifier shared between a declaration and
	// every reference to it. Empty when the indexer omits it.
	USR  string `yaml:"usr"`
	Kind string `yaml:"kind"`
	Name string `yaml:"name"`

	// Line and Column are 1-based. Column 0 means the indexer could not
	// resolve a position for this entity.
	Line   int `yaml:"line"`
	Column int `yaml:"column"`

	// Implicit marks compiler-synthesized declarations.
	Implicit bool `yaml:"implicit"`

	// Attributes are declaration-level attribute markers (see attr constants).
	Attributes []string `yaml:"attributes"`

	// Related holds USRs of related declarations, e.g. a protocol requirement
	// this declaration provides a default implementation for.
	Related []string `yaml:"related"`

	Children []Entity `yaml:"children"`
}

// HasAttribute reports whether the entity carries the given attribute.
func (e *Entity) HasAttribute(attr string) bool {
	for _, a := range e.Attributes {
		if a == attr {
			return true
		}
	}
	return false
}

// HasRelated reports whether the entity carries the given related USR.
func (e *Entity) HasRelated(usr string) bool {
	for _, r := range e.Related {
		if r == usr {
			return true
		}
	}
	return false
}

// Accessibility is the visibility level the structural document service
// reports per declaration.
type Accessibility string

const (
	AccessPrivate     Accessibility = "private"
	AccessFilePrivate Accessibility = "fileprivate"
	AccessInternal    Accessibility = "internal"
	AccessPublic      Accessibility = "public"
	AccessOpen        Accessibility = "open"
)

// Exported reports whether the level is visible outside the declaring module.
func (a Accessibility) Exported() bool {
	return a == AccessPublic || a == AccessOpen
}

// StructureNode mirrors one declaration in a unit's syntactic structure.
// Children appear in source order and name offsets are unique within a unit.
type StructureNode struct {
	NameOffset    int64           `yaml:"name_offset"`
	Accessibility Accessibility   `yaml:"accessibility"`
	Children      []StructureNode `yaml:"children"`
}

// AccessibilityAt returns the accessibility of the declaration whose name
// sits exactly at offset, searching depth-first. The second return is false
// when no declaration matches.
func (n *StructureNode) AccessibilityAt(offset int64) (Accessibility, bool) {
	if n.NameOffset == offset {
		return n.Accessibility, true
	}
	for i := range n.Children {
		if acc, ok := n.Children[i].AccessibilityAt(offset); ok {
			return acc, true
		}
	}
	return "", false
}

// CursorInfo is the result of a point query at a declaration's name offset.
type CursorInfo struct {
	// IsOverride reports whether the declaration overrides a supertype member.
	IsOverride bool `yaml:"override"`

	// HasRelated reports whether the cursor query found related declarations,
	// the indexer's signal for protocol default-implementation relationships.
	HasRelated bool `yaml:"related"`

	// AnnotatedSignature is the fully annotated textual declaration, searched
	// for runtime-binding markers the entity tree does not expose.
	AnnotatedSignature string `yaml:"annotated"`
}
