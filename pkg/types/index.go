package types

// TypeIndex is the dense integer identity assigned to a discovered type.
// Indices are assigned monotonically in discovery order, are unique per
// distinct type, and are never renumbered within a catalog generation.
type TypeIndex int32

// InvalidTypeIndex is returned by lookups for types the catalog does not know.
// It is never a valid table position.
const InvalidTypeIndex TypeIndex = -1

// Valid reports whether the index refers to a registered type.
func (i TypeIndex) Valid() bool {
	return i >= 0
}

// SizeNotApplicable is the byte-size sentinel recorded for types whose layout
// is host-managed (reference-type systems, managed component data).
const SizeNotApplicable = -1
