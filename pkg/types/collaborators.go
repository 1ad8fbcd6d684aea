package types

import "reflect"

// Eligibility encodes the layout and shape rules that decide whether a type
// may be registered in each catalog namespace. The catalog treats these
// predicates as correct and only calls them; the default implementation
// lives in internal/layout.
//
// Each check returns nil when the type is supported and a descriptive error
// naming the offending shape otherwise.
type Eligibility interface {
	// CheckComponentData decides whether t is representable as plain
	// component data.
	CheckComponentData(t reflect.Type) error

	// CheckEngineObject decides whether t, already known to embed the
	// object-model base, is representable as a component.
	CheckEngineObject(t reflect.Type) error

	// CheckSystem decides whether t is registrable as a system. For the
	// value-type kind t is a struct type; for the reference-type kind t
	// is a pointer type.
	CheckSystem(t reflect.Type) error
}

// Layout computes identity and size facts about a type. Deterministic given
// a type: identical inputs yield identical outputs across runs and
// processes.
type Layout interface {
	// StableHash returns a 64-bit fingerprint of the type's shape.
	StableHash(t reflect.Type) uint64

	// ByteSize returns the in-memory size of t, or SizeNotApplicable when
	// the layout is host-managed.
	ByteSize(t reflect.Type) int

	// HasManagedFields reports whether t's storage requires managed
	// fields (pointers, maps, slices, strings, interfaces, channels, or
	// functions) anywhere in its field tree.
	HasManagedFields(t reflect.Type) bool
}
