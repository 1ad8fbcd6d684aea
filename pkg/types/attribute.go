package types

import "reflect"

// AttributeKind identifies one kind of declaration a module or type can carry.
type AttributeKind string

// Recognized attribute kinds.
const (
	// AttrWriteGroup declares that the annotated type's accesses conflict
	// with the target type. Conflicts are symmetric: one side declaring is
	// enough for both to observe the conflict.
	AttrWriteGroup AttributeKind = "write-group"

	// Ordering declarations consumed by the scheduler.
	AttrUpdateBefore  AttributeKind = "update-before"
	AttrUpdateAfter   AttributeKind = "update-after"
	AttrUpdateInGroup AttributeKind = "update-in-group"

	// AttrWorldFilter assigns explicit WorldFilterFlags to a system,
	// overriding inheritance through its group-membership chain.
	AttrWorldFilter AttributeKind = "world-filter"

	// Module-level declarations registering concrete generic
	// instantiations that module scanning cannot see on its own.
	AttrRegisterGenericComponent AttributeKind = "register-generic-component"
	AttrRegisterGenericSystem    AttributeKind = "register-generic-system"

	// AttrDisableAutoCreation suppresses automatic instantiation of the
	// annotated system at world creation.
	AttrDisableAutoCreation AttributeKind = "disable-auto-creation"

	// AttrEarlyInit declares, at module level, that the module exposes an
	// early-init entry point to be invoked after a successful rebuild.
	AttrEarlyInit AttributeKind = "early-init"
)

// Attribute is one declaration attached to a module or to a type within a
// module. Target carries the referenced type for kinds that name one
// (write-group, ordering, generic registration) and is nil otherwise.
// Filter is meaningful only for AttrWorldFilter.
type Attribute struct {
	Kind   AttributeKind
	Target reflect.Type
	Filter WorldFilterFlags
}

// IsOrdering reports whether the attribute is one of the ordering kinds
// recorded in a system's attribute table.
func (a Attribute) IsOrdering() bool {
	switch a.Kind {
	case AttrUpdateBefore, AttrUpdateAfter, AttrUpdateInGroup:
		return true
	}
	return false
}

// ResolvedAttribute is an ordering declaration with its target resolved to
// the final index space. Entries whose target is not a registered system
// are dropped during resolution and reported, never stored with an invalid
// index.
type ResolvedAttribute struct {
	Kind        AttributeKind
	TargetIndex TypeIndex
}
