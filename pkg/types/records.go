package types

import "reflect"

// ComponentTypeRecord holds the catalog's metadata for one component type.
// Records are immutable once the initialization call that created them
// returns; the descendant-count back-fill completes before that point.
type ComponentTypeRecord struct {
	Index  TypeIndex    // dense catalog identity
	Source reflect.Type // the discovered Go type
	Name   string       // fully qualified type name

	// ByteSize is the in-memory size of the component data, or
	// SizeNotApplicable when the type contains managed fields and its
	// layout is host-controlled.
	ByteSize int

	// ContentHash is a stable 64-bit fingerprint of the type's shape,
	// identical across runs for an unchanged type.
	ContentHash uint64

	// EngineObject marks components discovered through the host
	// object-model base type rather than the plain component-data path.
	EngineObject bool

	// TreePosition and DescendantCount encode the component hierarchy.
	// The pre-order positions of a subtree form the contiguous half-open
	// range [TreePosition, TreePosition+DescendantCount+1); a type B is in
	// the subtree rooted at A exactly when B's position lies inside A's
	// range. Positions are recomputed on every initialization; indices
	// are not.
	TreePosition    int32
	DescendantCount int32
}

// SystemTypeFlags classifies a system type for the scheduler.
type SystemTypeFlags uint32

const (
	// SystemFlagValueType marks systems registered as struct types. Their
	// state is unmanaged and the catalog records a concrete byte size.
	SystemFlagValueType SystemTypeFlags = 1 << iota

	// SystemFlagManagedFields marks systems whose state contains pointers,
	// maps, slices, strings, interfaces, channels, or functions.
	SystemFlagManagedFields

	// SystemFlagGroup marks system groups, the container systems other
	// systems declare membership in via UpdateInGroup.
	SystemFlagGroup

	// SystemFlagDisableAutoCreation marks systems the host must not
	// instantiate automatically at world creation.
	SystemFlagDisableAutoCreation
)

// Has reports whether all bits in mask are set.
func (f SystemTypeFlags) Has(mask SystemTypeFlags) bool {
	return f&mask == mask
}

// WorldFilterFlags restricts which execution contexts a system is eligible
// to run in. Flags come from an explicit WorldFilter declaration or, absent
// one, from the system's group-membership chain.
type WorldFilterFlags uint32

const (
	WorldFilterDefault    WorldFilterFlags = 1 << iota // ordinary simulation worlds
	WorldFilterEditor                                  // tooling/editor worlds
	WorldFilterStreaming                               // background streaming worlds
	WorldFilterThinClient                              // client worlds without simulation authority

	// WorldFilterAll is the safe default substituted when group-filter
	// resolution fails (for example on a membership cycle).
	WorldFilterAll = WorldFilterDefault | WorldFilterEditor | WorldFilterStreaming | WorldFilterThinClient
)

// SystemTypeRecord holds the catalog's metadata for one system type.
type SystemTypeRecord struct {
	Index  TypeIndex
	Source reflect.Type
	Name   string // fully qualified type name

	// ByteSize is concrete for value-type systems and SizeNotApplicable
	// for reference-type systems, whose layout is host-managed.
	ByteSize int

	ContentHash uint64
	Flags       SystemTypeFlags
	WorldFilter WorldFilterFlags

	// Attributes lists the system's declared ordering relations
	// (update-before/after, update-in-group) in declaration order, with
	// targets resolved to final type indices.
	Attributes []ResolvedAttribute
}

// IsGroup reports whether the system is a system group.
func (r SystemTypeRecord) IsGroup() bool {
	return r.Flags.Has(SystemFlagGroup)
}
