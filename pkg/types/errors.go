package types

import "errors"

// Catalog lifecycle errors.
var (
	ErrNotInitialized = errors.New("catalog is not initialized")
	ErrInitializing   = errors.New("catalog rebuild is in progress")
	ErrNotFound       = errors.New("type not found")
)

// Configuration errors, reported per offending type and collected into the
// rebuild Report rather than aborting discovery.
var (
	ErrUnsupportedComponent = errors.New("unsupported component type shape")
	ErrUnsupportedSystem    = errors.New("unsupported system type shape")
	ErrManagedValueSystem   = errors.New("value-type system has managed fields")
	ErrGroupCycle           = errors.New("cycle in system group membership")
	ErrUnknownOrderTarget   = errors.New("ordering attribute targets an unregistered system")
	ErrMissingEarlyInit     = errors.New("module declares early-init but exposes no entry point")
)

// Module enumeration errors.
var (
	ErrModuleEnumeration = errors.New("module type enumeration incomplete")
)

// Structural invariant violations. These indicate a defect in the catalog
// itself; a rebuild that hits one fails outright and leaves the store
// uninitialized.
var (
	ErrDuplicateIndex     = errors.New("record already exists for type index")
	ErrNonContiguousRange = errors.New("subtree positions are not contiguous")
	ErrIndexRenumbered    = errors.New("existing type index changed during rebuild")
)
