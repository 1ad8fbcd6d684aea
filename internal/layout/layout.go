// Package layout implements the default Eligibility and Layout
// collaborators for the type catalog. All checks are structural over
// reflect and deterministic given a type.
package layout

import (
	"fmt"
	"hash/fnv"
	"io"
	"reflect"

	"github.com/orrery-engine/orrery/pkg/types"
)

// Engine implements types.Eligibility and types.Layout. The zero value is
// not usable; call NewEngine.
type Engine struct {
	hashes map[reflect.Type]uint64
}

// NewEngine creates a layout engine with an empty hash cache. The engine is
// not safe for concurrent use; the catalog drives it from the
// single-threaded rebuild path.
func NewEngine() *Engine {
	return &Engine{hashes: make(map[reflect.Type]uint64)}
}

var systemIface = reflect.TypeOf((*types.System)(nil)).Elem()

// CheckComponentData decides whether t is representable as plain component
// data: a concrete struct type. Managed fields are allowed; they flip the
// record's byte size to the host-managed sentinel rather than rejecting
// the type.
func (e *Engine) CheckComponentData(t reflect.Type) error {
	if t == nil {
		return fmt.Errorf("%w: nil type", types.ErrUnsupportedComponent)
	}
	switch t.Kind() {
	case reflect.Struct:
		return nil
	case reflect.Interface:
		return fmt.Errorf("%w: %s is abstract", types.ErrUnsupportedComponent, t)
	case reflect.Ptr:
		return fmt.Errorf("%w: %s is a reference; declare the struct type", types.ErrUnsupportedComponent, t)
	default:
		return fmt.Errorf("%w: %s has kind %s", types.ErrUnsupportedComponent, t, t.Kind())
	}
}

// CheckEngineObject decides whether an object-model type is representable
// as a component. The embedding relation itself is the scanner's concern;
// this check only rejects unsupported shapes.
func (e *Engine) CheckEngineObject(t reflect.Type) error {
	if t == nil || t.Kind() != reflect.Struct {
		return fmt.Errorf("%w: engine-object component must be a struct", types.ErrUnsupportedComponent)
	}
	return nil
}

// CheckSystem decides whether t is registrable as a system. Struct types
// are the value-type kind; pointer-to-struct types are the reference-type
// kind. Interface types are abstract and rejected.
func (e *Engine) CheckSystem(t reflect.Type) error {
	if t == nil {
		return fmt.Errorf("%w: nil type", types.ErrUnsupportedSystem)
	}
	switch t.Kind() {
	case reflect.Struct:
		if !t.Implements(systemIface) && !reflect.PtrTo(t).Implements(systemIface) {
			return fmt.Errorf("%w: %s does not implement System", types.ErrUnsupportedSystem, t)
		}
		return nil
	case reflect.Ptr:
		if t.Elem().Kind() != reflect.Struct {
			return fmt.Errorf("%w: %s is not a pointer to struct", types.ErrUnsupportedSystem, t)
		}
		if !t.Implements(systemIface) {
			return fmt.Errorf("%w: %s does not implement System", types.ErrUnsupportedSystem, t)
		}
		return nil
	case reflect.Interface:
		return fmt.Errorf("%w: %s is abstract", types.ErrUnsupportedSystem, t)
	default:
		return fmt.Errorf("%w: %s has kind %s", types.ErrUnsupportedSystem, t, t.Kind())
	}
}

// ByteSize returns the in-memory size of t, or the host-managed sentinel
// when t contains managed fields or is a reference type.
func (e *Engine) ByteSize(t reflect.Type) int {
	if t.Kind() == reflect.Ptr || e.HasManagedFields(t) {
		return types.SizeNotApplicable
	}
	return int(t.Size())
}

// HasManagedFields reports whether t's storage requires managed fields
// anywhere in its field tree.
func (e *Engine) HasManagedFields(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.String,
		reflect.Interface, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if e.HasManagedFields(t.Field(i).Type) {
				return true
			}
		}
		return false
	case reflect.Array:
		return e.HasManagedFields(t.Elem())
	default:
		return false
	}
}

// StableHash returns a 64-bit FNV-1a fingerprint of the type's shape:
// qualified name, kind, and the names and shapes of its fields, recursing
// through nested structs and element types. Hashes are cached per type.
func (e *Engine) StableHash(t reflect.Type) uint64 {
	if h, ok := e.hashes[t]; ok {
		return h
	}
	h := fnv.New64a()
	e.writeShape(h, t, map[reflect.Type]bool{})
	sum := h.Sum64()
	e.hashes[t] = sum
	return sum
}

// writeShape appends t's canonical description to h. The in-progress set
// breaks recursion through self-referential types: a revisited type
// contributes its name only.
func (e *Engine) writeShape(h io.Writer, t reflect.Type, seen map[reflect.Type]bool) {
	fmt.Fprintf(h, "%s/%s;%s;", t.PkgPath(), t.Name(), t.Kind())
	if seen[t] {
		return
	}
	seen[t] = true
	switch t.Kind() {
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			fmt.Fprintf(h, "%s@%d:", f.Name, f.Offset)
			e.writeShape(h, f.Type, seen)
		}
	case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Chan:
		if t.Kind() == reflect.Array {
			fmt.Fprintf(h, "[%d]", t.Len())
		}
		e.writeShape(h, t.Elem(), seen)
	case reflect.Map:
		e.writeShape(h, t.Key(), seen)
		e.writeShape(h, t.Elem(), seen)
	}
	delete(seen, t)
}
