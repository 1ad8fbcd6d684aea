package types

import "reflect"

// Well-known module names used by the relevance check. A module is relevant
// to discovery when it declares a dependency on the catalog contract module
// or on the object-model module, subject to the configured RelevancePolicy.
const (
	ContractModuleName    = "orrery.core"
	ObjectModelModuleName = "orrery.objects"
)

// Module is an opaque handle for one loaded code module. Implementations
// come from the host's module loader; ModuleBuilder provides a static
// implementation for tests and embedded hosts.
type Module interface {
	// Name returns the module's unique name.
	Name() string

	// DependsOn reports whether this module declares a dependency on the
	// named module.
	DependsOn(name string) bool

	// Types enumerates the types declared in the module. Enumeration may
	// fail partway; implementations return whatever prefix of the type
	// list could be resolved together with the error.
	Types() ([]reflect.Type, error)

	// ModuleAttributes returns declarations attached to the module itself,
	// such as generic registrations and the early-init marker.
	ModuleAttributes() []Attribute

	// TypeAttributes returns declarations attached to one declared type,
	// in declaration order.
	TypeAttributes(t reflect.Type) []Attribute
}

// EarlyIniter is the optional early-init entry point a module may expose.
// After a successful rebuild the catalog invokes EarlyInit once per module
// that both declares AttrEarlyInit and implements this interface; declaring
// the attribute without implementing the interface is reported as a
// warning.
type EarlyIniter interface {
	EarlyInit()
}

// EngineObject is the host object-model base type. Component candidates
// that embed it, directly or through intermediate embedded structs, are
// discovered through the engine-object path rather than the plain
// component-data path.
type EngineObject struct {
	ID uint64
}

// Component is the marker interface plain component-data candidates
// implement. Engine-object components do not need it; embedding
// EngineObject is their discovery signal.
type Component interface {
	IsComponent()
}

// System is the marker interface system candidates must satisfy. Value-type
// systems are registered as struct types; reference-type systems are
// registered as pointer types.
type System interface {
	Update()
}

// SystemGroup is embedded by container systems that other systems declare
// membership in via AttrUpdateInGroup. Embedding it sets SystemFlagGroup on
// the system's record and satisfies the System interface on the embedder.
type SystemGroup struct{}

// Update is the group's no-op update entry point; the scheduler replaces it
// with ordered iteration over the group's members.
func (SystemGroup) Update() {}

// ModuleBuilder assembles a static Module value. The zero value is not
// usable; start with NewModule.
type ModuleBuilder struct {
	name      string
	deps      map[string]bool
	types     []reflect.Type
	typesErr  error
	modAttrs  []Attribute
	typeAttrs map[reflect.Type][]Attribute
	earlyInit func()
}

// NewModule creates a builder for a static module with the given name.
func NewModule(name string) *ModuleBuilder {
	return &ModuleBuilder{
		name:      name,
		deps:      make(map[string]bool),
		typeAttrs: make(map[reflect.Type][]Attribute),
	}
}

// DependsOn records a dependency on the named module.
func (b *ModuleBuilder) DependsOn(names ...string) *ModuleBuilder {
	for _, n := range names {
		b.deps[n] = true
	}
	return b
}

// Declare adds declared types to the module.
func (b *ModuleBuilder) Declare(ts ...reflect.Type) *ModuleBuilder {
	b.types = append(b.types, ts...)
	return b
}

// DeclareOf adds the type of v to the module. Pass a value to declare a
// struct type and a pointer to declare a reference type.
func (b *ModuleBuilder) DeclareOf(v any) *ModuleBuilder {
	return b.Declare(reflect.TypeOf(v))
}

// FailEnumerationAfter truncates Types output after the first n declared
// types and makes enumeration return err alongside the partial list. Used
// to model modules whose type list cannot be fully resolved.
func (b *ModuleBuilder) FailEnumerationAfter(n int, err error) *ModuleBuilder {
	if n < len(b.types) {
		b.types = b.types[:n]
	}
	b.typesErr = err
	return b
}

// Attr attaches a module-level attribute.
func (b *ModuleBuilder) Attr(a Attribute) *ModuleBuilder {
	b.modAttrs = append(b.modAttrs, a)
	return b
}

// TypeAttr attaches an attribute to one declared type.
func (b *ModuleBuilder) TypeAttr(t reflect.Type, a Attribute) *ModuleBuilder {
	b.typeAttrs[t] = append(b.typeAttrs[t], a)
	return b
}

// OnEarlyInit registers fn as the module's early-init entry point and marks
// the module with AttrEarlyInit.
func (b *ModuleBuilder) OnEarlyInit(fn func()) *ModuleBuilder {
	b.earlyInit = fn
	b.modAttrs = append(b.modAttrs, Attribute{Kind: AttrEarlyInit})
	return b
}

// Build returns the finished Module. The returned value also implements
// EarlyIniter when OnEarlyInit was called.
func (b *ModuleBuilder) Build() Module {
	m := &staticModule{
		name:      b.name,
		deps:      b.deps,
		types:     b.types,
		typesErr:  b.typesErr,
		modAttrs:  b.modAttrs,
		typeAttrs: b.typeAttrs,
	}
	if b.earlyInit != nil {
		return &staticModuleWithInit{staticModule: m, earlyInit: b.earlyInit}
	}
	return m
}

type staticModule struct {
	name      string
	deps      map[string]bool
	types     []reflect.Type
	typesErr  error
	modAttrs  []Attribute
	typeAttrs map[reflect.Type][]Attribute
}

func (m *staticModule) Name() string               { return m.name }
func (m *staticModule) DependsOn(name string) bool { return m.deps[name] }

func (m *staticModule) Types() ([]reflect.Type, error) {
	out := make([]reflect.Type, len(m.types))
	copy(out, m.types)
	return out, m.typesErr
}

func (m *staticModule) ModuleAttributes() []Attribute {
	return m.modAttrs
}

func (m *staticModule) TypeAttributes(t reflect.Type) []Attribute {
	return m.typeAttrs[t]
}

type staticModuleWithInit struct {
	*staticModule
	earlyInit func()
}

func (m *staticModuleWithInit) EarlyInit() { m.earlyInit() }
