// Package catalog implements the Orrery runtime type catalog: discovery of
// component and system types across loaded modules, dense stable index
// assignment, hierarchy metadata, write-group resolution, and system
// scheduling metadata.
package catalog

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"

	"github.com/orrery-engine/orrery/pkg/types"
)

// Catalog is the process-wide type registry. It is built by Initialize and
// read by every other subsystem; readers observe either the previous
// complete generation or the new one, never a half-built table. A zero
// Catalog is not usable; call New.
type Catalog struct {
	mu           sync.RWMutex
	initialized  bool
	initializing bool

	cfg    types.Config
	elig   types.Eligibility
	layout types.Layout

	generation uuid.UUID

	// indexByType survives across incremental Initialize calls so that
	// indices already handed out are never renumbered. Reset clears it.
	indexByType map[reflect.Type]types.TypeIndex
	nextIndex   types.TypeIndex

	// currentByType holds only the types with a record in the current
	// generation; it is what lookups resolve against. A type absent from
	// the latest module set keeps its reserved index in indexByType but
	// is not resolvable until it reappears.
	currentByType map[reflect.Type]types.TypeIndex

	components  map[types.TypeIndex]*types.ComponentTypeRecord
	systems     map[types.TypeIndex]*types.SystemTypeRecord
	writeGroups map[types.TypeIndex]map[types.TypeIndex]struct{}

	// componentOrder lists component indices in tree-position order for
	// deterministic enumeration.
	componentOrder []types.TypeIndex
	systemOrder    []types.TypeIndex

	lastReport *types.Report
}

// New creates an empty catalog with the given configuration and
// collaborators. Returns an error when the configuration is invalid.
func New(cfg types.Config, elig types.Eligibility, lay types.Layout) (*Catalog, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Catalog{
		cfg:           cfg,
		elig:          elig,
		layout:        lay,
		indexByType:   make(map[reflect.Type]types.TypeIndex),
		currentByType: make(map[reflect.Type]types.TypeIndex),
		components:    make(map[types.TypeIndex]*types.ComponentTypeRecord),
		systems:       make(map[types.TypeIndex]*types.SystemTypeRecord),
		writeGroups:   make(map[types.TypeIndex]map[types.TypeIndex]struct{}),
	}, nil
}

// Initialize rebuilds the catalog from the given module set. The call is a
// whole-generation replace: the readiness flag drops at entry, so any
// lookup attempted during the rebuild observes "not ready" rather than a
// partial table. A repeat call with a superset of a previous module set
// appends new types after all existing indices and never renumbers old
// ones.
//
// Configuration and enumeration problems are collected into the returned
// Report and never abort the rebuild. A structural invariant violation
// fails the rebuild outright and leaves the catalog uninitialized.
func (c *Catalog) Initialize(mods []types.Module) (*types.Report, error) {
	report, err := c.rebuild(mods)
	if err != nil {
		return nil, err
	}
	// Hooks run outside the lock: a notified module may immediately query
	// the new generation.
	c.runEarlyInitHooks(mods, report)
	return report, nil
}

// rebuild performs the locked portion of Initialize.
func (c *Catalog) rebuild(mods []types.Module) (*types.Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initializing {
		return nil, types.ErrInitializing
	}
	c.initializing = true
	c.initialized = false
	defer func() { c.initializing = false }()

	report := &types.Report{}

	relevant := classifyModules(mods, c.cfg.Policy())
	scan := scanModules(relevant, c.cfg.Policy(), c.elig, c.layout, report)

	// Component indices are fully assigned before any write-group or
	// descendant-count lookup runs.
	tree, err := buildComponentTree(scan.components, c.indexByType, c.nextIndex)
	if err != nil {
		return nil, err
	}
	components := make(map[types.TypeIndex]*types.ComponentTypeRecord, len(tree.ordered))
	componentOrder := make([]types.TypeIndex, 0, len(tree.ordered))
	index := make(map[reflect.Type]types.TypeIndex, len(c.indexByType))
	for t, i := range c.indexByType {
		index[t] = i
	}
	current := make(map[reflect.Type]types.TypeIndex, len(tree.ordered))
	for _, t := range tree.ordered {
		idx := tree.index[t]
		if old, ok := index[t]; ok && old != idx {
			return nil, fmt.Errorf("%w: %s moved from %d to %d", types.ErrIndexRenumbered, typeName(t), old, idx)
		}
		if _, dup := components[idx]; dup {
			return nil, fmt.Errorf("%w: %d", types.ErrDuplicateIndex, idx)
		}
		index[t] = idx
		current[t] = idx
		components[idx] = &types.ComponentTypeRecord{
			Index:           idx,
			Source:          t,
			Name:            typeName(t),
			ByteSize:        c.layout.ByteSize(t),
			ContentHash:     c.layout.StableHash(t),
			EngineObject:    scan.engineObject[t],
			TreePosition:    tree.position[t],
			DescendantCount: tree.subtree[t] - 1,
		}
		componentOrder = append(componentOrder, idx)
	}

	systems, next := registerSystems(scan, index, tree.nextIndex, c.layout, report)
	systemTables := make(map[types.TypeIndex]*types.SystemTypeRecord, len(systems))
	systemOrder := make([]types.TypeIndex, 0, len(systems))
	for _, t := range append(append([]reflect.Type{}, scan.valueSystems...), scan.refSystems...) {
		rec := systems[t]
		if _, dup := components[rec.Index]; dup {
			return nil, fmt.Errorf("%w: %d claimed by both namespaces", types.ErrDuplicateIndex, rec.Index)
		}
		if _, dup := systemTables[rec.Index]; dup {
			return nil, fmt.Errorf("%w: %d", types.ErrDuplicateIndex, rec.Index)
		}
		systemTables[rec.Index] = rec
		systemOrder = append(systemOrder, rec.Index)
		current[t] = rec.Index
	}

	writeGroups := resolveWriteGroups(scan.attrs, index, report)

	// Commit the new generation.
	c.indexByType = index
	c.currentByType = current
	c.nextIndex = next
	c.components = components
	c.componentOrder = componentOrder
	c.systems = systemTables
	c.systemOrder = systemOrder
	c.writeGroups = writeGroups
	c.generation = newGenerationID()
	c.lastReport = report
	c.initialized = true
	return report, nil
}

// runEarlyInitHooks notifies, in module order, every module that declares
// the early-init attribute. A declaring module without an entry point is a
// warning, not an error.
func (c *Catalog) runEarlyInitHooks(mods []types.Module, report *types.Report) {
	for _, m := range mods {
		declared := false
		for _, a := range m.ModuleAttributes() {
			if a.Kind == types.AttrEarlyInit {
				declared = true
				break
			}
		}
		if !declared {
			continue
		}
		if hook, ok := m.(types.EarlyIniter); ok {
			hook.EarlyInit()
		} else {
			report.Warnf(m.Name(), types.ErrMissingEarlyInit)
		}
	}
}

// Reset clears the catalog to empty, including the index map: after Reset,
// a fresh Initialize assigns indices from zero again. Reset fails while a
// rebuild is in progress.
func (c *Catalog) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initializing {
		return types.ErrInitializing
	}
	c.initialized = false
	c.generation = uuid.UUID{}
	c.indexByType = make(map[reflect.Type]types.TypeIndex)
	c.currentByType = make(map[reflect.Type]types.TypeIndex)
	c.nextIndex = 0
	c.components = make(map[types.TypeIndex]*types.ComponentTypeRecord)
	c.systems = make(map[types.TypeIndex]*types.SystemTypeRecord)
	c.writeGroups = make(map[types.TypeIndex]map[types.TypeIndex]struct{})
	c.componentOrder = nil
	c.systemOrder = nil
	c.lastReport = nil
	return nil
}

// Initialized reports whether the catalog holds a complete generation.
func (c *Catalog) Initialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.initialized
}

// Generation returns the identity of the current generation, or the zero
// UUID when the catalog is not initialized.
func (c *Catalog) Generation() uuid.UUID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.initialized {
		return uuid.UUID{}
	}
	return c.generation
}

// LookupTypeIndex returns the index assigned to t in the current
// generation. Returns InvalidTypeIndex and ErrNotFound for types without a
// current record, including types known to earlier generations but absent
// from the latest module set, and ErrNotInitialized while no complete
// generation is readable.
func (c *Catalog) LookupTypeIndex(t reflect.Type) (types.TypeIndex, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.initialized {
		return types.InvalidTypeIndex, types.ErrNotInitialized
	}
	idx, ok := c.currentByType[t]
	if !ok {
		return types.InvalidTypeIndex, types.ErrNotFound
	}
	return idx, nil
}

// ComponentRecord returns the component record for idx.
func (c *Catalog) ComponentRecord(idx types.TypeIndex) (types.ComponentTypeRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.initialized {
		return types.ComponentTypeRecord{}, types.ErrNotInitialized
	}
	rec, ok := c.components[idx]
	if !ok {
		return types.ComponentTypeRecord{}, types.ErrNotFound
	}
	return *rec, nil
}

// SystemRecord returns the system record for idx.
func (c *Catalog) SystemRecord(idx types.TypeIndex) (types.SystemTypeRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.initialized {
		return types.SystemTypeRecord{}, types.ErrNotInitialized
	}
	rec, ok := c.systems[idx]
	if !ok {
		return types.SystemTypeRecord{}, types.ErrNotFound
	}
	return *rec, nil
}

// WriteGroup returns the indices declared write-conflicting with idx, in
// ascending order. No declaration means an empty set, not an error.
func (c *Catalog) WriteGroup(idx types.TypeIndex) ([]types.TypeIndex, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.initialized {
		return nil, types.ErrNotInitialized
	}
	return sortedIndices(c.writeGroups[idx]), nil
}

// IsDescendant reports whether the component at candidate lies in the
// subtree rooted at the component at ancestor, via the contiguous
// tree-position range check. A type is not its own descendant.
func (c *Catalog) IsDescendant(ancestor, candidate types.TypeIndex) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.initialized {
		return false, types.ErrNotInitialized
	}
	a, ok := c.components[ancestor]
	if !ok {
		return false, types.ErrNotFound
	}
	b, ok := c.components[candidate]
	if !ok {
		return false, types.ErrNotFound
	}
	return b.TreePosition > a.TreePosition && b.TreePosition < a.TreePosition+a.DescendantCount+1, nil
}

// SystemAttributes returns the resolved ordering attributes of the system
// at idx, in declaration order.
func (c *Catalog) SystemAttributes(idx types.TypeIndex) ([]types.ResolvedAttribute, error) {
	rec, err := c.SystemRecord(idx)
	if err != nil {
		return nil, err
	}
	return rec.Attributes, nil
}

// Components returns all component records in tree-position order.
func (c *Catalog) Components() ([]types.ComponentTypeRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.initialized {
		return nil, types.ErrNotInitialized
	}
	out := make([]types.ComponentTypeRecord, 0, len(c.componentOrder))
	for _, idx := range c.componentOrder {
		out = append(out, *c.components[idx])
	}
	return out, nil
}

// Systems returns all system records in registration order.
func (c *Catalog) Systems() ([]types.SystemTypeRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.initialized {
		return nil, types.ErrNotInitialized
	}
	out := make([]types.SystemTypeRecord, 0, len(c.systemOrder))
	for _, idx := range c.systemOrder {
		out = append(out, *c.systems[idx])
	}
	return out, nil
}

// LastReport returns the report of the most recent successful rebuild, or
// nil.
func (c *Catalog) LastReport() *types.Report {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastReport
}

// newGenerationID stamps a generation with a UUID v7, falling back to v4
// if v7 generation fails.
func newGenerationID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
