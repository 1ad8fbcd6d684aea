package catalog

import (
	"fmt"
	"reflect"

	"github.com/orrery-engine/orrery/pkg/types"
)

// treeNode is the transient structure the hierarchy is built over. Parent
// links are navigational only; once positions and descendant counts are
// baked into the component records the forest is discarded.
type treeNode struct {
	source   reflect.Type
	index    types.TypeIndex
	parent   *treeNode
	children []*treeNode

	position int32 // pre-order position within the component namespace
	subtree  int32 // subtree size including the node itself
}

// treeResult is the output of one hierarchy build: component types in index
// order, with positions and descendant counts keyed by type.
type treeResult struct {
	ordered   []reflect.Type
	index     map[reflect.Type]types.TypeIndex
	position  map[reflect.Type]int32
	subtree   map[reflect.Type]int32
	nextIndex types.TypeIndex
}

// buildComponentTree builds the forest over the component candidate set,
// assigns indices, and computes per-node positions and descendant counts.
//
// Parent edges follow each type's nearest embedded ancestor that is itself
// a candidate; candidates with no such ancestor are roots. Roots are
// visited in discovery order and each subtree is assigned positions in
// pre-order, giving every subtree a contiguous half-open position range.
//
// Index assignment is append-only: candidates present in existing keep
// their index unchanged, new candidates take indices from next upward in
// pre-order visit order. Positions are recomputed for the whole forest on
// every call.
func buildComponentTree(candidates []reflect.Type, existing map[reflect.Type]types.TypeIndex, next types.TypeIndex) (*treeResult, error) {
	inSet := make(map[reflect.Type]bool, len(candidates))
	for _, t := range candidates {
		inSet[t] = true
	}

	nodes := make(map[reflect.Type]*treeNode, len(candidates))
	var roots []*treeNode
	for _, t := range candidates {
		nodes[t] = &treeNode{source: t}
	}
	for _, t := range candidates {
		n := nodes[t]
		if p := nearestCandidateAncestor(t, inSet); p != nil {
			n.parent = nodes[p]
			n.parent.children = append(n.parent.children, n)
		} else {
			roots = append(roots, n)
		}
	}

	res := &treeResult{
		index:     make(map[reflect.Type]types.TypeIndex, len(candidates)),
		position:  make(map[reflect.Type]int32, len(candidates)),
		subtree:   make(map[reflect.Type]int32, len(candidates)),
		nextIndex: next,
	}

	var position int32
	var visit func(n *treeNode) error
	visit = func(n *treeNode) error {
		if old, ok := existing[n.source]; ok {
			n.index = old
		} else {
			n.index = res.nextIndex
			res.nextIndex++
		}
		if _, dup := res.index[n.source]; dup {
			return fmt.Errorf("%w: %s", types.ErrDuplicateIndex, typeName(n.source))
		}
		n.position = position
		position++
		n.subtree = 1
		res.ordered = append(res.ordered, n.source)
		res.index[n.source] = n.index
		for _, c := range n.children {
			if err := visit(c); err != nil {
				return err
			}
			n.subtree += c.subtree
		}
		// The subtree just visited must occupy exactly the positions
		// between entry and the current counter.
		if position-n.position != n.subtree {
			return fmt.Errorf("%w: %s spans %d positions for subtree size %d",
				types.ErrNonContiguousRange, typeName(n.source), position-n.position, n.subtree)
		}
		res.position[n.source] = n.position
		res.subtree[n.source] = n.subtree
		return nil
	}
	for _, r := range roots {
		if err := visit(r); err != nil {
			return nil, err
		}
	}

	// Every candidate must have been reached exactly once; a shortfall
	// means a parent cycle kept part of the forest unreachable.
	if len(res.ordered) != len(candidates) {
		return nil, fmt.Errorf("%w: visited %d of %d candidates", types.ErrNonContiguousRange, len(res.ordered), len(candidates))
	}
	return res, nil
}

// nearestCandidateAncestor returns the closest type on t's embedded base
// chain that is in the candidate set, or nil. The base chain follows the
// first embedded struct field at each level; EngineObject terminates the
// chain since the base object itself is never a candidate.
func nearestCandidateAncestor(t reflect.Type, inSet map[reflect.Type]bool) reflect.Type {
	for {
		base := declaredBase(t)
		if base == nil {
			return nil
		}
		if inSet[base] {
			return base
		}
		t = base
	}
}

// declaredBase returns t's declared structural base: the type of its first
// embedded struct field, or nil when t embeds nothing relevant.
func declaredBase(t reflect.Type) reflect.Type {
	if t.Kind() != reflect.Struct {
		return nil
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct && f.Type != engineObjType {
			return f.Type
		}
	}
	return nil
}
