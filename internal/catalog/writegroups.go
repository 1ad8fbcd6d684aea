package catalog

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/orrery-engine/orrery/pkg/types"
)

// resolveWriteGroups computes the symmetric closure of the declared
// write-access conflicts over the final index space. It must run only
// after all indices are assigned: declarations name other types by
// identity and are resolved against the finished map. A type with no
// declarations gets no entry; lookups treat absence as an empty set.
//
// Declarations targeting a type the catalog does not know are reported and
// skipped rather than stored with an invalid index.
func resolveWriteGroups(attrs map[reflect.Type][]types.Attribute, index map[reflect.Type]types.TypeIndex, report *types.Report) map[types.TypeIndex]map[types.TypeIndex]struct{} {
	groups := make(map[types.TypeIndex]map[types.TypeIndex]struct{})
	add := func(a, b types.TypeIndex) {
		if groups[a] == nil {
			groups[a] = make(map[types.TypeIndex]struct{})
		}
		groups[a][b] = struct{}{}
	}

	// Deterministic order over declaring types for reproducible reports.
	declaring := make([]reflect.Type, 0, len(attrs))
	for t := range attrs {
		declaring = append(declaring, t)
	}
	sort.Slice(declaring, func(i, j int) bool {
		return typeName(declaring[i]) < typeName(declaring[j])
	})

	for _, t := range declaring {
		self, ok := index[t]
		if !ok {
			continue
		}
		for _, a := range attrs[t] {
			if a.Kind != types.AttrWriteGroup {
				continue
			}
			target, ok := index[a.Target]
			if !ok {
				report.Errorf(typeName(t), fmt.Errorf("write group targets unregistered type %s", typeName(a.Target)))
				continue
			}
			if target == self {
				continue
			}
			add(self, target)
			add(target, self)
		}
	}
	return groups
}

// sortedIndices flattens a conflict set into ascending index order.
func sortedIndices(set map[types.TypeIndex]struct{}) []types.TypeIndex {
	out := make([]types.TypeIndex, 0, len(set))
	for i := range set {
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}
