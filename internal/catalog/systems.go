package catalog

import (
	"fmt"
	"reflect"

	"github.com/orrery-engine/orrery/pkg/types"
)

// registerSystems builds the system records for the current batch. Value-
// type systems are processed before reference-type systems, in discovery
// order, matching the order their indices were reserved. Ordering
// attributes are attached in a second pass once every system in the batch
// has an index, so a declaration may reference a system that appears later
// in discovery order.
func registerSystems(scan scanResult, index map[reflect.Type]types.TypeIndex, next types.TypeIndex, lay types.Layout, report *types.Report) (map[reflect.Type]*types.SystemTypeRecord, types.TypeIndex) {
	order := make([]reflect.Type, 0, len(scan.valueSystems)+len(scan.refSystems))
	order = append(order, scan.valueSystems...)
	order = append(order, scan.refSystems...)

	records := make(map[reflect.Type]*types.SystemTypeRecord, len(order))
	for _, t := range order {
		idx, ok := index[t]
		if !ok {
			idx = next
			next++
			index[t] = idx
		}
		records[t] = buildSystemRecord(t, idx, scan, lay, report)
	}

	// Second pass: ordering attributes resolved to the final index space.
	// Targets must be systems of this batch; a component index would be
	// meaningless to the scheduler.
	for _, t := range order {
		rec := records[t]
		for _, a := range scan.attrs[t] {
			if !a.IsOrdering() {
				continue
			}
			target, ok := records[a.Target]
			if !ok {
				report.Errorf(rec.Name, fmt.Errorf("%w: %s(%s)", types.ErrUnknownOrderTarget, a.Kind, typeName(a.Target)))
				continue
			}
			rec.Attributes = append(rec.Attributes, types.ResolvedAttribute{Kind: a.Kind, TargetIndex: target.Index})
		}
	}
	return records, next
}

// buildSystemRecord computes one system's identity and classification.
func buildSystemRecord(t reflect.Type, idx types.TypeIndex, scan scanResult, lay types.Layout, report *types.Report) *types.SystemTypeRecord {
	rec := &types.SystemTypeRecord{
		Index:       idx,
		Source:      t,
		Name:        typeName(t),
		ContentHash: lay.StableHash(t),
		ByteSize:    types.SizeNotApplicable,
	}
	if t.Kind() == reflect.Struct {
		rec.Flags |= types.SystemFlagValueType
		rec.ByteSize = lay.ByteSize(t)
	}
	if lay.HasManagedFields(t) {
		rec.Flags |= types.SystemFlagManagedFields
	}
	if embedsSystemGroup(t) {
		rec.Flags |= types.SystemFlagGroup
	}
	for _, a := range scan.attrs[t] {
		if a.Kind == types.AttrDisableAutoCreation {
			rec.Flags |= types.SystemFlagDisableAutoCreation
		}
	}
	rec.WorldFilter = resolveGroupFilterFlags(t, scan.attrs, map[reflect.Type]bool{}, report)
	return rec
}

// resolveGroupFilterFlags resolves a system's world-filter flags. An
// explicit world-filter declaration wins; otherwise the flags are
// inherited by walking the update-in-group chain upward. The visited set
// is per top-level resolution: encountering a type twice in one chain is a
// membership cycle, reported as a configuration error and resolved to the
// safe default instead of recursing forever.
func resolveGroupFilterFlags(t reflect.Type, attrs map[reflect.Type][]types.Attribute, visited map[reflect.Type]bool, report *types.Report) types.WorldFilterFlags {
	if visited[t] {
		report.Errorf(typeName(t), fmt.Errorf("%w: revisited while resolving filter flags", types.ErrGroupCycle))
		return types.WorldFilterAll
	}
	visited[t] = true

	var group reflect.Type
	for _, a := range attrs[t] {
		switch a.Kind {
		case types.AttrWorldFilter:
			return a.Filter
		case types.AttrUpdateInGroup:
			if group == nil {
				group = a.Target
			}
		}
	}
	if group == nil {
		return types.WorldFilterDefault
	}
	return resolveGroupFilterFlags(group, attrs, visited, report)
}
