package snapshot

import (
	"fmt"
	"sort"
)

// ChangeKind classifies one difference between two snapshots.
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeRemoved ChangeKind = "removed"
	ChangeAltered ChangeKind = "altered"
)

// Change is one difference between two snapshots, keyed by type name so
// the comparison survives index reassignment between unrelated builds.
type Change struct {
	Kind      ChangeKind
	Namespace string // "component" or "system"
	Name      string
	Detail    string
}

// String renders the change for CLI output.
func (c Change) String() string {
	if c.Detail == "" {
		return fmt.Sprintf("%s %s %s", c.Kind, c.Namespace, c.Name)
	}
	return fmt.Sprintf("%s %s %s (%s)", c.Kind, c.Namespace, c.Name, c.Detail)
}

// Diff compares two snapshots and returns the changes from old to new,
// sorted by namespace then name.
func Diff(old, new *Snapshot) []Change {
	var changes []Change

	oldComps := make(map[string]ComponentRow, len(old.Components))
	for _, r := range old.Components {
		oldComps[r.Name] = r
	}
	newComps := make(map[string]ComponentRow, len(new.Components))
	for _, r := range new.Components {
		newComps[r.Name] = r
	}
	for name, o := range oldComps {
		n, ok := newComps[name]
		if !ok {
			changes = append(changes, Change{Kind: ChangeRemoved, Namespace: "component", Name: name})
			continue
		}
		if o.ContentHash != n.ContentHash {
			changes = append(changes, Change{Kind: ChangeAltered, Namespace: "component", Name: name,
				Detail: fmt.Sprintf("hash %x -> %x", o.ContentHash, n.ContentHash)})
		} else if o.DescendantCount != n.DescendantCount {
			changes = append(changes, Change{Kind: ChangeAltered, Namespace: "component", Name: name,
				Detail: fmt.Sprintf("descendants %d -> %d", o.DescendantCount, n.DescendantCount)})
		}
	}
	for name := range newComps {
		if _, ok := oldComps[name]; !ok {
			changes = append(changes, Change{Kind: ChangeAdded, Namespace: "component", Name: name})
		}
	}

	oldSys := make(map[string]SystemRow, len(old.Systems))
	for _, r := range old.Systems {
		oldSys[r.Name] = r
	}
	newSys := make(map[string]SystemRow, len(new.Systems))
	for _, r := range new.Systems {
		newSys[r.Name] = r
	}
	for name, o := range oldSys {
		n, ok := newSys[name]
		if !ok {
			changes = append(changes, Change{Kind: ChangeRemoved, Namespace: "system", Name: name})
			continue
		}
		if o.ContentHash != n.ContentHash || o.Flags != n.Flags || o.WorldFilter != n.WorldFilter {
			changes = append(changes, Change{Kind: ChangeAltered, Namespace: "system", Name: name})
		}
	}
	for name := range newSys {
		if _, ok := oldSys[name]; !ok {
			changes = append(changes, Change{Kind: ChangeAdded, Namespace: "system", Name: name})
		}
	}

	sort.Slice(changes, func(i, j int) bool {
		if changes[i].Namespace != changes[j].Namespace {
			return changes[i].Namespace < changes[j].Namespace
		}
		return changes[i].Name < changes[j].Name
	})
	return changes
}
