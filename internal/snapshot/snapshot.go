package snapshot

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/orrery-engine/orrery/internal/catalog"
	"github.com/orrery-engine/orrery/pkg/types"
)

// Snapshot is the portable form of one catalog generation. Type identity
// is by fully qualified name; reflect types do not survive persistence.
type Snapshot struct {
	GenerationID string
	Policy       string
	CreatedAt    time.Time
	Components   []ComponentRow
	Systems      []SystemRow
	Attributes   []AttributeRow
	WriteGroups  []WriteGroupRow
}

// ComponentRow mirrors one component record.
type ComponentRow struct {
	Index           int32
	Name            string
	ByteSize        int
	ContentHash     uint64
	EngineObject    bool
	TreePosition    int32
	DescendantCount int32
}

// SystemRow mirrors one system record.
type SystemRow struct {
	Index       int32
	Name        string
	ByteSize    int
	ContentHash uint64
	Flags       uint32
	WorldFilter uint32
}

// AttributeRow is one resolved ordering attribute.
type AttributeRow struct {
	SystemIndex int32
	Ordinal     int
	Kind        string
	TargetIndex int32
}

// WriteGroupRow is one direction of a symmetric conflict pair.
type WriteGroupRow struct {
	Index    int32
	Conflict int32
}

// Capture reads the current generation out of an initialized catalog.
func Capture(cat *catalog.Catalog, policy string) (*Snapshot, error) {
	comps, err := cat.Components()
	if err != nil {
		return nil, err
	}
	systems, err := cat.Systems()
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		GenerationID: cat.Generation().String(),
		Policy:       policy,
		CreatedAt:    time.Now().UTC(),
	}
	for _, r := range comps {
		snap.Components = append(snap.Components, ComponentRow{
			Index:           int32(r.Index),
			Name:            r.Name,
			ByteSize:        r.ByteSize,
			ContentHash:     r.ContentHash,
			EngineObject:    r.EngineObject,
			TreePosition:    r.TreePosition,
			DescendantCount: r.DescendantCount,
		})
		group, err := cat.WriteGroup(r.Index)
		if err != nil {
			return nil, err
		}
		for _, conflict := range group {
			snap.WriteGroups = append(snap.WriteGroups, WriteGroupRow{Index: int32(r.Index), Conflict: int32(conflict)})
		}
	}
	for _, r := range systems {
		snap.Systems = append(snap.Systems, SystemRow{
			Index:       int32(r.Index),
			Name:        r.Name,
			ByteSize:    r.ByteSize,
			ContentHash: r.ContentHash,
			Flags:       uint32(r.Flags),
			WorldFilter: uint32(r.WorldFilter),
		})
		for ord, a := range r.Attributes {
			snap.Attributes = append(snap.Attributes, AttributeRow{
				SystemIndex: int32(r.Index),
				Ordinal:     ord,
				Kind:        string(a.Kind),
				TargetIndex: int32(a.TargetIndex),
			})
		}
	}
	return snap, nil
}

// Write stores the snapshot at path, replacing any existing file.
func Write(path string, snap *Snapshot) error {
	// Remove any previous snapshot to guarantee a fresh schema.
	_ = os.Remove(path)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO generation (generation_id, policy, created_at) VALUES (?, ?, ?)`,
		snap.GenerationID, snap.Policy, snap.CreatedAt.Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("insert generation: %w", err)
	}
	for _, r := range snap.Components {
		if _, err := tx.Exec(
			`INSERT INTO components (type_index, name, byte_size, content_hash, engine_object, tree_position, descendant_count)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.Index, r.Name, r.ByteSize, int64(r.ContentHash), boolToInt(r.EngineObject), r.TreePosition, r.DescendantCount); err != nil {
			return fmt.Errorf("insert component %s: %w", r.Name, err)
		}
	}
	for _, r := range snap.Systems {
		if _, err := tx.Exec(
			`INSERT INTO systems (type_index, name, byte_size, content_hash, flags, world_filter)
             VALUES (?, ?, ?, ?, ?, ?)`,
			r.Index, r.Name, r.ByteSize, int64(r.ContentHash), r.Flags, r.WorldFilter); err != nil {
			return fmt.Errorf("insert system %s: %w", r.Name, err)
		}
	}
	for _, r := range snap.Attributes {
		if _, err := tx.Exec(
			`INSERT INTO system_attributes (system_index, ordinal, kind, target_index) VALUES (?, ?, ?, ?)`,
			r.SystemIndex, r.Ordinal, r.Kind, r.TargetIndex); err != nil {
			return fmt.Errorf("insert attribute: %w", err)
		}
	}
	for _, r := range snap.WriteGroups {
		if _, err := tx.Exec(
			`INSERT INTO write_groups (type_index, conflict_index) VALUES (?, ?)`,
			r.Index, r.Conflict); err != nil {
			return fmt.Errorf("insert write group: %w", err)
		}
	}
	return tx.Commit()
}

// Read loads a snapshot from path.
func Read(path string) (*Snapshot, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	snap := &Snapshot{}
	var created string
	if err := db.QueryRow(`SELECT generation_id, policy, created_at FROM generation`).
		Scan(&snap.GenerationID, &snap.Policy, &created); err != nil {
		return nil, fmt.Errorf("read generation: %w", err)
	}
	if snap.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	rows, err := db.Query(`SELECT type_index, name, byte_size, content_hash, engine_object, tree_position, descendant_count
		FROM components ORDER BY tree_position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var r ComponentRow
		var hash int64
		var engineObject int
		if err := rows.Scan(&r.Index, &r.Name, &r.ByteSize, &hash, &engineObject, &r.TreePosition, &r.DescendantCount); err != nil {
			return nil, err
		}
		r.ContentHash = uint64(hash)
		r.EngineObject = engineObject != 0
		snap.Components = append(snap.Components, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sysRows, err := db.Query(`SELECT type_index, name, byte_size, content_hash, flags, world_filter
		FROM systems ORDER BY type_index`)
	if err != nil {
		return nil, err
	}
	defer sysRows.Close()
	for sysRows.Next() {
		var r SystemRow
		var hash int64
		if err := sysRows.Scan(&r.Index, &r.Name, &r.ByteSize, &hash, &r.Flags, &r.WorldFilter); err != nil {
			return nil, err
		}
		r.ContentHash = uint64(hash)
		snap.Systems = append(snap.Systems, r)
	}
	if err := sysRows.Err(); err != nil {
		return nil, err
	}

	attrRows, err := db.Query(`SELECT system_index, ordinal, kind, target_index
		FROM system_attributes ORDER BY system_index, ordinal`)
	if err != nil {
		return nil, err
	}
	defer attrRows.Close()
	for attrRows.Next() {
		var r AttributeRow
		if err := attrRows.Scan(&r.SystemIndex, &r.Ordinal, &r.Kind, &r.TargetIndex); err != nil {
			return nil, err
		}
		snap.Attributes = append(snap.Attributes, r)
	}
	if err := attrRows.Err(); err != nil {
		return nil, err
	}

	wgRows, err := db.Query(`SELECT type_index, conflict_index FROM write_groups ORDER BY type_index, conflict_index`)
	if err != nil {
		return nil, err
	}
	defer wgRows.Close()
	for wgRows.Next() {
		var r WriteGroupRow
		if err := wgRows.Scan(&r.Index, &r.Conflict); err != nil {
			return nil, err
		}
		snap.WriteGroups = append(snap.WriteGroups, r)
	}
	return snap, wgRows.Err()
}

// SystemFlags converts the stored flags back to the typed form.
func (r SystemRow) SystemFlags() types.SystemTypeFlags {
	return types.SystemTypeFlags(r.Flags)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
