package snapshot

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orrery-engine/orrery/internal/catalog"
	"github.com/orrery-engine/orrery/internal/demo"
	"github.com/orrery-engine/orrery/internal/layout"
	"github.com/orrery-engine/orrery/pkg/types"
)

func buildCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	engine := layout.NewEngine()
	cat, err := catalog.New(types.Config{}, engine, engine)
	require.NoError(t, err)
	_, err = cat.Initialize(demo.Modules())
	require.NoError(t, err)
	return cat
}

func TestCaptureWriteReadRoundtrip(t *testing.T) {
	cat := buildCatalog(t)
	snap, err := Capture(cat, types.PolicyRuntime)
	require.NoError(t, err)

	require.NotEmpty(t, snap.Components)
	require.NotEmpty(t, snap.Systems)
	require.NotEmpty(t, snap.Attributes)
	require.NotEmpty(t, snap.WriteGroups)
	assert.Equal(t, cat.Generation().String(), snap.GenerationID)

	path := filepath.Join(t.TempDir(), "catalog.db")
	require.NoError(t, Write(path, snap))

	got, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, snap.GenerationID, got.GenerationID)
	assert.Equal(t, types.PolicyRuntime, got.Policy)
	assert.WithinDuration(t, snap.CreatedAt, got.CreatedAt, time.Second)
	assert.Equal(t, snap.Components, got.Components)
	assert.Equal(t, snap.Systems, got.Systems)
	assert.Equal(t, snap.Attributes, got.Attributes)
	assert.Equal(t, snap.WriteGroups, got.WriteGroups)
}

func TestCaptureRequiresInitializedCatalog(t *testing.T) {
	engine := layout.NewEngine()
	cat, err := catalog.New(types.Config{}, engine, engine)
	require.NoError(t, err)

	_, err = Capture(cat, types.PolicyRuntime)
	assert.ErrorIs(t, err, types.ErrNotInitialized)
}

func TestWriteReplacesExistingFile(t *testing.T) {
	cat := buildCatalog(t)
	snap, err := Capture(cat, types.PolicyRuntime)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "catalog.db")
	require.NoError(t, Write(path, snap))
	require.NoError(t, Write(path, snap))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Len(t, got.Components, len(snap.Components))
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.db"))
	assert.Error(t, err)
}

func TestDiff(t *testing.T) {
	old := &Snapshot{
		Components: []ComponentRow{
			{Index: 0, Name: "demo.Position", ContentHash: 1},
			{Index: 1, Name: "demo.Removed", ContentHash: 2},
			{Index: 2, Name: "demo.Reshaped", ContentHash: 3},
		},
		Systems: []SystemRow{
			{Index: 3, Name: "demo.SpawnSystem", ContentHash: 4, Flags: 1},
		},
	}
	new := &Snapshot{
		Components: []ComponentRow{
			{Index: 0, Name: "demo.Position", ContentHash: 1},
			{Index: 2, Name: "demo.Reshaped", ContentHash: 9},
			{Index: 5, Name: "demo.Added", ContentHash: 6},
		},
		Systems: []SystemRow{
			{Index: 3, Name: "demo.SpawnSystem", ContentHash: 4, Flags: 3},
		},
	}

	changes := Diff(old, new)
	require.Len(t, changes, 4)

	byName := map[string]Change{}
	for _, c := range changes {
		byName[c.Name] = c
	}
	assert.Equal(t, ChangeAdded, byName["demo.Added"].Kind)
	assert.Equal(t, ChangeRemoved, byName["demo.Removed"].Kind)
	assert.Equal(t, ChangeAltered, byName["demo.Reshaped"].Kind)
	assert.Equal(t, ChangeAltered, byName["demo.SpawnSystem"].Kind)

	assert.Empty(t, Diff(old, old), "identical snapshots produce no changes")
}
