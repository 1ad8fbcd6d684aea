package integration

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orrery-engine/orrery/internal/cli"
	"github.com/orrery-engine/orrery/internal/paths"
)

// runCLI executes the orrery root command in-process with isolated config
// and data directories.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv(paths.EnvConfigDir, filepath.Join(tmp, "config"))
	t.Setenv(paths.EnvDataDir, filepath.Join(tmp, "data"))

	root := cli.NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCLIVersion(t *testing.T) {
	stdout, _, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "orrery v")
	assert.Contains(t, stdout, "github.com/orrery-engine/orrery")
}

func TestCLIScanDumpDiff(t *testing.T) {
	tmp := t.TempDir()
	first := filepath.Join(tmp, "first.db")
	second := filepath.Join(tmp, "second.db")

	stdout, _, err := runCLI(t, "scan", "--out", first)
	require.NoError(t, err)
	assert.Contains(t, stdout, "components")
	assert.Contains(t, stdout, first)

	stdout, _, err = runCLI(t, "scan", "--out", second)
	require.NoError(t, err)
	assert.Contains(t, stdout, second)

	stdout, _, err = runCLI(t, "dump", first)
	require.NoError(t, err)
	assert.Contains(t, stdout, "components")
	assert.Contains(t, stdout, "systems")
	assert.Contains(t, stdout, "Position")
	assert.Contains(t, stdout, "MovementSystem")

	// Two scans over the same module set differ only in generation.
	stdout, _, err = runCLI(t, "diff", first, second)
	require.NoError(t, err)
	assert.Contains(t, stdout, "no changes")
}

func TestCLIDumpMissingSnapshot(t *testing.T) {
	_, _, err := runCLI(t, "dump", filepath.Join(t.TempDir(), "absent.db"))
	assert.Error(t, err)
}

func TestCLIScanDefaultLocation(t *testing.T) {
	stdout, _, err := runCLI(t, "scan")
	require.NoError(t, err)
	assert.Contains(t, stdout, "catalog.db")
}
