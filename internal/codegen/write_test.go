package codegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	outputs := []Output{
		{Filename: "models/pet.ts", Content: "export interface Pet {}\n"},
		{Filename: "models.ts", Content: "export { Pet } from './models/pet';\n"},
	}

	stats, err := Write(dir, outputs, true)
	require.NoError(t, err)
	require.Len(t, stats.Written, 2)
	require.Zero(t, stats.Unchanged)

	content, err := os.ReadFile(filepath.Join(dir, "models", "pet.ts"))
	require.NoError(t, err)
	require.Equal(t, "export interface Pet {}\n", string(content))

	stats, err = Write(dir, outputs, true)
	require.NoError(t, err)
	require.Empty(t, stats.Written)
	require.Equal(t, 2, stats.Unchanged)
}

func TestWriteRemovesStaleFiles(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "models", "old.ts")
	other := filepath.Join(dir, "README.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("keep"), 0o644))

	outputs := []Output{{Filename: "models/pet.ts", Content: "pet"}}

	stats, err := Write(dir, outputs, false)
	require.NoError(t, err)
	require.Empty(t, stats.Removed)
	require.FileExists(t, stale)

	stats, err = Write(dir, outputs, true)
	require.NoError(t, err)
	require.Equal(t, []string{stale}, stats.Removed)
	require.NoFileExists(t, stale)
	require.FileExists(t, other)
}
