package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// WriteStats counts what Write did.
type WriteStats struct {
	Written   []string
	Unchanged int
	Removed   []string
}

// Write stores outputs under dir. Files with identical content are not
// touched. With removeStale, every other .ts file under dir is deleted.
func Write(dir string, outputs []Output, removeStale bool) (WriteStats, error) {
	var stats WriteStats
	if err := os.MkdirAll(dir, 0755); err != nil {
		return stats, fmt.Errorf("creating output directory: %w", err)
	}

	keep := make(map[string]bool, len(outputs))
	for _, out := range outputs {
		path := filepath.Join(dir, filepath.FromSlash(out.Filename))
		keep[path] = true

		existing, err := os.ReadFile(path)
		if err == nil && bytes.Equal(existing, []byte(out.Content)) {
			stats.Unchanged++
			continue
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return stats, fmt.Errorf("reading %s: %w", path, err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return stats, fmt.Errorf("creating directory for %s: %w", path, err)
		}
		if err := os.WriteFile(path, []byte(out.Content), 0644); err != nil {
			return stats, fmt.Errorf("writing %s: %w", path, err)
		}
		stats.Written = append(stats.Written, path)
	}

	if !removeStale {
		return stats, nil
	}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".ts") || keep[path] {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("removing stale %s: %w", path, err)
		}
		stats.Removed = append(stats.Removed, path)
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("removing stale files: %w", err)
	}
	return stats, nil
}
