// Package fs provides file-based storage for docsets, icons and the
// cached catalog.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// Layout describes the directories below a data root:
//
//	<root>/docsets/<name>.docset   installed docsets
//	<root>/docsets/extractXXXXXX   in-progress extractions
//	<root>/icons/<name>.png        catalog icons
//	<root>/docset_list.json        cached catalog payload
//	<root>/cache/                  trampoline file
type Layout struct {
	Root string
}

// NewLayout creates a Layout below root.
func NewLayout(root string) Layout {
	return Layout{Root: root}
}

func (l Layout) DocsetsDir() string { return filepath.Join(l.Root, "docsets") }
func (l Layout) IconsDir() string   { return filepath.Join(l.Root, "icons") }
func (l Layout) CacheDir() string   { return filepath.Join(l.Root, "cache") }
func (l Layout) CatalogFile() string {
	return filepath.Join(l.Root, "docset_list.json")
}

// Ensure creates the directories of the layout.
func (l Layout) Ensure() error {
	for _, dir := range []string{l.DocsetsDir(), l.IconsDir(), l.CacheDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	}
	return nil
}
