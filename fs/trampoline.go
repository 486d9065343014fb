package fs

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
)

// Trampoline writes an HTML file redirecting to a docset entry URL.
// Some browsers drop the anchor of file: URLs passed on the command line,
// but follow a meta refresh that carries it.
type Trampoline struct {
	dir string
}

// NewTrampoline creates a new Trampoline writing into dir.
func NewTrampoline(dir string) *Trampoline {
	return &Trampoline{dir: dir}
}

// Write replaces the trampoline file and returns its path.
func (t *Trampoline) Write(url string) (string, error) {
	if err := os.MkdirAll(t.dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(t.dir, "trampoline.html")
	content := fmt.Sprintf(`<html><head><meta http-equiv="refresh" content="0;%s"></head></html>`, html.EscapeString(url))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to open file for writing: %w", err)
	}
	return path, nil
}
