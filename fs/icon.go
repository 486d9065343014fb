package fs

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/fwojciec/docsets"
)

// Ensure IconStore implements docsets.IconStore at compile time.
var _ docsets.IconStore = (*IconStore)(nil)

// IconStore writes catalog icons as <name>.png files.
type IconStore struct {
	dir string
}

// NewIconStore creates a new IconStore writing to dir.
func NewIconStore(dir string) *IconStore {
	return &IconStore{dir: dir}
}

// SaveIcon decodes a base64 image and writes it re-encoded as PNG.
func (s *IconStore) SaveIcon(name, data string) (string, error) {
	if !docsets.IsValidName(name) {
		return "", docsets.Errorf(docsets.EINVALID, "invalid docset name %q", name)
	}
	if data == "" {
		return "", docsets.Errorf(docsets.EINVALID, "docset %q has no icon", name)
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64 icon: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to load image from base64 data: %w", err)
	}

	path := filepath.Join(s.dir, name+".png")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file for writing: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return path, nil
}
