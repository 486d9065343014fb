package fs

import (
	"os"
	"path/filepath"

	"github.com/fwojciec/docsets"
)

// Ensure CatalogCache implements docsets.CatalogCache at compile time.
var _ docsets.CatalogCache = (*CatalogCache)(nil)

// CatalogCache stores the last fetched catalog payload in a single file.
// Saves go to a temporary file first and are renamed into place, so a crash
// never leaves a truncated cache behind.
type CatalogCache struct {
	path string
}

// NewCatalogCache creates a new CatalogCache backed by path.
func NewCatalogCache(path string) *CatalogCache {
	return &CatalogCache{path: path}
}

func (c *CatalogCache) LoadCatalog() ([]byte, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil, docsets.Errorf(docsets.ENOTFOUND, "no cached docset list")
	}
	return data, err
}

func (c *CatalogCache) SaveCatalog(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(c.path), filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), c.path)
}
