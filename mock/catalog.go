package mock

import (
	"context"

	"github.com/fwojciec/docsets"
)

var _ docsets.CatalogSource = (*CatalogSource)(nil)

// CatalogSource is a mock implementation of docsets.CatalogSource.
type CatalogSource struct {
	FetchCatalogFn func(ctx context.Context) ([]byte, error)
}

func (s *CatalogSource) FetchCatalog(ctx context.Context) ([]byte, error) {
	return s.FetchCatalogFn(ctx)
}

var _ docsets.CatalogCache = (*CatalogCache)(nil)

// CatalogCache is a mock implementation of docsets.CatalogCache.
type CatalogCache struct {
	LoadCatalogFn func() ([]byte, error)
	SaveCatalogFn func(data []byte) error
}

func (c *CatalogCache) LoadCatalog() ([]byte, error) {
	return c.LoadCatalogFn()
}

func (c *CatalogCache) SaveCatalog(data []byte) error {
	return c.SaveCatalogFn(data)
}

var _ docsets.IconStore = (*IconStore)(nil)

// IconStore is a mock implementation of docsets.IconStore.
type IconStore struct {
	SaveIconFn func(name, data string) (string, error)
}

func (s *IconStore) SaveIcon(name, data string) (string, error) {
	return s.SaveIconFn(name, data)
}
