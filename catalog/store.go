// Package catalog keeps the list of known docsets in sync with the remote
// catalog, falling back to the cached payload when the network fails.
package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docsets"
)

// Store holds the current docset list.
type Store struct {
	Source   docsets.CatalogSource
	Cache    docsets.CatalogCache
	Icons    docsets.IconStore
	Installs docsets.InstallStore
	Logger   *slog.Logger

	mu      sync.RWMutex
	list    []docsets.Docset
	lastSum uint64
	applied bool
}

// NewStore creates a new Store.
func NewStore(source docsets.CatalogSource, cache docsets.CatalogCache, icons docsets.IconStore, installs docsets.InstallStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		Source:   source,
		Cache:    cache,
		Icons:    icons,
		Installs: installs,
		Logger:   logger,
	}
}

// Refresh fetches the remote catalog and replaces the docset list. When the
// fetch fails the cached payload is used instead. The previous list is left
// intact on any error.
func (s *Store) Refresh(ctx context.Context) (*docsets.CatalogChange, error) {
	fromCache := false
	data, fetchErr := s.Source.FetchCatalog(ctx)
	if fetchErr != nil {
		s.Logger.Warn("fetching docset list failed, using cache", "err", fetchErr)

		cached, err := s.Cache.LoadCatalog()
		if err != nil {
			return nil, docsets.Errorf(docsets.EUNAVAILABLE, "error fetching docset list: %v", fetchErr)
		}
		data = cached
		fromCache = true
	}

	change, err := s.apply(data)
	if err != nil {
		return nil, err
	}
	change.FromCache = fromCache

	if !fromCache {
		if err := s.Cache.SaveCatalog(data); err != nil {
			s.Logger.Warn("failed to cache docset list", "err", err)
		}
	}

	return change, nil
}

// LoadCached builds the docset list from the cached payload alone.
func (s *Store) LoadCached(ctx context.Context) (*docsets.CatalogChange, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := s.Cache.LoadCatalog()
	if err != nil {
		return nil, err
	}
	change, err := s.apply(data)
	if err != nil {
		return nil, err
	}
	change.FromCache = true
	return change, nil
}

// apply parses a payload and swaps in the resulting list.
func (s *Store) apply(data []byte) (*docsets.CatalogChange, error) {
	records, err := docsets.ParseCatalog(data)
	if err != nil {
		return nil, err
	}

	// Icons and install probes touch the disk; do that outside the lock.
	previous := s.paths()
	list := make([]docsets.Docset, 0, len(records))
	for _, r := range records {
		d := docsets.Docset{
			Name:     r.Name,
			Title:    r.Title,
			SourceID: r.SourceID,
		}

		if path, err := s.Icons.SaveIcon(r.Name, r.Icon2x); err != nil {
			s.Logger.Warn("failed to save icon", "docset", r.Name, "err", err)
		} else {
			d.IconPath = path
		}

		if path, ok := s.Installs.Lookup(r.Name); ok {
			d.Path = path
		} else if path := previous[r.Name]; path != "" && s.Installs.Exists(path) {
			d.Path = path
		}

		list = append(list, d)
	}

	sum := xxhash.Sum64(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A download may have completed while we were probing.
	for i := range list {
		if list[i].Path != "" {
			continue
		}
		for _, d := range s.list {
			if d.Name == list[i].Name && d.Path != "" && s.Installs.Exists(d.Path) {
				list[i].Path = d.Path
				break
			}
		}
	}

	changed := !s.applied || sum != s.lastSum
	s.list = list
	s.lastSum = sum
	s.applied = true

	return &docsets.CatalogChange{Count: len(list), Changed: changed}, nil
}

func (s *Store) paths() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := make(map[string]string, len(s.list))
	for _, d := range s.list {
		if d.Path != "" {
			m[d.Name] = d.Path
		}
	}
	return m
}

// Docsets returns a copy of the current docset list in catalog order.
func (s *Store) Docsets() []docsets.Docset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]docsets.Docset, len(s.list))
	copy(out, s.list)
	return out
}

// Find returns the named docset.
func (s *Store) Find(name string) (docsets.Docset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.list {
		if d.Name == name {
			return d, nil
		}
	}
	return docsets.Docset{}, docsets.Errorf(docsets.ENOTFOUND, "docset %q not found", name)
}

// SetPath sets the install directory of the named docset. An empty path
// marks it as not installed.
func (s *Store) SetPath(name, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.list {
		if s.list[i].Name == name {
			s.list[i].Path = path
			return nil
		}
	}
	return docsets.Errorf(docsets.ENOTFOUND, "docset %q not found", name)
}
