// Package index builds the searchable item list over installed docsets in
// the background and publishes it atomically.
package index

import (
	"strings"
	"sync/atomic"

	"github.com/fwojciec/docsets"
)

// Snapshot is a published item list and the build generation it came from.
type Snapshot struct {
	Generation uint64
	Items      []docsets.IndexItem
}

// Index holds the most recently published snapshot. Readers never observe a
// partially built list.
type Index struct {
	current atomic.Pointer[Snapshot]
}

// Publish replaces the current snapshot. Generations older than the current
// one are refused. Reports whether the snapshot was published.
func (idx *Index) Publish(generation uint64, items []docsets.IndexItem) bool {
	next := &Snapshot{Generation: generation, Items: items}
	for {
		cur := idx.current.Load()
		if cur != nil && cur.Generation > generation {
			return false
		}
		if idx.current.CompareAndSwap(cur, next) {
			return true
		}
	}
}

// Snapshot returns the current snapshot, or nil before the first publish.
func (idx *Index) Snapshot() *Snapshot {
	return idx.current.Load()
}

// Items returns the current item list. The slice must not be modified.
func (idx *Index) Items() []docsets.IndexItem {
	if s := idx.current.Load(); s != nil {
		return s.Items
	}
	return nil
}

// Search returns up to limit items whose text contains query, ignoring
// case. A limit of zero or less returns all matches.
func (idx *Index) Search(query string, limit int) []docsets.IndexItem {
	q := strings.ToLower(strings.TrimSpace(query))

	var out []docsets.IndexItem
	for _, item := range idx.Items() {
		if q != "" && !strings.Contains(strings.ToLower(item.Text), q) {
			continue
		}
		out = append(out, item)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
