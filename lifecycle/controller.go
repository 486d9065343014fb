// Package lifecycle ties catalog, downloads, removals and the index
// together. Every change of the installed set triggers an index rebuild.
package lifecycle

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fwojciec/docsets"
	"github.com/fwojciec/docsets/catalog"
	"github.com/fwojciec/docsets/download"
	"github.com/fwojciec/docsets/index"
)

// Controller orchestrates the docset lifecycle.
type Controller struct {
	catalog   *catalog.Store
	downloads *download.Manager
	builder   *index.Builder
	index     *index.Index
	installs  docsets.InstallStore
	events    docsets.Events
	logger    *slog.Logger

	// mu serializes changes to install paths.
	mu sync.Mutex
	wg sync.WaitGroup
}

// Option configures a Controller.
type Option func(*Controller)

// WithEvents sets the receiver of outbound events.
func WithEvents(events docsets.Events) Option {
	return func(c *Controller) {
		c.events = events
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController creates a new Controller. Download progress of downloads is
// forwarded to the events receiver.
func NewController(store *catalog.Store, downloads *download.Manager, builder *index.Builder, idx *index.Index, installs docsets.InstallStore, opts ...Option) *Controller {
	c := &Controller{
		catalog:   store,
		downloads: downloads,
		builder:   builder,
		index:     idx,
		installs:  installs,
		events:    docsets.NopEvents{},
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	downloads.OnProgress = c.events.Progress
	return c
}

// Refresh updates the catalog from the network or the cache.
func (c *Controller) Refresh(ctx context.Context) (*docsets.CatalogChange, error) {
	change, err := c.catalog.Refresh(ctx)
	if err != nil {
		c.events.Error(err)
		return nil, err
	}
	if change.FromCache {
		c.events.Status("Using cached docset list.")
	}
	c.catalogChanged()
	return change, nil
}

// LoadCached loads the catalog from the cache without network access.
func (c *Controller) LoadCached(ctx context.Context) (*docsets.CatalogChange, error) {
	change, err := c.catalog.LoadCached(ctx)
	if err != nil {
		return nil, err
	}
	c.catalogChanged()
	return change, nil
}

// Docsets returns the current docset list.
func (c *Controller) Docsets() []docsets.Docset {
	return c.catalog.Docsets()
}

// Download starts installing the named docset. The returned channel
// receives the result once the controller has handled the completion.
func (c *Controller) Download(name string) (<-chan docsets.DownloadResult, error) {
	d, err := c.catalog.Find(name)
	if err != nil {
		return nil, err
	}

	job, err := c.downloads.Start(d)
	if err != nil {
		return nil, err
	}
	c.events.DownloadStateChanged(docsets.DownloadState{
		Status: docsets.DownloadInProgress,
		Name:   d.Name,
		Total:  -1,
	})

	results := make(chan docsets.DownloadResult, 1)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(results)

		<-job.Done()
		result := job.Result()
		c.finishDownload(result)
		c.events.DownloadStateChanged(docsets.DownloadState{
			Status: docsets.DownloadFinished,
			Name:   result.Name,
			Result: &result,
		})
		results <- result
	}()

	return results, nil
}

func (c *Controller) finishDownload(result docsets.DownloadResult) {
	switch result.Outcome {
	case docsets.OutcomeOK:
		c.mu.Lock()
		err := c.catalog.SetPath(result.Name, result.Path)
		c.mu.Unlock()
		if err != nil {
			// The docset vanished from a catalog refreshed meanwhile.
			c.logger.Warn("installed docset not in catalog", "docset", result.Name, "err", err)
		}
		c.events.Status("Docset '" + result.Name + "' ready.")
		c.catalogChanged()
	case docsets.OutcomeCanceled:
		c.events.Status("Cancelled '" + result.Name + "' docset download.")
	default:
		c.logger.Error("docset download failed", "docset", result.Name, "err", result.Err)
		c.events.Error(result.Err)
	}
}

// CancelDownload aborts the running download.
func (c *Controller) CancelDownload() error {
	return c.downloads.Cancel()
}

// IsDownloading reports whether a download is running.
func (c *Controller) IsDownloading() bool {
	return c.downloads.IsDownloading()
}

// DownloadState returns the state of the download slot.
func (c *Controller) DownloadState() docsets.DownloadState {
	return c.downloads.State()
}

// Remove deletes the install directory of the named docset once confirm
// agrees. A nil confirm counts as agreement.
func (c *Controller) Remove(name string, confirm docsets.Confirmer) error {
	d, err := c.catalog.Find(name)
	if err != nil {
		return err
	}
	if !d.IsInstalled() {
		return docsets.Errorf(docsets.EINVALID, "docset %q is not installed", name)
	}

	if !c.installs.Exists(d.Path) {
		c.logger.Info("docset directory already gone", "docset", name, "path", d.Path)
		if err := c.clearPath(name, d.Path); err != nil {
			return err
		}
		c.catalogChanged()
		return nil
	}

	if confirm != nil && !confirm(d) {
		return nil
	}

	if err := c.installs.Remove(d.Path); err != nil {
		err = docsets.Errorf(docsets.EINTERNAL, "failed to remove directory '%s': %v", d.Path, err)
		c.events.Error(err)
		return err
	}
	if err := c.clearPath(name, d.Path); err != nil {
		return err
	}
	c.events.Status("Docset '" + name + "' removed.")
	c.catalogChanged()
	return nil
}

// clearPath marks the docset as not installed unless a download installed
// it again meanwhile.
func (c *Controller) clearPath(name, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, err := c.catalog.Find(name)
	if err != nil {
		return err
	}
	if d.Path != path {
		return nil
	}
	return c.catalog.SetPath(name, "")
}

// Reconcile re-probes install directories after changes made outside the
// controller. Paths whose directory vanished are cleared and newly appeared
// <name>.docset directories are adopted.
func (c *Controller) Reconcile() bool {
	c.mu.Lock()
	changed := false
	for _, d := range c.catalog.Docsets() {
		switch {
		case d.IsInstalled() && !c.installs.Exists(d.Path):
			if err := c.catalog.SetPath(d.Name, ""); err == nil {
				changed = true
			}
		case !d.IsInstalled():
			if path, ok := c.installs.Lookup(d.Name); ok {
				if err := c.catalog.SetPath(d.Name, path); err == nil {
					changed = true
				}
			}
		}
	}
	c.mu.Unlock()

	if changed {
		c.catalogChanged()
	}
	return changed
}

// Rebuild schedules an index rebuild.
func (c *Controller) Rebuild() {
	c.builder.Schedule()
}

// Items returns the published index items.
func (c *Controller) Items() []docsets.IndexItem {
	return c.index.Items()
}

// Search returns up to limit index items whose text contains query.
func (c *Controller) Search(query string, limit int) []docsets.IndexItem {
	return c.index.Search(query, limit)
}

// WaitIndexed blocks until the most recently scheduled index build finished.
func (c *Controller) WaitIndexed() {
	c.builder.Wait()
}

// Close cancels a running download and index build and waits for both.
func (c *Controller) Close() {
	if c.downloads.IsDownloading() {
		_ = c.downloads.Cancel()
	}
	c.wg.Wait()
	c.builder.Close()
}

func (c *Controller) catalogChanged() {
	c.events.CatalogChanged()
	c.builder.Schedule()
}
