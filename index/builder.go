package index

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/docsets"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of docsets read in parallel.
const DefaultConcurrency = 4

// Builder rebuilds the index in the background. At most one build runs at a
// time; scheduling while a build runs aborts it and starts a new one.
type Builder struct {
	Reader docsets.EntryReader
	Index  *Index
	Logger *slog.Logger

	// Docsets returns the docset list at the start of each build.
	Docsets func() []docsets.Docset

	// Concurrency limits parallel entry reads.
	Concurrency int

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelCauseFunc
	done       chan struct{}
	aborting   bool
	closed     bool
}

// NewBuilder creates a new Builder publishing into idx.
func NewBuilder(reader docsets.EntryReader, idx *Index, list func() []docsets.Docset, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Builder{
		Reader:      reader,
		Index:       idx,
		Docsets:     list,
		Logger:      logger,
		Concurrency: DefaultConcurrency,
	}
}

// errSuperseded aborts a build replaced by a newer one.
var errSuperseded = docsets.Errorf(docsets.ECANCELED, "index build superseded")

// Schedule starts a new build, aborting the running one if any.
func (b *Builder) Schedule() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	if b.cancel != nil {
		b.cancel(errSuperseded)
	}

	b.generation++
	gen := b.generation
	prev := b.done
	ctx, cancel := context.WithCancelCause(context.Background())
	done := make(chan struct{})

	b.cancel = cancel
	b.done = done
	b.aborting = false

	go func() {
		defer close(done)
		defer cancel(nil)

		// Builds never overlap.
		if prev != nil {
			<-prev
		}
		b.build(ctx, gen)

		b.mu.Lock()
		if b.done == done {
			b.cancel = nil
			b.aborting = false
		}
		b.mu.Unlock()
	}()
}

// Cancel aborts the running build without starting a new one.
func (b *Builder) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cancel != nil {
		b.cancel(context.Canceled)
		b.aborting = true
	}
}

// Wait blocks until the most recently scheduled build finished.
func (b *Builder) Wait() {
	for {
		b.mu.Lock()
		done := b.done
		b.mu.Unlock()

		if done == nil {
			return
		}
		<-done

		// A build scheduled meanwhile replaces the one waited for.
		b.mu.Lock()
		latest := b.done == done
		b.mu.Unlock()
		if latest {
			return
		}
	}
}

// State reports the builder.
func (b *Builder) State() docsets.IndexBuildState {
	b.mu.Lock()
	defer b.mu.Unlock()

	return docsets.IndexBuildState{
		Running:        b.cancel != nil,
		AbortRequested: b.aborting,
		Generation:     b.generation,
	}
}

// Close aborts the running build, waits for it and refuses further builds.
func (b *Builder) Close() {
	b.mu.Lock()
	b.closed = true
	if b.cancel != nil {
		b.cancel(context.Canceled)
		b.aborting = true
	}
	b.mu.Unlock()

	b.Wait()
}

func (b *Builder) build(ctx context.Context, gen uint64) {
	begin := time.Now()
	if ctx.Err() != nil {
		return
	}

	var installed []docsets.Docset
	for _, d := range b.Docsets() {
		if d.IsInstalled() {
			installed = append(installed, d)
		}
	}

	results := make([][]docsets.IndexItem, len(installed))
	g, gctx := errgroup.WithContext(ctx)
	limit := b.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	g.SetLimit(limit)

	for i, d := range installed {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entries, err := b.Reader.ReadEntries(gctx, d.Path)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				b.Logger.Warn("failed to read docset entries", "docset", d.Name, "err", err)
				return nil
			}
			items := make([]docsets.IndexItem, 0, len(entries))
			for _, e := range entries {
				items = append(items, docsets.NewIndexItem(d, e))
			}
			results[i] = items
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		b.Logger.Debug("index build aborted",
			"generation", gen,
			"cause", context.Cause(ctx),
			"duration", time.Since(begin),
		)
		return
	}

	var items []docsets.IndexItem
	for _, r := range results {
		items = append(items, r...)
	}

	published := b.Index.Publish(gen, items)
	b.Logger.Info("index build",
		"generation", gen,
		"docsets", len(installed),
		"items", len(items),
		"published", published,
		"duration", time.Since(begin),
	)
}
