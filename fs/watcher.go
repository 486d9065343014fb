package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultMergeDelay is how long the watcher waits for a burst of changes to
// settle before reporting them.
const DefaultMergeDelay = 500 * time.Millisecond

// Watcher reports docset bundles appearing in or disappearing from the
// install directory, e.g. when a user deletes one in a file manager.
type Watcher struct {
	dir    string
	delay  time.Duration
	logger *slog.Logger
}

// NewWatcher creates a new Watcher for the install directory dir.
func NewWatcher(dir string, delay time.Duration, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{dir: dir, delay: delay, logger: logger}
}

// Watch blocks until ctx is canceled, calling onChange once per settled
// burst of bundle-level changes.
func (w *Watcher) Watch(ctx context.Context, onChange func()) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %q: %w", w.dir, err)
	}

	timer := time.NewTimer(w.delay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !isBundleEvent(event) {
				continue
			}
			w.logger.Debug("docset directory changed", "path", event.Name, "op", event.Op.String())
			timer.Reset(w.delay)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "err", err)
		case <-timer.C:
			onChange()
		}
	}
}

func isBundleEvent(event fsnotify.Event) bool {
	if !strings.HasSuffix(filepath.Base(event.Name), BundleExt) {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
