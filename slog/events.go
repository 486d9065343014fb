package slog

import (
	"log/slog"

	"github.com/fwojciec/docsets"
)

// Ensure Events implements docsets.Events.
var _ docsets.Events = (*Events)(nil)

// Events logs every event before passing it on. Progress is logged at
// debug level.
type Events struct {
	next   docsets.Events
	logger *slog.Logger
}

// NewEvents creates a new Events. A nil next discards events after logging.
func NewEvents(next docsets.Events, logger *slog.Logger) *Events {
	if next == nil {
		next = docsets.NopEvents{}
	}
	return &Events{next: next, logger: logger}
}

func (e *Events) CatalogChanged() {
	e.logger.Info("catalog changed")
	e.next.CatalogChanged()
}

func (e *Events) DownloadStateChanged(state docsets.DownloadState) {
	attrs := []any{"docset", state.Name, "status", state.Status.String()}
	if state.Result != nil {
		attrs = append(attrs, "outcome", state.Result.Outcome.String())
	}
	e.logger.Info("download state", attrs...)
	e.next.DownloadStateChanged(state)
}

func (e *Events) Progress(received, total int64) {
	e.logger.Debug("download progress", "received", received, "total", total)
	e.next.Progress(received, total)
}

func (e *Events) Status(msg string) {
	e.logger.Info("status", "message", msg)
	e.next.Status(msg)
}

func (e *Events) Error(err error) {
	e.logger.Error("error", "err", err)
	e.next.Error(err)
}
