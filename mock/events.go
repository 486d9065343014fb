package mock

import "github.com/fwojciec/docsets"

var _ docsets.Events = (*Events)(nil)

// Events is a mock implementation of docsets.Events.
// Unset functions ignore the event.
type Events struct {
	CatalogChangedFn       func()
	DownloadStateChangedFn func(state docsets.DownloadState)
	ProgressFn             func(received, total int64)
	StatusFn               func(msg string)
	ErrorFn                func(err error)
}

func (e *Events) CatalogChanged() {
	if e.CatalogChangedFn != nil {
		e.CatalogChangedFn()
	}
}

func (e *Events) DownloadStateChanged(state docsets.DownloadState) {
	if e.DownloadStateChangedFn != nil {
		e.DownloadStateChangedFn(state)
	}
}

func (e *Events) Progress(received, total int64) {
	if e.ProgressFn != nil {
		e.ProgressFn(received, total)
	}
}

func (e *Events) Status(msg string) {
	if e.StatusFn != nil {
		e.StatusFn(msg)
	}
}

func (e *Events) Error(err error) {
	if e.ErrorFn != nil {
		e.ErrorFn(err)
	}
}
