package docsets

// Events receives notifications for the UI and the query-serving host.
// Implementations must be safe for concurrent use.
type Events interface {
	// CatalogChanged is called whenever the docset list or an install path
	// changed.
	CatalogChanged()

	// DownloadStateChanged is called when a download starts or finishes.
	DownloadStateChanged(state DownloadState)

	// Progress reports archive bytes received by the active download.
	Progress(received, total int64)

	// Status reports an informational message.
	Status(msg string)

	// Error reports a user-visible failure.
	Error(err error)
}

// NopEvents discards all events.
type NopEvents struct{}

func (NopEvents) CatalogChanged()                    {}
func (NopEvents) DownloadStateChanged(DownloadState) {}
func (NopEvents) Progress(int64, int64)              {}
func (NopEvents) Status(string)                      {}
func (NopEvents) Error(error)                        {}
