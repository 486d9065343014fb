package docsets

import "context"

// DownloadStatus is the coarse state of the download slot.
type DownloadStatus int

const (
	DownloadNone DownloadStatus = iota
	DownloadInProgress
	DownloadFinished
)

// String returns a human readable status.
func (s DownloadStatus) String() string {
	switch s {
	case DownloadInProgress:
		return "in-progress"
	case DownloadFinished:
		return "finished"
	default:
		return "none"
	}
}

// DownloadOutcome is the terminal result of a download.
type DownloadOutcome int

const (
	OutcomeOK DownloadOutcome = iota
	OutcomeError
	OutcomeCanceled
)

// String returns a human readable outcome.
func (o DownloadOutcome) String() string {
	switch o {
	case OutcomeError:
		return "error"
	case OutcomeCanceled:
		return "canceled"
	default:
		return "ok"
	}
}

// DownloadResult is delivered once per download when it terminates.
type DownloadResult struct {
	Name    string
	Path    string // install directory, set when Outcome is OutcomeOK
	Outcome DownloadOutcome
	Err     error // set when Outcome is OutcomeError
}

// DownloadState reports the download slot.
type DownloadState struct {
	Status   DownloadStatus
	Name     string
	Received int64
	Total    int64 // -1 when unknown
	Result   *DownloadResult
}

// ProgressFunc is called as archive bytes arrive.
// Total is -1 when the server did not announce a length.
type ProgressFunc func(received, total int64)

// Downloader transfers a docset archive.
type Downloader interface {
	// Download fetches url into a new file inside dir and returns the file
	// path. The file name is taken from the resolved (post-redirect) URL.
	// Canceling ctx aborts the transfer.
	Download(ctx context.Context, url, dir string, progress ProgressFunc) (string, error)
}

// Extractor unpacks archives.
type Extractor interface {
	// Extract unpacks the archive into dst. Entries never land outside dst.
	Extract(ctx context.Context, archive, dst string) error
}
