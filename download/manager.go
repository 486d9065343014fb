// Package download runs the single in-flight docset download and install
// pipeline.
package download

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/docsets"
	"github.com/google/uuid"
)

// Job is one download of a docset.
type Job struct {
	ID     uuid.UUID
	Docset docsets.Docset

	cancel   context.CancelFunc
	canceled atomic.Bool
	done     chan struct{}
	result   docsets.DownloadResult
}

// Done is closed when the job terminated and the download slot is free.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Result returns the outcome of the job. Only valid after Done is closed.
func (j *Job) Result() docsets.DownloadResult {
	return j.result
}

// Manager owns at most one download at a time.
type Manager struct {
	Transport docsets.Downloader
	Extractor docsets.Extractor
	Installs  docsets.InstallStore
	FeedURL   string
	Logger    *slog.Logger

	// OnProgress receives transfer progress of the active job.
	OnProgress docsets.ProgressFunc

	mu       sync.Mutex
	active   *Job
	received int64
	total    int64
	last     *docsets.DownloadResult
}

// NewManager creates a new Manager.
func NewManager(transport docsets.Downloader, extractor docsets.Extractor, installs docsets.InstallStore, feedURL string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		Transport: transport,
		Extractor: extractor,
		Installs:  installs,
		FeedURL:   feedURL,
		Logger:    logger,
	}
}

// Start begins downloading d. Returns ECONFLICT if a download is already
// running.
func (m *Manager) Start(d docsets.Docset) (*Job, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil {
		return nil, docsets.Errorf(docsets.ECONFLICT, "already downloading %q", m.active.Docset.Name)
	}

	ctx, cancel := context.WithCancel(context.Background())
	job := &Job{
		ID:     uuid.New(),
		Docset: d,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	m.active = job
	m.received, m.total = 0, -1
	m.last = nil

	go m.run(ctx, job)

	return job, nil
}

// Cancel aborts the running download. Returns EINVALID if none is running.
func (m *Manager) Cancel() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return docsets.Errorf(docsets.EINVALID, "not downloading")
	}
	m.active.canceled.Store(true)
	m.active.cancel()
	return nil
}

// IsDownloading reports whether a download is running.
func (m *Manager) IsDownloading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active != nil
}

// State returns the state of the download slot.
func (m *Manager) State() docsets.DownloadState {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil {
		return docsets.DownloadState{
			Status:   docsets.DownloadInProgress,
			Name:     m.active.Docset.Name,
			Received: m.received,
			Total:    m.total,
		}
	}
	if m.last != nil {
		r := *m.last
		return docsets.DownloadState{Status: docsets.DownloadFinished, Name: r.Name, Result: &r}
	}
	return docsets.DownloadState{Status: docsets.DownloadNone}
}

func (m *Manager) run(ctx context.Context, job *Job) {
	defer job.cancel()

	path, err := m.install(ctx, job)

	// Once the bundle is renamed into place the install stands, even if a
	// cancel arrived meanwhile.
	result := docsets.DownloadResult{Name: job.Docset.Name}
	switch {
	case err == nil:
		result.Outcome = docsets.OutcomeOK
		result.Path = path
	case job.canceled.Load():
		result.Outcome = docsets.OutcomeCanceled
	default:
		result.Outcome = docsets.OutcomeError
		result.Err = err
	}
	job.result = result

	m.mu.Lock()
	m.active = nil
	m.last = &result
	m.mu.Unlock()

	close(job.done)
}

// install downloads, extracts and moves the docset into place. The scratch
// directory is removed in every outcome.
func (m *Manager) install(ctx context.Context, job *Job) (string, error) {
	name := job.Docset.Name

	scratch, err := m.Installs.Scratch()
	if err != nil {
		return "", docsets.Errorf(docsets.EINTERNAL, "downloading docset failed: %v", err)
	}
	defer func() {
		if err := m.Installs.Remove(scratch); err != nil {
			m.Logger.Warn("failed to remove scratch directory", "dir", scratch, "err", err)
		}
	}()

	url := job.Docset.DownloadURL(m.FeedURL)
	m.Logger.Info("downloading docset", "docset", name, "url", url, "job", job.ID)

	archive, err := m.Transport.Download(ctx, url, scratch, m.progress(job))
	if err != nil {
		return "", docsets.Errorf(docsets.EUNAVAILABLE, "downloading docset failed: %s", reason(err))
	}

	if err := m.Extractor.Extract(ctx, archive, scratch); err != nil {
		return "", docsets.Errorf(docsets.EINVALID, "extracting docset failed: '%s' (%s)", filepath.Base(archive), reason(err))
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	bundle, err := m.Installs.FindBundle(scratch)
	if err != nil {
		return "", err
	}

	path, err := m.Installs.Install(bundle, name)
	if err != nil {
		return "", docsets.Errorf(docsets.EINTERNAL, "%s", reason(err))
	}
	return path, nil
}

func (m *Manager) progress(job *Job) docsets.ProgressFunc {
	return func(received, total int64) {
		m.mu.Lock()
		if m.active == job {
			m.received, m.total = received, total
		}
		m.mu.Unlock()

		if m.OnProgress != nil {
			m.OnProgress(received, total)
		}
	}
}

// reason returns the message of an application error and the plain text of
// any other error.
func reason(err error) string {
	var e *docsets.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
