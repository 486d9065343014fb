package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/fwojciec/docsets"
	"golang.org/x/time/rate"
)

// DefaultProgressInterval is the minimum interval between progress reports.
const DefaultProgressInterval = 100 * time.Millisecond

// fallbackArchiveName is used when the resolved URL has no file name.
const fallbackArchiveName = "docset.tgz"

// Ensure Downloader implements docsets.Downloader at compile time.
var _ docsets.Downloader = (*Downloader)(nil)

// Downloader streams docset archives to disk.
//
// No overall timeout is applied to transfers; archives can take minutes.
// Cancel the context to abort.
type Downloader struct {
	client   *http.Client
	interval time.Duration
}

// DownloaderOption configures a Downloader.
type DownloaderOption func(*Downloader)

// WithDownloadClient sets the HTTP client used for transfers.
func WithDownloadClient(client *http.Client) DownloaderOption {
	return func(d *Downloader) {
		d.client = client
	}
}

// WithProgressInterval sets the minimum interval between progress reports.
// Defaults to DefaultProgressInterval if not specified.
func WithProgressInterval(interval time.Duration) DownloaderOption {
	return func(d *Downloader) {
		d.interval = interval
	}
}

// NewDownloader creates a new Downloader.
func NewDownloader(opts ...DownloaderOption) *Downloader {
	d := &Downloader{
		client:   &http.Client{},
		interval: DefaultProgressInterval,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download fetches url into a file inside dir named after the resolved URL.
func (d *Downloader) Download(ctx context.Context, url, dir string, progress docsets.ProgressFunc) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	name := path.Base(resp.Request.URL.Path)
	if name == "." || !filepath.IsLocal(name) {
		name = fallbackArchiveName
	}
	dst := filepath.Join(dir, name)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to write to file %q: %w", dst, err)
	}
	defer f.Close()

	w := &progressWriter{
		total:    resp.ContentLength,
		progress: progress,
		limiter:  rate.NewLimiter(rate.Every(d.interval), 1),
	}
	if _, err := io.Copy(f, io.TeeReader(resp.Body, w)); err != nil {
		return "", err
	}
	w.report()

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write to file %q: %w", dst, err)
	}

	return dst, nil
}

// progressWriter counts bytes and reports them through a throttled callback.
type progressWriter struct {
	received int64
	total    int64
	progress docsets.ProgressFunc
	limiter  *rate.Limiter
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.received += int64(len(p))
	if w.limiter.Allow() {
		w.report()
	}
	return len(p), nil
}

func (w *progressWriter) report() {
	if w.progress != nil {
		w.progress(w.received, w.total)
	}
}
