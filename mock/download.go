package mock

import (
	"context"

	"github.com/fwojciec/docsets"
)

var _ docsets.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of docsets.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, url, dir string, progress docsets.ProgressFunc) (string, error)
}

func (d *Downloader) Download(ctx context.Context, url, dir string, progress docsets.ProgressFunc) (string, error) {
	return d.DownloadFn(ctx, url, dir, progress)
}

var _ docsets.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docsets.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, archive, dst string) error
}

func (e *Extractor) Extract(ctx context.Context, archive, dst string) error {
	return e.ExtractFn(ctx, archive, dst)
}
