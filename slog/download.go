package slog

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/fwojciec/docsets"
)

// Ensure LoggingDownloader implements docsets.Downloader.
var _ docsets.Downloader = (*LoggingDownloader)(nil)

// LoggingDownloader wraps a Downloader with logging.
type LoggingDownloader struct {
	next   docsets.Downloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next docsets.Downloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

// Download delegates to the wrapped downloader and logs the transfer.
func (d *LoggingDownloader) Download(ctx context.Context, url, dir string, progress docsets.ProgressFunc) (file string, err error) {
	var received int64
	defer func(begin time.Time) {
		d.logger.Info("download",
			"url", url,
			"file", file,
			"bytes", received,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Download(ctx, url, dir, func(n, total int64) {
		received = n
		if progress != nil {
			progress(n, total)
		}
	})
}

// Ensure LoggingExtractor implements docsets.Extractor.
var _ docsets.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   docsets.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next docsets.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(ctx context.Context, archive, dst string) (err error) {
	var size int64
	if info, statErr := os.Stat(archive); statErr == nil {
		size = info.Size()
	}
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"archive", archive,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(ctx, archive, dst)
}
