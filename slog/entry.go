package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsets"
)

// Ensure LoggingEntryReader implements docsets.EntryReader.
var _ docsets.EntryReader = (*LoggingEntryReader)(nil)

// LoggingEntryReader wraps an EntryReader with debug logging.
type LoggingEntryReader struct {
	next   docsets.EntryReader
	logger *slog.Logger
}

// NewLoggingEntryReader creates a new LoggingEntryReader.
func NewLoggingEntryReader(next docsets.EntryReader, logger *slog.Logger) *LoggingEntryReader {
	return &LoggingEntryReader{next: next, logger: logger}
}

// ReadEntries delegates to the wrapped reader and logs the operation.
func (r *LoggingEntryReader) ReadEntries(ctx context.Context, docsetPath string) (entries []docsets.Entry, err error) {
	defer func(begin time.Time) {
		r.logger.Debug("read entries",
			"path", docsetPath,
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.ReadEntries(ctx, docsetPath)
}
