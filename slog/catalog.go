// Package slog wraps docsets services with structured logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docsets"
)

// Ensure LoggingCatalogSource implements docsets.CatalogSource.
var _ docsets.CatalogSource = (*LoggingCatalogSource)(nil)

// LoggingCatalogSource wraps a CatalogSource with logging.
type LoggingCatalogSource struct {
	next   docsets.CatalogSource
	logger *slog.Logger
}

// NewLoggingCatalogSource creates a new LoggingCatalogSource.
func NewLoggingCatalogSource(next docsets.CatalogSource, logger *slog.Logger) *LoggingCatalogSource {
	return &LoggingCatalogSource{next: next, logger: logger}
}

// FetchCatalog delegates to the wrapped source and logs the operation.
func (s *LoggingCatalogSource) FetchCatalog(ctx context.Context) (data []byte, err error) {
	defer func(begin time.Time) {
		s.logger.Info("catalog fetch",
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchCatalog(ctx)
}
