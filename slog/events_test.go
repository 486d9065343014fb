package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/docsets"
	"github.com/fwojciec/docsets/mock"
	dsslog "github.com/fwojciec/docsets/slog"
	"github.com/stretchr/testify/assert"
)

func TestEvents(t *testing.T) {
	t.Parallel()

	t.Run("logs and forwards events", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		var status string
		var changed bool
		next := &mock.Events{
			StatusFn:         func(msg string) { status = msg },
			CatalogChangedFn: func() { changed = true },
		}

		e := dsslog.NewEvents(next, logger)
		e.Status("Docset 'Go' ready.")
		e.CatalogChanged()
		e.DownloadStateChanged(docsets.DownloadState{
			Status: docsets.DownloadFinished,
			Name:   "Go",
			Result: &docsets.DownloadResult{Name: "Go", Outcome: docsets.OutcomeCanceled},
		})
		e.Error(errors.New("disk full"))

		assert.Equal(t, "Docset 'Go' ready.", status)
		assert.True(t, changed)
		output := buf.String()
		assert.Contains(t, output, "message=\"Docset 'Go' ready.\"")
		assert.Contains(t, output, "catalog changed")
		assert.Contains(t, output, "status=finished")
		assert.Contains(t, output, "outcome=canceled")
		assert.Contains(t, output, "err=\"disk full\"")
	})

	t.Run("progress is logged at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		dsslog.NewEvents(nil, logger).Progress(1, 2)

		assert.Empty(t, buf.String())
	})
}
