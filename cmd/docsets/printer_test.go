package main_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fwojciec/docsets"
	main "github.com/fwojciec/docsets/cmd/docsets"
	"github.com/stretchr/testify/assert"
)

func TestPrinter(t *testing.T) {
	t.Parallel()

	t.Run("prints download lifecycle", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		p := main.NewPrinter(&buf)

		p.DownloadStateChanged(docsets.DownloadState{Status: docsets.DownloadInProgress, Name: "Go"})
		p.Progress(512, 2048)
		p.Progress(2048, 2048)
		p.Status("Docset 'Go' ready.")
		p.DownloadStateChanged(docsets.DownloadState{Status: docsets.DownloadFinished, Name: "Go"})

		assert.Equal(t,
			"Downloading Go...\n\r512 B / 2.0 KiB (25%)\r2.0 KiB / 2.0 KiB (100%)\nDocset 'Go' ready.\n",
			buf.String())
	})

	t.Run("prints bytes when total is unknown", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		p := main.NewPrinter(&buf)

		p.Progress(3*1024*1024, -1)
		p.DownloadStateChanged(docsets.DownloadState{Status: docsets.DownloadFinished})

		assert.Equal(t, "\r3.0 MiB\n", buf.String())
	})

	t.Run("ignores errors and catalog changes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		p := main.NewPrinter(&buf)

		p.Error(errors.New("boom"))
		p.CatalogChanged()

		assert.Empty(t, buf.String())
	})
}
