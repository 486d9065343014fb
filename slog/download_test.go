package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docsets"
	"github.com/fwojciec/docsets/mock"
	dsslog "github.com/fwojciec/docsets/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingDownloader_Download(t *testing.T) {
	t.Parallel()

	t.Run("logs transfer and forwards progress", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Downloader{
			DownloadFn: func(_ context.Context, _, dir string, progress docsets.ProgressFunc) (string, error) {
				progress(512, 1024)
				progress(1024, 1024)
				return dir + "/Go.tgz", nil
			},
		}
		var got []int64

		d := dsslog.NewLoggingDownloader(inner, logger)
		file, err := d.Download(context.Background(), "https://go.zealdocs.org/d/com.kapeli/Go/latest", "/tmp/extract1", func(received, _ int64) {
			got = append(got, received)
		})

		require.NoError(t, err)
		assert.Equal(t, "/tmp/extract1/Go.tgz", file)
		assert.Equal(t, []int64{512, 1024}, got)
		output := buf.String()
		assert.Contains(t, output, "msg=download")
		assert.Contains(t, output, "url=https://go.zealdocs.org/d/com.kapeli/Go/latest")
		assert.Contains(t, output, "file=/tmp/extract1/Go.tgz")
		assert.Contains(t, output, "bytes=1024")
	})

	t.Run("accepts nil progress", func(t *testing.T) {
		t.Parallel()

		inner := &mock.Downloader{
			DownloadFn: func(_ context.Context, _, _ string, progress docsets.ProgressFunc) (string, error) {
				progress(1, 1)
				return "", errors.New("HTTP 404")
			},
		}

		d := dsslog.NewLoggingDownloader(inner, slog.New(slog.DiscardHandler))
		_, err := d.Download(context.Background(), "u", "d", nil)

		require.Error(t, err)
	})
}

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs archive size", func(t *testing.T) {
		t.Parallel()

		archive := filepath.Join(t.TempDir(), "Go.tgz")
		require.NoError(t, os.WriteFile(archive, make([]byte, 42), 0o644))

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(context.Context, string, string) error { return nil },
		}

		err := dsslog.NewLoggingExtractor(inner, logger).Extract(context.Background(), archive, t.TempDir())

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "bytes=42")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(context.Context, string, string) error {
				return errors.New("unrecognized archive format")
			},
		}

		err := dsslog.NewLoggingExtractor(inner, logger).Extract(context.Background(), "/missing.tgz", "/dst")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"unrecognized archive format\"")
	})
}
