package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	dochttp "github.com/fwojciec/docsets/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloader_Download(t *testing.T) {
	t.Parallel()

	t.Run("names the file after the resolved URL", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/d/com.kapeli/Go/latest", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/feeds/Go.tgz", http.StatusFound)
		})
		mux.HandleFunc("/feeds/Go.tgz", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("archive-bytes"))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		dir := t.TempDir()
		d := dochttp.NewDownloader(dochttp.WithDownloadClient(srv.Client()))
		path, err := d.Download(context.Background(), srv.URL+"/d/com.kapeli/Go/latest", dir, nil)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "Go.tgz"), path)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "archive-bytes", string(data))
	})

	t.Run("reports final progress", func(t *testing.T) {
		t.Parallel()

		body := strings.Repeat("x", 64*1024)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		defer srv.Close()

		var mu sync.Mutex
		var lastReceived, lastTotal int64
		d := dochttp.NewDownloader(dochttp.WithProgressInterval(0))
		_, err := d.Download(context.Background(), srv.URL+"/a.tgz", t.TempDir(), func(received, total int64) {
			mu.Lock()
			defer mu.Unlock()
			lastReceived, lastTotal = received, total
		})

		require.NoError(t, err)
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, int64(len(body)), lastReceived)
		assert.Equal(t, int64(len(body)), lastTotal)
	})

	t.Run("keeps the file inside dir when the URL ends in a parent reference", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("archive-bytes"))
		}))
		defer srv.Close()

		dir := t.TempDir()
		d := dochttp.NewDownloader(dochttp.WithDownloadClient(srv.Client()))
		path, err := d.Download(context.Background(), srv.URL+"/d/..", dir, nil)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "docset.tgz"), path)
	})

	t.Run("returns error for non-200 status", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		d := dochttp.NewDownloader()
		_, err := d.Download(context.Background(), srv.URL+"/missing.tgz", t.TempDir(), nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 404")
	})

	t.Run("aborts when the context is canceled", func(t *testing.T) {
		t.Parallel()

		started := make(chan struct{})
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Length", "1000000")
			_, _ = w.Write([]byte("partial"))
			w.(http.Flusher).Flush()
			close(started)
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			<-started
			cancel()
		}()

		d := dochttp.NewDownloader()
		_, err := d.Download(ctx, srv.URL+"/slow.tgz", t.TempDir(), nil)

		require.Error(t, err)
		assert.True(t, errors.Is(ctx.Err(), context.Canceled))
	})
}
