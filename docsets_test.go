package docsets_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/docsets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := docsets.Errorf(docsets.ENOTFOUND, "docset %q not found", "python")

	assert.Equal(t, docsets.ENOTFOUND, docsets.ErrorCode(err))
	assert.Equal(t, "docset \"python\" not found", docsets.ErrorMessage(err))
}

func TestErrorCode_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("refresh: %w", docsets.Errorf(docsets.EUNAVAILABLE, "offline"))

	assert.Equal(t, docsets.EUNAVAILABLE, docsets.ErrorCode(err))
	assert.Equal(t, "offline", docsets.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, docsets.EINTERNAL, docsets.ErrorCode(errors.New("boom")))
	assert.Equal(t, "Internal error.", docsets.ErrorMessage(errors.New("boom")))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docsets.ErrorCode(nil))
	assert.Empty(t, docsets.ErrorMessage(nil))
}

func TestDocset_FeedKey(t *testing.T) {
	t.Parallel()

	t.Run("strips the final five characters", func(t *testing.T) {
		t.Parallel()

		d := docsets.Docset{SourceID: "com.kapeli.dash"}
		assert.Equal(t, "com.kapeli", d.FeedKey())
	})

	t.Run("returns empty for short source IDs", func(t *testing.T) {
		t.Parallel()

		d := docsets.Docset{SourceID: "abc"}
		assert.Empty(t, d.FeedKey())
	})
}

func TestDocset_DownloadURL(t *testing.T) {
	t.Parallel()

	d := docsets.Docset{Name: "Python_3", SourceID: "com.kapeli.dash"}

	assert.Equal(t, "https://go.zealdocs.org/d/com.kapeli/Python_3/latest", d.DownloadURL("https://go.zealdocs.org/d"))
	assert.Equal(t, "https://go.zealdocs.org/d/com.kapeli/Python_3/latest", d.DownloadURL("https://go.zealdocs.org/d/"))
}

func TestDocset_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires a name", func(t *testing.T) {
		t.Parallel()

		d := docsets.Docset{}
		err := d.Validate()

		require.Error(t, err)
		assert.Equal(t, docsets.EINVALID, docsets.ErrorCode(err))
	})

	t.Run("rejects names that are not a single path component", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"../../victim", "a/b", `a\b`, ".", "..", "/abs"} {
			d := docsets.Docset{Name: name}
			err := d.Validate()

			require.Error(t, err, name)
			assert.Equal(t, docsets.EINVALID, docsets.ErrorCode(err), name)
		}
	})

	t.Run("accepts plain names", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"Go", "Python_3", "C++", "Qt 5", "..hidden"} {
			d := docsets.Docset{Name: name}
			assert.NoError(t, d.Validate(), name)
		}
	})
}

func TestParseCatalog(t *testing.T) {
	t.Parallel()

	t.Run("decodes records", func(t *testing.T) {
		t.Parallel()

		records, err := docsets.ParseCatalog([]byte(`[
			{"name":"Python_3","title":"Python 3","sourceId":"com.kapeli.dash","icon2x":"aWNvbg=="},
			{"name":"Go","title":"Go","sourceId":"com.kapeli.dash"}
		]`))

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Python_3", records[0].Name)
		assert.Equal(t, "Python 3", records[0].Title)
		assert.Equal(t, "com.kapeli.dash", records[0].SourceID)
		assert.Equal(t, "aWNvbg==", records[0].Icon2x)
		assert.Equal(t, "Go", records[1].Name)
	})

	t.Run("skips unnamed and duplicate records", func(t *testing.T) {
		t.Parallel()

		records, err := docsets.ParseCatalog([]byte(`[
			{"name":"Go","title":"first"},
			{"title":"anonymous"},
			{"name":"Go","title":"second"}
		]`))

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "first", records[0].Title)
	})

	t.Run("skips records whose name would leave the data directory", func(t *testing.T) {
		t.Parallel()

		records, err := docsets.ParseCatalog([]byte(`[
			{"name":"../../victim","title":"escape"},
			{"name":"nested/name","title":"nested"},
			{"name":"..","title":"parent"},
			{"name":"Go","title":"Go"}
		]`))

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Go", records[0].Name)
	})

	t.Run("returns EINVALID for malformed JSON", func(t *testing.T) {
		t.Parallel()

		_, err := docsets.ParseCatalog([]byte(`{"not":"a list"`))

		require.Error(t, err)
		assert.Equal(t, docsets.EINVALID, docsets.ErrorCode(err))
		assert.Contains(t, docsets.ErrorMessage(err), "failed to parse docset list")
	})
}

func TestNewIndexItem(t *testing.T) {
	t.Parallel()

	d := docsets.Docset{
		Name:     "python",
		Title:    "Python 3",
		IconPath: "/data/icons/python.png",
		Path:     "/data/docsets/python.docset",
	}

	t.Run("builds identifier, texts and URL", func(t *testing.T) {
		t.Parallel()

		item := docsets.NewIndexItem(d, docsets.Entry{
			Type:   "Function",
			Name:   "os.path.join",
			Path:   "library/os.path.html",
			Anchor: "os.path.join",
		})

		assert.Equal(t, "pythonos.path.join", item.ID)
		assert.Equal(t, "os.path.join", item.Text)
		assert.Equal(t, "Python 3 Function", item.Subtext)
		assert.Equal(t, "/data/icons/python.png", item.IconPath)
		assert.Equal(t, "file:///data/docsets/python.docset/Contents/Resources/Documents/library/os.path.html#os.path.join", item.URL)
	})

	t.Run("omits empty anchor", func(t *testing.T) {
		t.Parallel()

		item := docsets.NewIndexItem(d, docsets.Entry{Type: "Guide", Name: "Tutorial", Path: "tutorial/index.html"})

		assert.Equal(t, "file:///data/docsets/python.docset/Contents/Resources/Documents/tutorial/index.html", item.URL)
	})
}

func TestDownloadOutcome_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ok", docsets.OutcomeOK.String())
	assert.Equal(t, "error", docsets.OutcomeError.String())
	assert.Equal(t, "canceled", docsets.OutcomeCanceled.String())
	assert.Equal(t, "in-progress", docsets.DownloadInProgress.String())
}
