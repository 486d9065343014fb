package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docsets"
	"github.com/fwojciec/docsets/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryReader_ReadEntries(t *testing.T) {
	t.Parallel()

	t.Run("reads searchIndex entries", func(t *testing.T) {
		t.Parallel()

		bundle := writeIndex(t, t.TempDir(),
			`CREATE TABLE searchIndex(id INTEGER PRIMARY KEY, name TEXT, type TEXT, path TEXT)`,
			`INSERT INTO searchIndex(name, type, path) VALUES ('os.path.join', 'Function', 'library/os.path.html#os.path.join')`,
			`INSERT INTO searchIndex(name, type, path) VALUES ('os', 'Module', 'library/os.html')`,
		)

		entries, err := sqlite.NewEntryReader().ReadEntries(context.Background(), bundle)

		require.NoError(t, err)
		assert.ElementsMatch(t, []docsets.Entry{
			{Type: "Function", Name: "os.path.join", Path: "library/os.path.html", Anchor: "os.path.join"},
			{Type: "Module", Name: "os", Path: "library/os.html"},
		}, entries)
	})

	t.Run("strips dash entry markers", func(t *testing.T) {
		t.Parallel()

		bundle := writeIndex(t, t.TempDir(),
			`CREATE TABLE searchIndex(id INTEGER PRIMARY KEY, name TEXT, type TEXT, path TEXT)`,
			`INSERT INTO searchIndex(name, type, path) VALUES ('Open', 'Function', '<dash_entry_name=Open><dash_entry_originalName=os.Open>pkg/os/index.html#Open')`,
		)

		entries, err := sqlite.NewEntryReader().ReadEntries(context.Background(), bundle)

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "pkg/os/index.html", entries[0].Path)
		assert.Equal(t, "Open", entries[0].Anchor)
	})

	t.Run("reads core data entries", func(t *testing.T) {
		t.Parallel()

		bundle := writeIndex(t, t.TempDir(),
			`CREATE TABLE ZTOKENTYPE(Z_PK INTEGER PRIMARY KEY, ZTYPENAME TEXT)`,
			`CREATE TABLE ZFILEPATH(Z_PK INTEGER PRIMARY KEY, ZPATH TEXT)`,
			`CREATE TABLE ZTOKENMETAINFORMATION(Z_PK INTEGER PRIMARY KEY, ZFILE INTEGER, ZANCHOR TEXT)`,
			`CREATE TABLE ZTOKEN(Z_PK INTEGER PRIMARY KEY, ZTOKENNAME TEXT, ZTOKENTYPE INTEGER, ZMETAINFORMATION INTEGER)`,
			`INSERT INTO ZTOKENTYPE VALUES (1, 'cl')`,
			`INSERT INTO ZFILEPATH VALUES (1, 'documentation/NSString.html')`,
			`INSERT INTO ZTOKENMETAINFORMATION VALUES (1, 1, '//apple_ref/occ/cl/NSString')`,
			`INSERT INTO ZTOKENMETAINFORMATION VALUES (2, 1, NULL)`,
			`INSERT INTO ZTOKEN VALUES (1, 'NSString', 1, 1)`,
			`INSERT INTO ZTOKEN VALUES (2, 'NSStringOverview', NULL, 2)`,
		)

		entries, err := sqlite.NewEntryReader().ReadEntries(context.Background(), bundle)

		require.NoError(t, err)
		assert.ElementsMatch(t, []docsets.Entry{
			{Type: "cl", Name: "NSString", Path: "documentation/NSString.html", Anchor: "//apple_ref/occ/cl/NSString"},
			{Type: "", Name: "NSStringOverview", Path: "documentation/NSString.html"},
		}, entries)
	})

	t.Run("returns ENOTFOUND without index", func(t *testing.T) {
		t.Parallel()

		_, err := sqlite.NewEntryReader().ReadEntries(context.Background(), t.TempDir())

		require.Error(t, err)
		assert.Equal(t, docsets.ENOTFOUND, docsets.ErrorCode(err))
	})

	t.Run("returns EINVALID for unknown schema", func(t *testing.T) {
		t.Parallel()

		bundle := writeIndex(t, t.TempDir(), `CREATE TABLE other(id INTEGER)`)

		_, err := sqlite.NewEntryReader().ReadEntries(context.Background(), bundle)

		require.Error(t, err)
		assert.Equal(t, docsets.EINVALID, docsets.ErrorCode(err))
	})

	t.Run("returns error for canceled context", func(t *testing.T) {
		t.Parallel()

		bundle := writeIndex(t, t.TempDir(),
			`CREATE TABLE searchIndex(id INTEGER PRIMARY KEY, name TEXT, type TEXT, path TEXT)`,
		)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := sqlite.NewEntryReader().ReadEntries(ctx, bundle)

		require.Error(t, err)
	})
}
