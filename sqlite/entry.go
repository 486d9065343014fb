package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fwojciec/docsets"
)

// IndexFile is the location of the entry index inside a docset bundle.
var IndexFile = filepath.Join("Contents", "Resources", "docSet.dsidx")

// Ensure EntryReader implements docsets.EntryReader at compile time.
var _ docsets.EntryReader = (*EntryReader)(nil)

// dashEntryTag matches the <dash_entry_...> markers some generators put in
// front of entry paths.
var dashEntryTag = regexp.MustCompile(`<dash_entry_[^>]*>`)

const dashQuery = `SELECT type, name, path FROM searchIndex`

const coreDataQuery = `
	SELECT ztokenname, ztypename, zpath, zanchor
	FROM ztoken
	LEFT JOIN ztokenmetainformation ON ztoken.zmetainformation = ztokenmetainformation.z_pk
	LEFT JOIN zfilepath ON ztokenmetainformation.zfile = zfilepath.z_pk
	LEFT JOIN ztokentype ON ztoken.ztokentype = ztokentype.z_pk`

// EntryReader enumerates docset entries from the docSet.dsidx index.
// Both the plain searchIndex table and the Core Data ZTOKEN schema are
// supported.
type EntryReader struct{}

// NewEntryReader creates a new EntryReader.
func NewEntryReader() *EntryReader {
	return &EntryReader{}
}

func (r *EntryReader) ReadEntries(ctx context.Context, docsetPath string) ([]docsets.Entry, error) {
	path := filepath.Join(docsetPath, IndexFile)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, docsets.Errorf(docsets.ENOTFOUND, "no index in %s", docsetPath)
		}
		return nil, err
	}

	db := NewDB(path)
	if err := db.Open(); err != nil {
		return nil, err
	}
	defer db.Close()

	dash, err := db.hasTable(ctx, "searchIndex")
	if err != nil {
		return nil, fmt.Errorf("failed to inspect index: %w", err)
	}
	if dash {
		return readDash(ctx, db)
	}

	coreData, err := db.hasTable(ctx, "ZTOKEN")
	if err != nil {
		return nil, fmt.Errorf("failed to inspect index: %w", err)
	}
	if coreData {
		return readCoreData(ctx, db)
	}

	return nil, docsets.Errorf(docsets.EINVALID, "unknown index schema in %s", path)
}

func readDash(ctx context.Context, db *DB) ([]docsets.Entry, error) {
	rows, err := db.QueryContext(ctx, dashQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []docsets.Entry
	for rows.Next() {
		var typ, name, path sql.NullString
		if err := rows.Scan(&typ, &name, &path); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		if name.String == "" {
			continue
		}
		p, anchor := splitAnchor(dashEntryTag.ReplaceAllString(path.String, ""))
		entries = append(entries, docsets.Entry{
			Type:   typ.String,
			Name:   name.String,
			Path:   p,
			Anchor: anchor,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return entries, nil
}

func readCoreData(ctx context.Context, db *DB) ([]docsets.Entry, error) {
	rows, err := db.QueryContext(ctx, coreDataQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []docsets.Entry
	for rows.Next() {
		var name, typ, path, anchor sql.NullString
		if err := rows.Scan(&name, &typ, &path, &anchor); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		if name.String == "" {
			continue
		}
		p, a := splitAnchor(path.String)
		if anchor.String != "" {
			a = anchor.String
		}
		entries = append(entries, docsets.Entry{
			Type:   typ.String,
			Name:   name.String,
			Path:   p,
			Anchor: a,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return entries, nil
}

func splitAnchor(path string) (string, string) {
	p, anchor, _ := strings.Cut(path, "#")
	return p, anchor
}
