// Package sqlite reads the entry index shipped inside docset bundles.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a read-only connection to a docset index database.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance for the index file at path.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// DSN returns the data source name opening path read-only.
func DSN(path string) string {
	u := url.URL{Scheme: "file", Path: path, RawQuery: "mode=ro"}
	return u.String()
}

// Open opens the database connection.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", DSN(db.path))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Index files are small and read once per build.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait instead of failing while a docset generator still holds a lock.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	db.db = conn
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// hasTable reports whether the database contains a table with the given
// name, compared case-insensitively.
func (db *DB) hasTable(ctx context.Context, name string) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND lower(name) = lower(?)", name,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
