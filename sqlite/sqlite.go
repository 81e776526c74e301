// Package sqlite provides a SQLite-backed archive of scraped records.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	// Verify connection
	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Set busy timeout to wait 5 seconds before failing on lock contention.
	// This prevents immediate "database is locked" errors.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// Enable WAL mode for file-based databases for better write performance.
	// Note: WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	db.db = conn

	// Create schema
	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

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

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// createSchema creates the database tables if they don't exist. The unique
// index on inquiry_url makes the archive idempotent across runs.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			rfq_id TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL,
			buyer_name TEXT NOT NULL DEFAULT '',
			buyer_image_url TEXT NOT NULL DEFAULT '',
			inquiry_time TEXT NOT NULL DEFAULT '',
			quotes_left TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT '',
			quantity_required TEXT NOT NULL DEFAULT '',
			email_confirmed TEXT NOT NULL DEFAULT '',
			experienced_buyer TEXT NOT NULL DEFAULT '',
			complete_order_via_rfq TEXT NOT NULL DEFAULT '',
			typical_replies TEXT NOT NULL DEFAULT '',
			interactive_user TEXT NOT NULL DEFAULT '',
			inquiry_url TEXT NOT NULL UNIQUE,
			inquiry_date TEXT NOT NULL DEFAULT '',
			scraping_date TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_records_country ON records(country);
	`

	_, err := db.db.Exec(schema)
	return err
}
