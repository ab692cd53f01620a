// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package responses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var errBackendClosed = errors.New("response backend closed")

// =============================================================================
// SQLITE BACKEND
// =============================================================================

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS responses (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	text       TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
`

// SQLiteBackend stores responses as rows of a single table, ordered by id.
// The database is opened on first use, so a damaged file surfaces as a Load
// or Append error rather than at construction.
type SQLiteBackend struct {
	path   string
	db     *sql.DB
	closed bool
	mu     sync.Mutex
}

// NewSQLiteBackend returns a backend for the database at path. Nothing is
// touched on disk until the first Load or Append.
func NewSQLiteBackend(path string) *SQLiteBackend {
	return &SQLiteBackend{path: path}
}

// ensureOpen opens the database and applies the schema. A failed open is
// retried on the next call. Caller holds mu for writing.
func (b *SQLiteBackend) ensureOpen() error {
	if b.closed {
		return errBackendClosed
	}
	if b.db != nil {
		return nil
	}

	if dir := filepath.Dir(b.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", b.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	b.db = db
	return nil
}

// Load returns every stored response in insertion order.
func (b *SQLiteBackend) Load(ctx context.Context) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureOpen(); err != nil {
		return nil, err
	}

	rows, err := b.db.QueryContext(ctx, "SELECT text FROM responses ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		out = append(out, text)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read responses: %w", err)
	}
	return out, nil
}

// Append inserts one row.
func (b *SQLiteBackend) Append(ctx context.Context, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureOpen(); err != nil {
		return err
	}
	_, err := b.db.ExecContext(ctx,
		"INSERT INTO responses (text, created_at) VALUES (?, ?)",
		text, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to insert response: %w", err)
	}
	return nil
}

// Location returns the database path.
func (b *SQLiteBackend) Location() string {
	return b.path
}

// Close closes the database. Later Load and Append calls fail.
func (b *SQLiteBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}
