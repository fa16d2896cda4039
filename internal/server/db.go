package server

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		cyclical INTEGER NOT NULL DEFAULT 0,
		details TEXT NOT NULL DEFAULT '',
		recur_frequency TEXT,
		recur_interval INTEGER,
		recur_until TEXT,
		start_at TEXT NOT NULL,
		end_at TEXT NOT NULL,
		all_day INTEGER NOT NULL DEFAULT 0,
		category TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		cyclical INTEGER NOT NULL DEFAULT 0,
		details TEXT NOT NULL DEFAULT '',
		recur_frequency TEXT,
		recur_interval INTEGER,
		recur_until TEXT,
		deadline TEXT NOT NULL,
		progress TEXT NOT NULL DEFAULT 'planned',
		category TEXT NOT NULL DEFAULT 'mind'
	)`,
}

// OpenDB opens the SQLite database at the given path, creating the parent
// directory and the two collection tables as needed. ":memory:" gives an
// in-memory database for tests.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if path == ":memory:" {
		// Every pooled connection would otherwise get its own empty
		// in-memory database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	for i, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("schema statement %d: %w", i, err)
		}
	}

	return db, nil
}
