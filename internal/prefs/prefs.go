// Package prefs persists per-collection user preferences (sort order, view
// mode, collapsed groups) in a small SQLite database.
//
// The store is intentionally "best effort": reads fall back to the caller's
// default when the database is missing or unreadable, so a broken prefs file
// never takes the client down.
package prefs

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// Store is a persistent key-value store scoped by (scope, key). Scopes are
// collection kinds ("notes", "snippets", "todos"); keys are preference names,
// optionally suffixed with a project id for per-project settings.
type Store struct {
	Path string

	mu sync.Mutex
	db *sql.DB
}

func Open(path string) *Store {
	return &Store{Path: path}
}

func (s *Store) open(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db, nil
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, err
	}
	// busy_timeout avoids "database is locked" flakiness when a CLI command
	// runs next to an open TUI.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS prefs (
		scope TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (scope, key)
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	s.db = db
	return db, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Get returns the stored value, or def when the key has never been written
// (or the store is unusable).
func (s *Store) Get(scope, key, def string) string {
	db, err := s.open(context.Background())
	if err != nil {
		return def
	}
	var value string
	err = db.QueryRow(`SELECT value FROM prefs WHERE scope = ? AND key = ?`, scope, key).Scan(&value)
	if err != nil {
		return def
	}
	return value
}

// Set upserts a preference. Errors are swallowed: losing a preference write
// must never break the interaction that triggered it.
func (s *Store) Set(scope, key, value string) {
	db, err := s.open(context.Background())
	if err != nil {
		return
	}
	_, _ = db.Exec(`INSERT INTO prefs (scope, key, value) VALUES (?, ?, ?)
		ON CONFLICT(scope, key) DO UPDATE SET value = excluded.value`, scope, key, value)
}

// GetStrings reads a JSON-encoded string set (used for collapsed group keys).
// Missing or corrupt values decode as empty.
func (s *Store) GetStrings(scope, key string) []string {
	raw := s.Get(scope, key, "")
	if raw == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

func (s *Store) SetStrings(scope, key string, values []string) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return
	}
	s.Set(scope, key, string(b))
}
