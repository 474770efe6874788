// Package notes provides the SQLite-backed note store behind the demo
// REPL. Note keys double as completion candidates for the prompt.
package notes

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS notes (
	key      TEXT PRIMARY KEY,
	body     TEXT NOT NULL,
	created  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_created ON notes(created);
`

// Store is a SQLite-backed note store.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open creates or opens a note database at the given path.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open notes db: %w", err)
	}

	// SQLite pragmas for performance.
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Put inserts or replaces a note.
func (s *Store) Put(key, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		`INSERT INTO notes (key, body, created) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET body = excluded.body`,
		key, body, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("put note %q: %w", key, err)
	}
	log.Debug().Str("key", key).Msg("notes: put")
	return nil
}

// Get returns a note body by key.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var body string
	err := s.db.QueryRow(`SELECT body FROM notes WHERE key = ?`, key).Scan(&body)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("notes: get")
		return "", false
	}
	return body, true
}

// Delete removes a note. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(`DELETE FROM notes WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete note %q: %w", key, err)
	}
	log.Debug().Str("key", key).Msg("notes: delete")
	return nil
}

// Keys lists all note keys, oldest first.
func (s *Store) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.Query(`SELECT key FROM notes ORDER BY created, key`)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
