// Package localstore keeps named builder drafts in a SQLite file for the
// command line tool.
package localstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"promptito-be/pkg/builder/state"
	"promptito-be/pkg/i18n"

	_ "modernc.org/sqlite"
)

var ErrDraftNotFound = errors.New("draft not found")

// Entry is a stored draft without its state.
type Entry struct {
	Name      string
	Title     string
	UpdatedAt time.Time
}

// Store handles persistence of drafts using SQLite
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// DefaultPath is ~/.promptito/drafts.db, or the working directory when the
// home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "promptito-drafts.db"
	}
	return filepath.Join(home, ".promptito", "drafts.db")
}

// Open creates or opens the store at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS drafts (
			name        TEXT PRIMARY KEY,
			title       TEXT NOT NULL DEFAULT '',
			state       TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_drafts_updated ON drafts(updated_at);
	`)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes st under name, replacing any previous draft, and returns the
// stored draft.
func (s *Store) Save(name string, st state.BuilderState, now time.Time) (state.Draft, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return state.Draft{}, errors.New("draft name is required")
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return state.Draft{}, fmt.Errorf("encode state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now = now.UTC()
	_, err = s.db.Exec(`
		INSERT INTO drafts (name, title, state, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET title = excluded.title, state = excluded.state, updated_at = excluded.updated_at
	`, name, st.Title, string(raw), now.Format(time.RFC3339Nano))
	if err != nil {
		return state.Draft{}, err
	}
	return state.Draft{State: st.Clone(), UpdatedAt: now}, nil
}

// Load returns the draft stored under name. Unreadable state is repaired
// into a fresh one, the same way hosted drafts are.
func (s *Store) Load(name string, tr i18n.Translator) (state.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw, updated string
	err := s.db.QueryRow(`SELECT state, updated_at FROM drafts WHERE name = ?`, strings.TrimSpace(name)).Scan(&raw, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return state.Draft{}, ErrDraftNotFound
	}
	if err != nil {
		return state.Draft{}, err
	}

	st, _ := state.Decode([]byte(raw), tr)
	ts, _ := time.Parse(time.RFC3339Nano, updated)
	return state.Draft{State: st, UpdatedAt: ts}, nil
}

// List returns every draft, most recently updated first.
func (s *Store) List() ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT name, title, updated_at FROM drafts ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		var updated string
		if err := rows.Scan(&e.Name, &e.Title, &updated); err != nil {
			return nil, err
		}
		e.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM drafts WHERE name = ?`, strings.TrimSpace(name))
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrDraftNotFound
	}
	return nil
}
