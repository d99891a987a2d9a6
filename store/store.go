// Package store is a content-addressed cache of resolved layouts, keyed by
// shape digest. Lookups hit an in-memory index first; an optional SQLite
// database persists layouts across runs.
package store

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/chazu/hollow/shape"
	"github.com/chazu/hollow/wire"
)

// Store indexes resolved layouts by the sha256 digest of their source
// shape. Resolution is deterministic, so a cached layout is always
// identical to a fresh resolution of the same shape.
type Store struct {
	mu      sync.RWMutex
	layouts map[[32]byte]*shape.Layout
	db      *sql.DB
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{layouts: make(map[[32]byte]*shape.Layout)}
}

// Open attaches a SQLite database at path for persistence, creating the
// schema if needed. Layouts already persisted become visible to Get through
// the database read-through; Put writes through to the database.
func (s *Store) Open(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("store: opening database: %w", err)
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS layouts (
		digest BLOB PRIMARY KEY,
		layout BLOB NOT NULL
	)`)
	if err != nil {
		db.Close()
		return fmt.Errorf("store: creating schema: %w", err)
	}

	s.mu.Lock()
	s.db = db
	s.mu.Unlock()
	return nil
}

// Put caches the layout for the given shape digest.
func (s *Store) Put(digest [32]byte, l *shape.Layout) error {
	s.mu.Lock()
	s.layouts[digest] = l
	db := s.db
	s.mu.Unlock()

	if db == nil {
		return nil
	}
	data, err := wire.MarshalLayout(l)
	if err != nil {
		return fmt.Errorf("store: encoding layout: %w", err)
	}
	_, err = db.Exec(`INSERT OR REPLACE INTO layouts (digest, layout) VALUES (?, ?)`,
		digest[:], data)
	if err != nil {
		return fmt.Errorf("store: persisting layout: %w", err)
	}
	return nil
}

// Get returns the cached layout for the digest, consulting memory first and
// then the database. The second result is false on a miss.
func (s *Store) Get(digest [32]byte) (*shape.Layout, bool, error) {
	s.mu.RLock()
	l, ok := s.layouts[digest]
	db := s.db
	s.mu.RUnlock()
	if ok {
		return l, true, nil
	}
	if db == nil {
		return nil, false, nil
	}

	var data []byte
	err := db.QueryRow(`SELECT layout FROM layouts WHERE digest = ?`, digest[:]).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("store: reading layout: %w", err)
	}
	l, err = wire.UnmarshalLayout(data)
	if err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	s.layouts[digest] = l
	s.mu.Unlock()
	return l, true, nil
}

// Len returns the number of layouts in the in-memory index.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.layouts)
}

// Close closes the backing database, if any. The in-memory index stays
// usable.
func (s *Store) Close() error {
	s.mu.Lock()
	db := s.db
	s.db = nil
	s.mu.Unlock()
	if db == nil {
		return nil
	}
	return db.Close()
}
