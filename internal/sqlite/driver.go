// Package sqlite implements the vellum store driver on SQLite.
// Documents are stored as JSON bodies in a single table; filter
// mappings become json_extract comparisons over the body. The database
// file is the source of truth and survives reopening.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/vellum/pkg/store"
)

// dbFileName is the SQLite database file created inside DataDir.
const dbFileName = "vellum.db"

// Compile-time interface check: Store must implement store.Driver.
var _ store.Driver = (*Store)(nil)

// Store is a store.Driver backed by a SQLite database file.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	closed bool
}

// Open validates the config, creates the data directory if needed,
// opens the SQLite database, and ensures the schema exists.
func Open(cfg store.Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Backend != store.BackendSQLite {
		return nil, store.ErrBackendUnknown
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("initialize schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the database connection. Idempotent; operations after
// Close return store.ErrDriverClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// newID generates a UUID v7 string for a new document identity.
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// InsertOne stores a new document and returns its generated identity.
func (s *Store) InsertOne(ctx context.Context, collection string, doc map[string]any) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", store.ErrDriverClosed
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	id := newID()
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO documents (collection, doc_id, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		collection, id, string(body), now, now,
	)
	if err != nil {
		return "", fmt.Errorf("insert document: %w", err)
	}
	return id, nil
}

// UpdateOne replaces the body of an existing document.
// Returns store.ErrNotFound if the identity does not exist.
func (s *Store) UpdateOne(ctx context.Context, collection, id string, doc map[string]any) error {
	if id == "" {
		return store.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return store.ErrDriverClosed
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		"UPDATE documents SET body = ?, updated_at = ? WHERE collection = ? AND doc_id = ?",
		string(body), now, collection, id,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteOne removes a document by identity.
// Returns store.ErrNotFound if the identity does not exist.
func (s *Store) DeleteOne(ctx context.Context, collection, id string) error {
	if id == "" {
		return store.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return store.ErrDriverClosed
	}
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM documents WHERE collection = ? AND doc_id = ?",
		collection, id,
	)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Find returns a cursor over documents matching the filter. Filter
// keys are storage keys compared by equality; dotted keys reach into
// nested documents; the reserved _id key matches the identity column.
// Results are ordered by insertion for deterministic iteration.
func (s *Store) Find(ctx context.Context, collection string, filter map[string]any) (store.Cursor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, store.ErrDriverClosed
	}
	query, args := buildFindQuery(collection, filter)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	return &cursor{rows: rows}, nil
}

// Collections returns the distinct collection names present in the
// store, sorted.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, store.ErrDriverClosed
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT collection FROM documents ORDER BY collection")
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan collection name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return names, nil
}
