package store

import (
	"context"
	"errors"
)

// IDKey is the reserved key under which a driver reports a document's
// persisted identity in the mappings returned by Find. Stored document
// bodies never contain it; the driver injects it during reads.
const IDKey = "_id"

// Driver defines the interface for a schemaless document store backend.
// The schema layer hands drivers plain storage-key mappings and passes
// filter mappings through opaquely; it never depends on a backend's
// query language beyond that. Contexts are forwarded so cancellation
// and timeouts remain the backend's concern.
type Driver interface {
	// InsertOne stores a new document in the named collection and
	// returns the identity assigned to it.
	InsertOne(ctx context.Context, collection string, doc map[string]any) (string, error)

	// UpdateOne replaces the document with the given identity.
	// Returns ErrNotFound if no such document exists.
	UpdateOne(ctx context.Context, collection, id string, doc map[string]any) error

	// DeleteOne removes the document with the given identity.
	// Returns ErrNotFound if no such document exists.
	DeleteOne(ctx context.Context, collection, id string) error

	// Find returns a cursor over documents matching the filter.
	// An empty or nil filter matches every document in the collection.
	// Each returned mapping carries its identity under IDKey.
	Find(ctx context.Context, collection string, filter map[string]any) (Cursor, error)

	// Close releases backend resources. Idempotent; operations after
	// Close return ErrDriverClosed.
	Close() error
}

// Cursor iterates lazily over the results of a Find. The usual loop is
//
//	for cur.Next() {
//	    doc := cur.Document()
//	    ...
//	}
//	if err := cur.Err(); err != nil { ... }
//
// followed by Close.
type Cursor interface {
	// Next advances to the next document. Returns false when the
	// results are exhausted or an error occurred; check Err.
	Next() bool

	// Document returns the current document mapping, including its
	// identity under IDKey. Only valid after a true Next.
	Document() map[string]any

	// Err returns the first error encountered during iteration.
	Err() error

	// Close releases the cursor's resources. Idempotent.
	Close() error
}

// Driver operation errors.
var (
	ErrNotFound     = errors.New("document not found")
	ErrInvalidID    = errors.New("invalid document ID")
	ErrDriverClosed = errors.New("driver is closed")
)
