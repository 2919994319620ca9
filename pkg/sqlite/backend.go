// Package sqlite exposes the SQLite store driver as public API while
// keeping the implementation internal.
package sqlite

import (
	"context"

	"github.com/mesh-intelligence/vellum/internal/sqlite"
	"github.com/mesh-intelligence/vellum/pkg/store"
)

// Driver extends store.Driver with the maintenance operations the
// SQLite backend supports beyond the core contract.
type Driver interface {
	store.Driver

	// Collections returns the distinct collection names in the store.
	Collections(ctx context.Context) ([]string, error)

	// ExportCollection dumps a collection to a JSONL file and returns
	// the number of documents written.
	ExportCollection(ctx context.Context, collection, path string) (int, error)

	// ImportCollection loads a JSONL file into a collection and returns
	// the number of documents imported.
	ImportCollection(ctx context.Context, collection, path string) (int, error)
}

// Open creates a SQLite-backed driver from the config.
//
// Example:
//
//	driver, err := sqlite.Open(store.Config{
//	    Backend: store.BackendSQLite,
//	    DataDir: ".vellum-db",
//	})
//	defer driver.Close()
func Open(cfg store.Config) (Driver, error) {
	return sqlite.Open(cfg)
}
