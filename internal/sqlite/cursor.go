package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/vellum/pkg/store"
)

// Compile-time interface check: cursor must implement store.Cursor.
var _ store.Cursor = (*cursor)(nil)

// cursor streams Find results row by row, decoding each JSON body only
// when the caller advances to it.
type cursor struct {
	rows *sql.Rows
	doc  map[string]any
	err  error
}

// Next advances to the next document, decoding its body and injecting
// the identity under store.IDKey.
func (c *cursor) Next() bool {
	if c.err != nil {
		return false
	}
	if !c.rows.Next() {
		c.err = c.rows.Err()
		return false
	}
	var id, body string
	if err := c.rows.Scan(&id, &body); err != nil {
		c.err = fmt.Errorf("scan document row: %w", err)
		return false
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		c.err = fmt.Errorf("decode document %s: %w", id, err)
		return false
	}
	doc[store.IDKey] = id
	c.doc = doc
	return true
}

// Document returns the current document mapping.
func (c *cursor) Document() map[string]any {
	return c.doc
}

// Err returns the first error encountered during iteration.
func (c *cursor) Err() error {
	return c.err
}

// Close releases the underlying rows. Idempotent.
func (c *cursor) Close() error {
	return c.rows.Close()
}
