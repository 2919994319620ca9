package vellum

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mesh-intelligence/vellum/pkg/store"
)

// Collection binds a named document collection to a Schema and a
// store.Driver. It is the only path to persistence: documents hydrated
// or saved through a Collection carry persisted identities; documents
// used purely as embedded values never pass through one.
type Collection struct {
	name   string
	schema *Schema
	driver store.Driver
	logger *slog.Logger
}

// NewCollection binds a collection name, schema, and driver.
func NewCollection(name string, schema *Schema, driver store.Driver) *Collection {
	return &Collection{
		name:   name,
		schema: schema,
		driver: driver,
		logger: slog.Default(),
	}
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.name
}

// Schema returns the collection's schema.
func (c *Collection) Schema() *Schema {
	return c.schema
}

// New constructs a document of the collection's schema.
func (c *Collection) New(attrs map[string]any) (*Document, error) {
	return c.schema.New(attrs)
}

// Save persists the document: an insert when it has no identity, an
// update when it does. An invalid document fails with
// ErrDocumentInvalid before any driver call; a deleted document fails
// with ErrDocumentDeleted and never resurrects. Driver failures
// propagate wrapped and leave the document's status unchanged.
//
// When the schema declares a datetime field named "created_at" it is
// stamped with the current time on insert; a datetime "last_modified_at"
// is stamped on every save.
func (c *Collection) Save(ctx context.Context, doc *Document) error {
	if doc.schema != c.schema {
		return ErrWrongSchema
	}
	if doc.status == StatusDeleted {
		return ErrDocumentDeleted
	}
	if !doc.Valid() {
		return ErrDocumentInvalid
	}

	started := time.Now()
	c.stamp(doc, "last_modified_at", started)
	if doc.id == "" {
		c.stamp(doc, "created_at", started)
		id, err := c.driver.InsertOne(ctx, c.name, doc.ToMap())
		if err != nil {
			return fmt.Errorf("insert into %s: %w", c.name, err)
		}
		doc.id = id
		doc.status = StatusPersisted
		c.logOp(started, "INSERT", doc.id)
		return nil
	}
	if err := c.driver.UpdateOne(ctx, c.name, doc.id, doc.ToMap()); err != nil {
		return fmt.Errorf("update %s %s: %w", c.name, doc.id, err)
	}
	doc.status = StatusPersisted
	c.logOp(started, "UPDATE", doc.id)
	return nil
}

// stamp sets a declared datetime field to t. Fields of any other kind,
// or not declared at all, are left alone.
func (c *Collection) stamp(doc *Document, name string, t time.Time) {
	if f, ok := c.schema.Field(name); ok && f.Kind == KindDateTime {
		doc.values[name] = t.UTC()
	}
}

// Remove deletes the document from the store. The document must be
// persisted; afterwards its status is deleted, terminally.
func (c *Collection) Remove(ctx context.Context, doc *Document) error {
	if doc.schema != c.schema {
		return ErrWrongSchema
	}
	if doc.status == StatusDeleted {
		return ErrDocumentDeleted
	}
	if doc.id == "" {
		return ErrNotPersisted
	}
	started := time.Now()
	if err := c.driver.DeleteOne(ctx, c.name, doc.id); err != nil {
		return fmt.Errorf("delete %s %s: %w", c.name, doc.id, err)
	}
	doc.status = StatusDeleted
	c.logOp(started, "DELETE", doc.id)
	return nil
}

// Find returns a query for the given filter. The filter mapping is
// passed through to the driver opaquely; nil matches everything. The
// query is lazy and restartable: nothing is issued until iteration,
// and every iteration re-queries the driver.
func (c *Collection) Find(filter map[string]any) *Query {
	return &Query{coll: c, filter: filter}
}

// FindByID returns the document with the given identity, or
// store.ErrNotFound.
func (c *Collection) FindByID(ctx context.Context, id string) (*Document, error) {
	if id == "" {
		return nil, store.ErrInvalidID
	}
	return c.Find(map[string]any{store.IDKey: id}).One(ctx)
}

// FindOne returns the first document matching the filter, or
// store.ErrNotFound.
func (c *Collection) FindOne(ctx context.Context, filter map[string]any) (*Document, error) {
	return c.Find(filter).One(ctx)
}

// All returns every document in the collection.
func (c *Collection) All(ctx context.Context) ([]*Document, error) {
	return c.Find(nil).All(ctx)
}

// Count returns the number of documents matching the filter.
func (c *Collection) Count(ctx context.Context, filter map[string]any) (int, error) {
	return c.Find(filter).Count(ctx)
}

// hydrate builds a persisted Document from a driver mapping.
func (c *Collection) hydrate(m map[string]any) (*Document, error) {
	id, _ := m[store.IDKey].(string)
	doc, err := c.schema.FromMap(m)
	if err != nil {
		return nil, fmt.Errorf("hydrate %s %s: %w", c.name, id, err)
	}
	doc.id = id
	doc.status = StatusPersisted
	return doc, nil
}

// logOp records a timed persistence operation, the one observability
// hook this layer owns.
func (c *Collection) logOp(started time.Time, op, id string) {
	c.logger.Info("store operation",
		"collection", c.name,
		"op", op,
		"id", id,
		"elapsed", time.Since(started),
	)
}

// Query is a lazy, restartable filter over a collection. Each call to
// Iter (directly or through All/One/Count) issues a fresh driver
// query; results are never cached.
type Query struct {
	coll   *Collection
	filter map[string]any
}

// Iter issues the driver query and returns an iterator over hydrated
// documents. The caller owns the iterator and must Close it.
func (q *Query) Iter(ctx context.Context) (*Iter, error) {
	cur, err := q.coll.driver.Find(ctx, q.coll.name, q.filter)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", q.coll.name, err)
	}
	return &Iter{coll: q.coll, cursor: cur}, nil
}

// All materializes the query into a slice.
func (q *Query) All(ctx context.Context) ([]*Document, error) {
	it, err := q.Iter(ctx)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var docs []*Document
	for it.Next() {
		docs = append(docs, it.Document())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// One returns the first matching document, or store.ErrNotFound.
func (q *Query) One(ctx context.Context) (*Document, error) {
	it, err := q.Iter(ctx)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	if !it.Next() {
		if err := it.Err(); err != nil {
			return nil, err
		}
		return nil, store.ErrNotFound
	}
	return it.Document(), nil
}

// Count returns the number of matching documents.
func (q *Query) Count(ctx context.Context) (int, error) {
	it, err := q.Iter(ctx)
	if err != nil {
		return 0, err
	}
	defer it.Close()

	n := 0
	for it.Next() {
		n++
	}
	if err := it.Err(); err != nil {
		return 0, err
	}
	return n, nil
}

// Iter yields hydrated documents from one driver query.
type Iter struct {
	coll   *Collection
	cursor store.Cursor
	doc    *Document
	err    error
}

// Next advances to the next document, hydrating it through the
// collection's schema. Returns false on exhaustion or error.
func (it *Iter) Next() bool {
	if it.err != nil {
		return false
	}
	if !it.cursor.Next() {
		it.err = it.cursor.Err()
		return false
	}
	doc, err := it.coll.hydrate(it.cursor.Document())
	if err != nil {
		it.err = err
		return false
	}
	it.doc = doc
	return true
}

// Document returns the current document. Only valid after a true Next.
func (it *Iter) Document() *Document {
	return it.doc
}

// Err returns the first error encountered during iteration.
func (it *Iter) Err() error {
	return it.err
}

// Close releases the underlying cursor.
func (it *Iter) Close() error {
	return it.cursor.Close()
}
