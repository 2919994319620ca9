package vellum

import (
	"fmt"
	"time"
)

// Status tracks a document's persistence state.
type Status string

const (
	// StatusNew marks an in-memory document with no persisted identity.
	StatusNew Status = "new"
	// StatusPersisted marks a document that exists in the store.
	StatusPersisted Status = "persisted"
	// StatusDeleted marks a removed document; terminal.
	StatusDeleted Status = "deleted"
)

// Document is one instance of a Schema: a per-instance value map plus
// an error collector and a persistence identity. Two documents sharing
// a schema share only the descriptor table, never values. A document
// with no bound Collection is an embedded document: same validation
// and marshalling contract, no persistence operations.
type Document struct {
	schema *Schema
	values map[string]any
	errors *Errors
	id     string
	status Status
}

// Schema returns the descriptor table this document was built from.
func (d *Document) Schema() *Schema {
	return d.schema
}

// ID returns the persisted identity, or "" for a new document.
func (d *Document) ID() string {
	return d.id
}

// Status returns the document's persistence state.
func (d *Document) Status() Status {
	return d.status
}

// Set assigns a value to the named attribute, applying the field's
// coercion rule eagerly. A value that cannot be coerced is kept as
// assigned — not rejected — and surfaces as a validation failure, so
// partially-built invalid documents can exist transiently. Only an
// undeclared attribute name is an error.
func (d *Document) Set(name string, value any) error {
	f, ok := d.schema.Field(name)
	if !ok {
		return fmt.Errorf("attribute %q: %w", name, ErrUnknownAttribute)
	}
	if value == nil {
		d.values[name] = nil
		return nil
	}
	if coerced, ok := f.coerce(value); ok {
		d.values[name] = coerced
	} else {
		d.values[name] = value
	}
	return nil
}

// Get returns the current coerced value of the named attribute, or nil
// when unset or undeclared.
func (d *Document) Get(name string) any {
	return d.values[name]
}

// Valid revalidates the document against its current state: it clears
// the error collector, runs every field's validator in declaration
// order, and reports whether no failure was recorded. The result is
// never cached; callers must not assume it survives mutation.
func (d *Document) Valid() bool {
	d.errors.Clear()
	for _, f := range d.schema.fields {
		f.validate(d.values[f.Name], d.errors)
	}
	return !d.errors.Any()
}

// Errors returns the collector populated by the most recent Valid.
func (d *Document) Errors() *Errors {
	return d.errors
}

// ToMap produces the canonical storage mapping: every declared field
// under its storage key, unset fields as explicit nils, embedded
// documents and lists recursing to nested mappings. This mapping is
// the sole representation handed to a store driver.
func (d *Document) ToMap() map[string]any {
	out := make(map[string]any, len(d.schema.fields))
	for _, f := range d.schema.fields {
		value := d.values[f.Name]
		if value == nil {
			out[f.storageKey()] = nil
			continue
		}
		switch f.Kind {
		case KindEmbedded:
			if child, ok := value.(*Document); ok {
				out[f.storageKey()] = child.ToMap()
			} else {
				out[f.storageKey()] = value
			}
		case KindEmbeddedList:
			if children, ok := value.([]*Document); ok {
				items := make([]any, len(children))
				for i, child := range children {
					items[i] = child.ToMap()
				}
				out[f.storageKey()] = items
			} else {
				out[f.storageKey()] = value
			}
		case KindDateTime:
			if t, ok := value.(time.Time); ok {
				out[f.storageKey()] = t.Format(time.RFC3339Nano)
			} else {
				out[f.storageKey()] = value
			}
		default:
			out[f.storageKey()] = value
		}
	}
	return out
}
