package vellum

import (
	"fmt"
	"regexp"
)

// Schema is the immutable field-descriptor table for one document
// type. Built once at startup, it is process-wide read-only state,
// safe to share across instances and goroutines. Construction,
// validation, and marshalling all consult the same table, in
// declaration order.
type Schema struct {
	fields []Field
	byName map[string]int
	byKey  map[string]int
}

// NewSchema builds a Schema from field descriptors, validating names,
// storage keys, kind/constraint compatibility, and patterns. The
// returned schema owns a copy of the descriptors.
func NewSchema(fields ...Field) (*Schema, error) {
	s := &Schema{
		fields: make([]Field, 0, len(fields)),
		byName: make(map[string]int, len(fields)),
		byKey:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if err := checkField(f); err != nil {
			return nil, err
		}
		if _, ok := s.byName[f.Name]; ok {
			return nil, fmt.Errorf("field %q: %w", f.Name, ErrDuplicateField)
		}
		key := f.storageKey()
		if _, ok := s.byKey[key]; ok {
			return nil, fmt.Errorf("field %q: storage key %q: %w", f.Name, key, ErrDuplicateField)
		}
		if f.Pattern != "" {
			re, err := regexp.Compile(f.Pattern)
			if err != nil {
				return nil, fmt.Errorf("field %q: pattern: %w", f.Name, err)
			}
			f.pattern = re
		}
		s.byName[f.Name] = len(s.fields)
		s.byKey[key] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s, nil
}

// MustSchema is NewSchema that panics on error, for package-level
// schema declarations.
func MustSchema(fields ...Field) *Schema {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// checkField validates a single descriptor's internal consistency.
func checkField(f Field) error {
	if f.Name == "" {
		return fmt.Errorf("field name must not be empty: %w", ErrInvalidField)
	}
	if _, ok := kindNames[f.Kind]; !ok {
		return fmt.Errorf("field %q: unknown kind %d: %w", f.Name, f.Kind, ErrInvalidField)
	}
	embeds := f.Kind == KindEmbedded || f.Kind == KindEmbeddedList
	if embeds && f.Embedded == nil {
		return fmt.Errorf("field %q: %s kind requires an embedded schema: %w", f.Name, f.Kind, ErrInvalidField)
	}
	if !embeds && f.Embedded != nil {
		return fmt.Errorf("field %q: embedded schema on %s kind: %w", f.Name, f.Kind, ErrInvalidField)
	}
	numeric := f.Kind == KindInteger || f.Kind == KindFloat
	if !numeric && (f.MinValue != nil || f.MaxValue != nil) {
		return fmt.Errorf("field %q: numeric bounds on %s kind: %w", f.Name, f.Kind, ErrInvalidField)
	}
	if f.MinValue != nil && f.MaxValue != nil && *f.MinValue > *f.MaxValue {
		return fmt.Errorf("field %q: min_value exceeds max_value: %w", f.Name, ErrInvalidField)
	}
	lengths := f.MinLength != nil || f.MaxLength != nil || f.Length != nil
	if f.Kind != KindString && f.Kind != KindArray && lengths {
		return fmt.Errorf("field %q: length constraints on %s kind: %w", f.Name, f.Kind, ErrInvalidField)
	}
	if f.Kind != KindString && (f.Pattern != "" || len(f.Choices) > 0) {
		return fmt.Errorf("field %q: string constraints on %s kind: %w", f.Name, f.Kind, ErrInvalidField)
	}
	if f.Kind != KindArray && f.ValidateItem != nil {
		return fmt.Errorf("field %q: item hook on %s kind: %w", f.Name, f.Kind, ErrInvalidField)
	}
	return nil
}

// Fields returns the descriptors in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field returns the descriptor for the given attribute name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// blank returns a Document with defaults applied and no other values.
func (s *Schema) blank() *Document {
	d := &Document{
		schema: s,
		values: make(map[string]any, len(s.fields)),
		errors: NewErrors(),
		status: StatusNew,
	}
	for _, f := range s.fields {
		if v := f.defaultValue(); v != nil {
			d.values[f.Name] = v
		}
	}
	return d
}

// New constructs a Document from attribute-name keyed initial values.
// Unknown attribute names fail fast with ErrUnknownAttribute. Declared
// but absent attributes receive their default or remain unset; an
// explicit nil overrides the default.
func (s *Schema) New(attrs map[string]any) (*Document, error) {
	for name := range attrs {
		if _, ok := s.byName[name]; !ok {
			return nil, fmt.Errorf("attribute %q: %w", name, ErrUnknownAttribute)
		}
	}
	d := s.blank()
	for _, f := range s.fields {
		if v, ok := attrs[f.Name]; ok {
			if err := d.Set(f.Name, v); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}

// FromMap hydrates a Document from a stored mapping keyed by storage
// keys, the inverse of ToMap. Missing keys receive defaults; unknown
// keys are ignored (stored documents may carry keys written by other
// tools). A scalar where an embedded document or list was declared
// fails with ErrSchemaMismatch; non-conforming scalar values are kept
// as stored and surface through validation.
func (s *Schema) FromMap(m map[string]any) (*Document, error) {
	d := s.blank()
	for _, f := range s.fields {
		raw, present := m[f.storageKey()]
		if !present {
			continue
		}
		if raw == nil {
			d.values[f.Name] = nil
			continue
		}
		switch f.Kind {
		case KindEmbedded:
			nested, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("field %q: expected nested document, got %T: %w",
					f.Name, raw, ErrSchemaMismatch)
			}
			child, err := f.Embedded.FromMap(nested)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			d.values[f.Name] = child
		case KindEmbeddedList:
			items, err := asList(raw)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			children := make([]*Document, 0, len(items))
			for i, item := range items {
				nested, ok := item.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("field %q[%d]: expected nested document, got %T: %w",
						f.Name, i, item, ErrSchemaMismatch)
				}
				child, err := f.Embedded.FromMap(nested)
				if err != nil {
					return nil, fmt.Errorf("field %q[%d]: %w", f.Name, i, err)
				}
				children = append(children, child)
			}
			d.values[f.Name] = children
		default:
			if coerced, ok := f.coerce(raw); ok {
				d.values[f.Name] = coerced
			} else {
				d.values[f.Name] = raw
			}
		}
	}
	return d, nil
}

// asList normalizes the two sequence shapes a driver may hand back.
func asList(raw any) ([]any, error) {
	switch v := raw.(type) {
	case []any:
		return v, nil
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected document list, got %T: %w", raw, ErrSchemaMismatch)
}
