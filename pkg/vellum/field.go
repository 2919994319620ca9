package vellum

import "regexp"

// Kind identifies the canonical typed representation of a field.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindDateTime
	KindID
	KindArray
	KindEmbedded
	KindEmbeddedList
)

// kindNames maps kinds to display names for schema construction errors.
var kindNames = map[Kind]string{
	KindString:       "string",
	KindInteger:      "integer",
	KindFloat:        "float",
	KindBoolean:      "boolean",
	KindDateTime:     "datetime",
	KindID:           "id",
	KindArray:        "array",
	KindEmbedded:     "embedded",
	KindEmbeddedList: "embedded_list",
}

// String returns the display name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Field is a typed attribute descriptor: it holds the attribute name,
// the key used in the stored document, constraints, a default, and the
// field kind driving coercion and validation. Descriptors are shared,
// read-only metadata once a Schema is built; instance values live on
// each Document, never on the descriptor.
type Field struct {
	// Name is the attribute name used in code.
	Name string

	// StorageKey is the key used in the stored document. Defaults to
	// Name when left empty.
	StorageKey string

	// Required marks the field as mandatory for validity.
	Required bool

	// Default is applied to absent attributes at construction and
	// hydration. Either a plain value or a func() any producing one.
	Default any

	// Kind selects the coercion and validation rules.
	Kind Kind

	// Numeric bounds, integer and float kinds only.
	MinValue *float64
	MaxValue *float64

	// Length constraints: character counts for the string kind, item
	// counts for the array kind.
	MinLength *int
	MaxLength *int
	Length    *int

	// Pattern and Choices, string kind only.
	Pattern string
	Choices []string

	// ValidateItem is an optional per-item hook for the array kind. A
	// non-empty return is recorded as a violation message for the field.
	ValidateItem func(item any) string

	// Embedded is the schema of the nested document (embedded kind)
	// or of each list element (embedded_list kind).
	Embedded *Schema

	// pattern is Pattern compiled during schema construction.
	pattern *regexp.Regexp
}

// storageKey returns the effective stored-document key for the field.
func (f Field) storageKey() string {
	if f.StorageKey != "" {
		return f.StorageKey
	}
	return f.Name
}

// defaultValue resolves the field's default: invokes value-producing
// rules and coerces the result so stored defaults satisfy the field's
// own coercion rule.
func (f Field) defaultValue() any {
	if f.Default == nil {
		return nil
	}
	v := f.Default
	if fn, ok := v.(func() any); ok {
		v = fn()
	}
	if coerced, ok := f.coerce(v); ok {
		return coerced
	}
	return v
}

// Float64 returns a pointer to v, for MinValue/MaxValue literals.
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v, for MinLength/MaxLength/Length literals.
func Int(v int) *int { return &v }
