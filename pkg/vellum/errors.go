package vellum

import (
	"errors"
	"strings"
	"unicode"
)

// Schema construction errors.
var (
	ErrInvalidField   = errors.New("invalid field definition")
	ErrDuplicateField = errors.New("duplicate field")
)

// Document construction and hydration errors.
var (
	ErrUnknownAttribute = errors.New("unknown attribute")
	ErrSchemaMismatch   = errors.New("stored document does not match schema")
)

// Persistence errors.
var (
	ErrDocumentInvalid = errors.New("document is not valid")
	ErrDocumentDeleted = errors.New("document has been deleted")
	ErrNotPersisted    = errors.New("document has not been persisted")
	ErrWrongSchema     = errors.New("document schema does not match collection")
)

// Errors accumulates per-field validation failures. Messages are kept
// in insertion order, which matches schema declaration order because
// validation walks the field table in order. Errors is data, not a
// fault: callers inspect all failures at once.
type Errors struct {
	fields   []string
	messages map[string][]string
}

// NewErrors returns an empty collector.
func NewErrors() *Errors {
	return &Errors{messages: make(map[string][]string)}
}

// Add records a violation message for the named field.
func (e *Errors) Add(field, message string) {
	if _, ok := e.messages[field]; !ok {
		e.fields = append(e.fields, field)
	}
	e.messages[field] = append(e.messages[field], message)
}

// Clear removes all recorded failures.
func (e *Errors) Clear() {
	e.fields = nil
	e.messages = make(map[string][]string)
}

// Any reports whether any failure has been recorded.
func (e *Errors) Any() bool {
	return len(e.fields) > 0
}

// Count returns the total number of recorded messages.
func (e *Errors) Count() int {
	n := 0
	for _, msgs := range e.messages {
		n += len(msgs)
	}
	return n
}

// On returns the messages recorded for the named field, in order.
func (e *Errors) On(field string) []string {
	msgs := e.messages[field]
	out := make([]string, len(msgs))
	copy(out, msgs)
	return out
}

// FullMessages renders every failure as a human-readable sentence of
// the form "<Humanized field name> <message>", field by field in
// insertion order.
func (e *Errors) FullMessages() []string {
	var out []string
	for _, field := range e.fields {
		human := Humanize(field)
		for _, msg := range e.messages[field] {
			out = append(out, human+" "+msg)
		}
	}
	return out
}

// Humanize converts a snake_case or camelCase attribute name into
// space-separated capitalized words: "postal_code" and "postalCode"
// both become "Postal Code". The transform is deterministic and
// locale-independent.
func Humanize(name string) string {
	var b strings.Builder
	var prev rune
	for i, r := range name {
		switch {
		case r == '_':
			b.WriteRune(' ')
		case i > 0 && unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
		prev = r
	}
	words := strings.Fields(b.String())
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
