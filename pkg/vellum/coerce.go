package vellum

import (
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// coerce converts an assigned raw value into the field's canonical
// typed representation. The second result reports whether the value
// conforms to the field's coercion rule; callers keep non-conforming
// values as assigned so validation can report them. A nil value always
// conforms (it means unset).
//
// Canonical representations: string, int64, float64, bool, time.Time
// (UTC), canonical lowercase UUID string (id kind), []any (array),
// *Document (embedded), []*Document (embedded list).
func (f Field) coerce(value any) (any, bool) {
	if value == nil {
		return nil, true
	}
	switch f.Kind {
	case KindString:
		return coerceString(value)
	case KindInteger:
		return coerceInteger(value)
	case KindFloat:
		return coerceFloat(value)
	case KindBoolean:
		b, ok := value.(bool)
		return b, ok
	case KindDateTime:
		return coerceDateTime(value)
	case KindID:
		return coerceID(value)
	case KindArray:
		return coerceArray(value)
	case KindEmbedded:
		child, ok := value.(*Document)
		if !ok || child == nil || child.schema != f.Embedded {
			return value, false
		}
		return child, true
	case KindEmbeddedList:
		children, ok := value.([]*Document)
		if !ok {
			return value, false
		}
		for _, child := range children {
			if child == nil || child.schema != f.Embedded {
				return value, false
			}
		}
		return children, true
	}
	return value, false
}

// coerceString accepts strings, byte slices, and numeric values. The
// result is whitespace-trimmed.
func coerceString(value any) (any, bool) {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v), true
	case []byte:
		return strings.TrimSpace(string(v)), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case float64:
		return strings.TrimSpace(strconv.FormatFloat(v, 'f', -1, 64)), true
	case float32:
		return strings.TrimSpace(strconv.FormatFloat(float64(v), 'f', -1, 32)), true
	}
	return value, false
}

// coerceInteger accepts Go integers, integral floats (JSON numbers
// decode as float64), and integer literal strings. Non-integral floats
// do not conform.
func coerceInteger(value any) (any, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int16:
		return int64(v), true
	case int8:
		return int64(v), true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return value, false
		}
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return value, false
		}
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case float64:
		if v != math.Trunc(v) {
			return value, false
		}
		return int64(v), true
	case float32:
		f := float64(v)
		if f != math.Trunc(f) {
			return value, false
		}
		return int64(f), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return value, false
		}
		return n, true
	}
	return value, false
}

// coerceFloat accepts floats, integers, and numeric literal strings.
func coerceFloat(value any) (any, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return value, false
		}
		return f, true
	}
	return value, false
}

// coerceDateTime accepts time.Time values and RFC 3339 strings. The
// canonical representation is UTC.
func coerceDateTime(value any) (any, bool) {
	switch v := value.(type) {
	case time.Time:
		return v.UTC(), true
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return value, false
		}
		return t.UTC(), true
	}
	return value, false
}

// coerceArray accepts any slice or array value and normalizes it to
// []any, preserving element order. Byte slices do not conform: they
// are string data, not lists.
func coerceArray(value any) (any, bool) {
	if items, ok := value.([]any); ok {
		return items, true
	}
	if _, ok := value.([]byte); ok {
		return value, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return value, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// coerceID accepts uuid.UUID values and parseable UUID strings; the
// canonical representation is the lowercase string form.
func coerceID(value any) (any, bool) {
	switch v := value.(type) {
	case uuid.UUID:
		return v.String(), true
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return value, false
		}
		return id.String(), true
	}
	return value, false
}
