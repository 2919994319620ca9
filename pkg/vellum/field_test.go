package vellum

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
)

// messagesFor builds a one-field document, assigns value, and returns
// the full validation messages.
func messagesFor(t *testing.T, f Field, value any) []string {
	t.Helper()
	d, err := MustSchema(f).New(nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := d.Set(f.Name, value); err != nil {
		t.Fatalf("Set(%q) error = %v", f.Name, err)
	}
	d.Valid()
	return d.Errors().FullMessages()
}

func assertMessages(t *testing.T, got, want []string) {
	t.Helper()
	if len(want) == 0 && len(got) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("full messages = %v, want %v", got, want)
	}
}

func TestBooleanFieldValidation(t *testing.T) {
	required := Field{Name: "my_boolean", Kind: KindBoolean, Required: true}

	assertMessages(t, messagesFor(t, required, true), nil)
	assertMessages(t, messagesFor(t, required, false), nil)
	assertMessages(t, messagesFor(t, required, nil), []string{"My Boolean is required"})
	assertMessages(t, messagesFor(t, required, 13), []string{"My Boolean must be a valid boolean"})

	optional := Field{Name: "my_boolean", Kind: KindBoolean}
	assertMessages(t, messagesFor(t, optional, nil), nil)
	assertMessages(t, messagesFor(t, optional, 13), []string{"My Boolean must be a valid boolean"})
}

func TestBooleanFieldDefaultDoesNotOverrideFalse(t *testing.T) {
	s := MustSchema(Field{Name: "my_boolean", Kind: KindBoolean, Default: true, Required: true})

	d, err := s.New(map[string]any{"my_boolean": false})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := d.Get("my_boolean"); got != false {
		t.Errorf("Get() = %v, want false", got)
	}

	d, err = s.New(nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := d.Get("my_boolean"); got != true {
		t.Errorf("Get() with default = %v, want true", got)
	}
}

func TestDateTimeFieldValidation(t *testing.T) {
	f := Field{Name: "my_datetime", Kind: KindDateTime}

	assertMessages(t, messagesFor(t, f, "not a datetime"),
		[]string{"My Datetime must be a valid date and time"})
	assertMessages(t, messagesFor(t, f, time.Now()), nil)
	assertMessages(t, messagesFor(t, f, "2026-03-01T10:30:00Z"), nil)
	assertMessages(t, messagesFor(t, f, nil), nil)

	required := Field{Name: "my_datetime", Kind: KindDateTime, Required: true}
	assertMessages(t, messagesFor(t, required, nil), []string{"My Datetime is required"})
}

func TestDateTimeFieldCoercesToUTC(t *testing.T) {
	s := MustSchema(Field{Name: "at", Kind: KindDateTime})
	d, _ := s.New(nil)

	loc := time.FixedZone("UTC+2", 2*60*60)
	local := time.Date(2026, 3, 1, 12, 30, 0, 0, loc)
	if err := d.Set("at", local); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok := d.Get("at").(time.Time)
	if !ok {
		t.Fatalf("Get() = %T, want time.Time", d.Get("at"))
	}
	if got.Location() != time.UTC {
		t.Errorf("stored location = %v, want UTC", got.Location())
	}
	if !got.Equal(local) {
		t.Errorf("stored time %v not equal to assigned %v", got, local)
	}
}

func TestFloatFieldValidation(t *testing.T) {
	f := Field{Name: "my_float", Kind: KindFloat}

	assertMessages(t, messagesFor(t, f, "not a float"), []string{"My Float must be a float"})
	assertMessages(t, messagesFor(t, f, 2.2), nil)
	assertMessages(t, messagesFor(t, f, nil), nil)

	withMin := Field{Name: "my_float", Kind: KindFloat, MinValue: Float64(5)}
	assertMessages(t, messagesFor(t, withMin, 4.99), []string{"My Float is too small (minimum is 5)"})
	assertMessages(t, messagesFor(t, withMin, 5), nil)

	minZero := Field{Name: "my_float", Kind: KindFloat, MinValue: Float64(0)}
	assertMessages(t, messagesFor(t, minZero, -4.99), []string{"My Float is too small (minimum is 0)"})
	assertMessages(t, messagesFor(t, minZero, 5), nil)

	withMax := Field{Name: "my_float", Kind: KindFloat, MaxValue: Float64(10)}
	assertMessages(t, messagesFor(t, withMax, 10.00001), []string{"My Float is too big (maximum is 10)"})
	assertMessages(t, messagesFor(t, withMax, 10), nil)

	// Base check runs alone when the value is unset.
	requiredMin := Field{Name: "my_float", Kind: KindFloat, Required: true, MinValue: Float64(10)}
	assertMessages(t, messagesFor(t, requiredMin, nil), []string{"My Float is required"})
}

func TestFloatFieldCoercesIntegers(t *testing.T) {
	s := MustSchema(Field{Name: "my_float", Kind: KindFloat})
	d, _ := s.New(nil)

	if err := d.Set("my_float", 4); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := d.Get("my_float"); got != 4.0 {
		t.Errorf("Get() = %v (%T), want 4.0", got, got)
	}
	if !d.Valid() {
		t.Errorf("Valid() = false: %v", d.Errors().FullMessages())
	}

	if err := d.Set("my_float", "2.99"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := d.Get("my_float"); got != 2.99 {
		t.Errorf("Get() = %v, want 2.99", got)
	}
}

func TestIntegerFieldValidation(t *testing.T) {
	f := Field{Name: "my_integer", Kind: KindInteger}

	assertMessages(t, messagesFor(t, f, 2.2), []string{"My Integer must be an integer"})
	assertMessages(t, messagesFor(t, f, 2), nil)
	assertMessages(t, messagesFor(t, f, nil), nil)

	withMin := Field{Name: "my_integer", Kind: KindInteger, MinValue: Float64(5)}
	assertMessages(t, messagesFor(t, withMin, 4), []string{"My Integer is too small (minimum is 5)"})
	assertMessages(t, messagesFor(t, withMin, 5), nil)

	minZero := Field{Name: "my_integer", Kind: KindInteger, MinValue: Float64(0)}
	assertMessages(t, messagesFor(t, minZero, -4), []string{"My Integer is too small (minimum is 0)"})

	withMax := Field{Name: "my_integer", Kind: KindInteger, MaxValue: Float64(10)}
	assertMessages(t, messagesFor(t, withMax, 11), []string{"My Integer is too big (maximum is 10)"})
	assertMessages(t, messagesFor(t, withMax, 10), nil)

	maxZero := Field{Name: "my_integer", Kind: KindInteger, MaxValue: Float64(0)}
	assertMessages(t, messagesFor(t, maxZero, 10), []string{"My Integer is too big (maximum is 0)"})
	assertMessages(t, messagesFor(t, maxZero, -10), nil)

	requiredMin := Field{Name: "my_integer", Kind: KindInteger, Required: true, MinValue: Float64(10)}
	assertMessages(t, messagesFor(t, requiredMin, nil), []string{"My Integer is required"})
}

func TestIntegerFieldCoercesIntegralFloats(t *testing.T) {
	s := MustSchema(Field{Name: "n", Kind: KindInteger})
	d, _ := s.New(nil)

	// JSON numbers decode as float64; integral values conform.
	if err := d.Set("n", float64(42)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := d.Get("n"); got != int64(42) {
		t.Errorf("Get() = %v (%T), want int64(42)", got, got)
	}
}

func TestIDFieldValidation(t *testing.T) {
	f := Field{Name: "my_field", Kind: KindID}

	assertMessages(t, messagesFor(t, f, "not a document ID"),
		[]string{"My Field must be a valid document ID"})
	assertMessages(t, messagesFor(t, f, uuid.New()), nil)
	assertMessages(t, messagesFor(t, f, nil), nil)

	required := Field{Name: "my_field", Kind: KindID, Required: true}
	assertMessages(t, messagesFor(t, required, nil), []string{"My Field is required"})
}

func TestIDFieldCanonicalizes(t *testing.T) {
	s := MustSchema(Field{Name: "ref", Kind: KindID})
	d, _ := s.New(nil)

	id := uuid.New()
	if err := d.Set("ref", id); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := d.Get("ref"); got != id.String() {
		t.Errorf("Get() = %v, want %v", got, id.String())
	}

	upper := "6BA7B810-9DAD-11D1-80B4-00C04FD430C8"
	if err := d.Set("ref", upper); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := d.Get("ref"); got != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
		t.Errorf("Get() = %v, want canonical lowercase form", got)
	}
}

func TestStringFieldCoercion(t *testing.T) {
	s := MustSchema(Field{Name: "my_field", Kind: KindString})
	d, _ := s.New(nil)

	if err := d.Set("my_field", " a value with leading and trailing whitespace    "); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := d.Get("my_field"); got != "a value with leading and trailing whitespace" {
		t.Errorf("Get() = %q, want trimmed value", got)
	}

	if err := d.Set("my_field", 5); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := d.Get("my_field"); got != "5" {
		t.Errorf("Get() = %q, want \"5\"", got)
	}

	unicodeVal := "I sat down for coffee at the café"
	if err := d.Set("my_field", unicodeVal); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := d.Get("my_field"); got != unicodeVal {
		t.Errorf("Get() = %q, want %q", got, unicodeVal)
	}
}

func TestStringFieldValidation(t *testing.T) {
	assertMessages(t,
		messagesFor(t, Field{Name: "my_field", Kind: KindString, MinLength: Int(10)}, "Not ten"),
		[]string{"My Field is too short (minimum is 10 characters)"})

	assertMessages(t,
		messagesFor(t, Field{Name: "my_field", Kind: KindString, MaxLength: Int(10)}, "More than ten characters"),
		[]string{"My Field is too long (maximum is 10 characters)"})

	exact := Field{Name: "my_field", Kind: KindString, Length: Int(4)}
	assertMessages(t, messagesFor(t, exact, "more than four"),
		[]string{"My Field is the wrong length (should be 4 characters)"})
	assertMessages(t, messagesFor(t, exact, "one"),
		[]string{"My Field is the wrong length (should be 4 characters)"})
	assertMessages(t, messagesFor(t, exact, "four"), nil)

	pattern := Field{Name: "my_field", Kind: KindString, Pattern: "^This"}
	assertMessages(t, messagesFor(t, pattern, "Does not match pattern"),
		[]string{"My Field is in the wrong format"})
	assertMessages(t, messagesFor(t, pattern, "This is the right pattern"), nil)

	choices := Field{Name: "my_field", Kind: KindString, Choices: []string{"type_a", "type_b"}}
	assertMessages(t, messagesFor(t, choices, "not a choice"),
		[]string{"My Field is not one of the allowed values"})
	assertMessages(t, messagesFor(t, choices, "type_a"), nil)
}

func TestStringFieldRequiredRunsLengthChecks(t *testing.T) {
	f := Field{Name: "my_field", Kind: KindString, Required: true, MinLength: Int(10)}
	want := []string{
		"My Field is required",
		"My Field is too short (minimum is 10 characters)",
	}

	assertMessages(t, messagesFor(t, f, nil), want)
	assertMessages(t, messagesFor(t, f, ""), want)
	assertMessages(t, messagesFor(t, f, "        "), want)
}

func TestStringFieldEmptyNotRequired(t *testing.T) {
	f := Field{Name: "my_field", Kind: KindString, MinLength: Int(10)}
	assertMessages(t, messagesFor(t, f, ""), nil)
	assertMessages(t, messagesFor(t, Field{Name: "my_field", Kind: KindString}, ""), nil)
}

func TestEmbeddedFieldValidation(t *testing.T) {
	address := MustSchema(
		Field{Name: "street", Kind: KindString, Required: true},
		Field{Name: "city", Kind: KindString},
	)
	f := Field{Name: "address", Kind: KindEmbedded, Embedded: address}

	// An invalid child surfaces as one aggregated message on the
	// parent field, not the child's per-field detail.
	child, _ := address.New(map[string]any{"city": "Anywhere"})
	assertMessages(t, messagesFor(t, f, child), []string{"Address is invalid"})

	valid, _ := address.New(map[string]any{"street": "123 Elm St.", "city": "Anywhere"})
	assertMessages(t, messagesFor(t, f, valid), nil)

	// A value of the wrong shape is invalid, not a panic.
	assertMessages(t, messagesFor(t, f, 42), []string{"Address is invalid"})

	other := MustSchema(Field{Name: "x", Kind: KindString})
	foreign, _ := other.New(nil)
	assertMessages(t, messagesFor(t, f, foreign), []string{"Address is invalid"})
}

func TestEmbeddedListFieldValidation(t *testing.T) {
	item := MustSchema(
		Field{Name: "sku", Kind: KindString, Required: true},
		Field{Name: "quantity", Kind: KindInteger, MinValue: Float64(1)},
	)
	f := Field{Name: "line_items", Kind: KindEmbeddedList, Embedded: item}

	good, _ := item.New(map[string]any{"sku": "A-1", "quantity": 2})
	bad, _ := item.New(map[string]any{"quantity": 2})

	assertMessages(t, messagesFor(t, f, []*Document{good}), nil)
	assertMessages(t, messagesFor(t, f, []*Document{good, bad}),
		[]string{"Line Items is invalid"})
	assertMessages(t, messagesFor(t, f, []*Document{}), nil)
}

func TestArrayFieldValidation(t *testing.T) {
	f := Field{Name: "my_field", Kind: KindArray}

	assertMessages(t, messagesFor(t, f, "Not a list"), []string{"My Field is not a list"})
	assertMessages(t, messagesFor(t, f, nil), nil)
	assertMessages(t, messagesFor(t, f, []any{}), nil)
	assertMessages(t, messagesFor(t, f, []any{1, 2, 3}), nil)

	withMin := Field{Name: "my_field", Kind: KindArray, MinLength: Int(10)}
	assertMessages(t, messagesFor(t, withMin, []any{"Not ten"}),
		[]string{"My Field is too short (minimum is 10 items)"})

	withMax := Field{Name: "my_field", Kind: KindArray, MaxLength: Int(10)}
	eleven := make([]any, 11)
	assertMessages(t, messagesFor(t, withMax, eleven),
		[]string{"My Field is too long (maximum is 10 items)"})
	assertMessages(t, messagesFor(t, withMax, eleven[:10]), nil)

	exact := Field{Name: "my_field", Kind: KindArray, Length: Int(4)}
	assertMessages(t, messagesFor(t, exact, make([]any, 5)),
		[]string{"My Field is the wrong length (should be 4 items)"})
	assertMessages(t, messagesFor(t, exact, make([]any, 1)),
		[]string{"My Field is the wrong length (should be 4 items)"})
	assertMessages(t, messagesFor(t, exact, make([]any, 4)), nil)
}

func TestArrayFieldRequiredTreatsEmptyAsMissing(t *testing.T) {
	required := Field{Name: "my_field", Kind: KindArray, Required: true, MinLength: Int(10)}

	// Required array fields report their item-count constraints against
	// the empty value, for nil and empty lists alike.
	want := []string{
		"My Field is required",
		"My Field is too short (minimum is 10 items)",
	}
	assertMessages(t, messagesFor(t, required, nil), want)
	assertMessages(t, messagesFor(t, required, []any{}), want)

	// An empty list on a non-required field skips the constraints.
	optionalMin := Field{Name: "my_field", Kind: KindArray, MinLength: Int(10)}
	assertMessages(t, messagesFor(t, optionalMin, []any{}), nil)
}

func TestArrayFieldItemHook(t *testing.T) {
	f := Field{Name: "violence", Kind: KindArray, ValidateItem: func(item any) string {
		if item != 42 {
			return "is not the answer"
		}
		return ""
	}}

	assertMessages(t, messagesFor(t, f, []any{1}), []string{"Violence is not the answer"})
	assertMessages(t, messagesFor(t, f, []any{42, 42}), nil)
}

func TestArrayFieldCoercion(t *testing.T) {
	s := MustSchema(Field{Name: "tags", Kind: KindArray})
	d, _ := s.New(nil)

	// Typed slices normalize to []any, order preserved.
	if err := d.Set("tags", []string{"a", "b"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := d.Get("tags"); !reflect.DeepEqual(got, []any{"a", "b"}) {
		t.Errorf("Get() = %#v, want []any{a b}", got)
	}

	// Byte slices are string data, not lists.
	if err := d.Set("tags", []byte("nope")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if d.Valid() {
		t.Error("Valid() = true for byte slice on array field")
	}
}

func TestIntegerFieldUnsignedCoercion(t *testing.T) {
	s := MustSchema(Field{Name: "n", Kind: KindInteger})
	d, _ := s.New(nil)

	for _, v := range []any{uint8(8), uint16(16), uint32(32), uint(64), uint64(64)} {
		if err := d.Set("n", v); err != nil {
			t.Fatalf("Set(%T) error = %v", v, err)
		}
		if got := d.Get("n"); reflect.TypeOf(got).Kind() != reflect.Int64 {
			t.Errorf("Get() after Set(%T) = %T, want int64", v, got)
		}
	}

	// Values above MaxInt64 must not wrap; they stay raw and surface
	// through validation.
	if err := d.Set("n", uint64(math.MaxInt64)+1); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	d.Valid()
	want := []string{"N must be an integer"}
	if got := d.Errors().FullMessages(); !reflect.DeepEqual(got, want) {
		t.Errorf("FullMessages() = %v, want %v", got, want)
	}
}
