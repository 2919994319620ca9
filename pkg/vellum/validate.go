package vellum

import "strconv"

// Validation message catalogue. Messages are fragments; Errors renders
// them behind the humanized field name.
const (
	msgRequired    = "is required"
	msgWrongFormat = "is in the wrong format"
	msgNotAllowed  = "is not one of the allowed values"
	msgInvalid     = "is invalid"
)

// typeMessage returns the type-conformance failure message for the
// field's kind.
func (f Field) typeMessage() string {
	switch f.Kind {
	case KindString:
		return "must be a string"
	case KindInteger:
		return "must be an integer"
	case KindFloat:
		return "must be a float"
	case KindBoolean:
		return "must be a valid boolean"
	case KindDateTime:
		return "must be a valid date and time"
	case KindID:
		return "must be a valid document ID"
	case KindArray:
		return "is not a list"
	}
	return msgInvalid
}

// validate runs the field's checks against a stored value and deposits
// failures into errs. The base check (presence, type conformance)
// always runs before any kind-specific constraint; constraints never
// run on a non-conforming value.
func (f Field) validate(value any, errs *Errors) {
	coerced, conforms := f.coerce(value)

	missing := value == nil
	if conforms && !missing {
		switch f.Kind {
		case KindString:
			missing = coerced.(string) == ""
		case KindArray:
			missing = len(coerced.([]any)) == 0
		}
	}
	if f.Required && missing {
		errs.Add(f.Name, msgRequired)
	}
	if value == nil {
		// Required string and array fields report their length
		// constraints against the empty value; other kinds stop at
		// "is required".
		if f.Required {
			switch f.Kind {
			case KindString:
				f.validateString("", errs)
			case KindArray:
				f.validateArray(nil, errs)
			}
		}
		return
	}
	if !conforms {
		errs.Add(f.Name, f.typeMessage())
		return
	}

	switch f.Kind {
	case KindString:
		s := coerced.(string)
		if s == "" && !f.Required {
			return
		}
		f.validateString(s, errs)
	case KindInteger:
		f.validateBounds(float64(coerced.(int64)), errs)
	case KindFloat:
		f.validateBounds(coerced.(float64), errs)
	case KindArray:
		items := coerced.([]any)
		if len(items) == 0 && !f.Required {
			return
		}
		f.validateArray(items, errs)
	case KindEmbedded:
		if !coerced.(*Document).Valid() {
			errs.Add(f.Name, msgInvalid)
		}
	case KindEmbeddedList:
		for _, child := range coerced.([]*Document) {
			if !child.Valid() {
				errs.Add(f.Name, msgInvalid)
				break
			}
		}
	}
}

// validateBounds checks MinValue/MaxValue for numeric kinds.
func (f Field) validateBounds(v float64, errs *Errors) {
	if f.MinValue != nil && v < *f.MinValue {
		errs.Add(f.Name, "is too small (minimum is "+f.formatBound(*f.MinValue)+")")
	}
	if f.MaxValue != nil && v > *f.MaxValue {
		errs.Add(f.Name, "is too big (maximum is "+f.formatBound(*f.MaxValue)+")")
	}
}

// formatBound renders a numeric bound the way the field's kind would
// render a value: integers without a fraction, floats minimally.
func (f Field) formatBound(v float64) string {
	if f.Kind == KindInteger {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// validateArray checks item-count constraints and runs the per-item
// hook.
func (f Field) validateArray(items []any, errs *Errors) {
	n := len(items)
	if f.MinLength != nil && n < *f.MinLength {
		errs.Add(f.Name, "is too short (minimum is "+strconv.Itoa(*f.MinLength)+" items)")
	}
	if f.MaxLength != nil && n > *f.MaxLength {
		errs.Add(f.Name, "is too long (maximum is "+strconv.Itoa(*f.MaxLength)+" items)")
	}
	if f.Length != nil && n != *f.Length {
		errs.Add(f.Name, "is the wrong length (should be "+strconv.Itoa(*f.Length)+" items)")
	}
	if f.ValidateItem != nil {
		for _, item := range items {
			if msg := f.ValidateItem(item); msg != "" {
				errs.Add(f.Name, msg)
			}
		}
	}
}

// validateString checks length, pattern, and choice constraints.
func (f Field) validateString(s string, errs *Errors) {
	if f.MinLength != nil && len([]rune(s)) < *f.MinLength {
		errs.Add(f.Name, "is too short (minimum is "+strconv.Itoa(*f.MinLength)+" characters)")
	}
	if f.MaxLength != nil && len([]rune(s)) > *f.MaxLength {
		errs.Add(f.Name, "is too long (maximum is "+strconv.Itoa(*f.MaxLength)+" characters)")
	}
	if f.Length != nil && len([]rune(s)) != *f.Length {
		errs.Add(f.Name, "is the wrong length (should be "+strconv.Itoa(*f.Length)+" characters)")
	}
	if f.pattern != nil && !f.pattern.MatchString(s) {
		errs.Add(f.Name, msgWrongFormat)
	}
	if len(f.Choices) > 0 {
		found := false
		for _, c := range f.Choices {
			if s == c {
				found = true
				break
			}
		}
		if !found {
			errs.Add(f.Name, msgNotAllowed)
		}
	}
}
