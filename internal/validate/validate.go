// Package validate provides the field-level validation rules for complaint
// sheet data.
//
// Every validator is a pure predicate that returns nil on success or a
// *ValidationError describing the defect. Validators never panic and never
// short-circuit each other, so callers can batch-accumulate every problem in
// a sheet before deciding success or failure.
package validate

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ValidationError describes one invalid value. It is pure data: collected
// into lists and surfaced together, never raised individually.
type ValidationError struct {
	Field   string `json:"field"`           // Dotted path identifying the value, e.g. "complaint_3.tellUsMore"
	Message string `json:"message"`         // Human-readable description
	Value   any    `json:"value,omitempty"` // The offending raw value
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Required fails when value is absent or whitespace-only.
func Required(value *string, field string) *ValidationError {
	if value == nil || strings.TrimSpace(*value) == "" {
		var raw any
		if value != nil {
			raw = *value
		}
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s is required and cannot be empty", field),
			Value:   raw,
		}
	}
	return nil
}

// StringLength fails when value is shorter than min or longer than max.
// Length is measured in runes so multibyte text is not penalized.
func StringLength(value, field string, min, max int) *ValidationError {
	n := len([]rune(value))
	if n < min {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must be at least %d characters long", field, min),
			Value:   value,
		}
	}
	if n > max {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must be no more than %d characters long", field, max),
			Value:   value,
		}
	}
	return nil
}

// Rating validates an optional store rating against the inclusive [min, max]
// range of the active sheet generation. Absent or blank values are valid.
func Rating(raw *string, min, max int) *ValidationError {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}

	num, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
	if err != nil {
		return &ValidationError{
			Field:   "appStoreRating",
			Message: "App Store rating must be a valid number",
			Value:   *raw,
		}
	}

	if num < float64(min) || num > float64(max) {
		return &ValidationError{
			Field:   "appStoreRating",
			Message: fmt.Sprintf("App Store rating must be between %d and %d", min, max),
			Value:   *raw,
		}
	}
	return nil
}

// IsURL reports whether raw is a well-formed absolute URL with a scheme
// and an authority.
func IsURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
