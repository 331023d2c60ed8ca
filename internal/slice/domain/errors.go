package domain

import (
	"errors"
	"strings"
)

var (
	ErrInvalidArea       = errors.New("invalid_area")
	ErrInvalidNumber     = errors.New("invalid_number")
	ErrInvalidUpperBound = errors.New("invalid_upper_bound")
	ErrInvalidPrice      = errors.New("invalid_price")
	ErrInvalidTaxRule    = errors.New("invalid_tax_rule")
	ErrInvalidMethod     = errors.New("invalid_method")
	ErrDuplicateBound    = errors.New("duplicate_upper_bound")
	ErrNotFound          = errors.New("not_found")
)

// Field names reported in FieldError.
const (
	FieldID        = "id"
	FieldArea      = "area"
	FieldWeightMax = "weight_max"
	FieldPriceMax  = "price_max"
	FieldPrice     = "price"
	FieldTaxRule   = "tax_rule_id"
)

// FieldError ties a validation failure to the input field that caused it.
type FieldError struct {
	Field string `json:"field"`
	Err   error  `json:"-"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e FieldError) Unwrap() error { return e.Err }

// ValidationErrors carries every field failure found by a single Save.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Error())
	}
	return strings.Join(parts, "; ")
}

// Is reports whether any collected field error matches target.
func (v ValidationErrors) Is(target error) bool {
	for _, fe := range v {
		if errors.Is(fe.Err, target) {
			return true
		}
	}
	return false
}

func (v ValidationErrors) Fields() []string {
	out := make([]string, 0, len(v))
	for _, fe := range v {
		out = append(out, fe.Field)
	}
	return out
}

func (v *ValidationErrors) Add(field string, err error) {
	*v = append(*v, FieldError{Field: field, Err: err})
}
