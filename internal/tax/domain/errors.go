package domain

import "errors"

var (
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")
	ErrDuplicateCode  = errors.New("duplicate_tax_code")
	ErrInvalidTaxCode = errors.New("invalid_tax_code")
	ErrInvalidTaxMode = errors.New("invalid_tax_mode")
	ErrInvalidTaxRate = errors.New("invalid_tax_rate")
)
