package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts are stored as NUMERIC(16,6).
const (
	AmountScale     = 6
	amountIntDigits = 10
)

var (
	amountPattern = regexp.MustCompile(`^\d+(?:[.,]\d+)?$`)
	amountLimit   = decimal.New(1, amountIntDigits)
)

// ParseAmount parses an admin-entered number. Both "." and "," are accepted
// as the fractional separator; anything else, including signs and thousands
// separators, is rejected. Values the storage column cannot hold exactly are
// rejected too: more than six significant decimals, or ten integer digits.
func ParseAmount(raw string) (decimal.Decimal, error) {
	value := strings.TrimSpace(raw)
	if !amountPattern.MatchString(value) {
		return decimal.Zero, ErrInvalidNumber
	}
	parsed, err := decimal.NewFromString(strings.Replace(value, ",", ".", 1))
	if err != nil {
		return decimal.Zero, ErrInvalidNumber
	}
	if !parsed.Equal(parsed.Truncate(AmountScale)) || parsed.GreaterThanOrEqual(amountLimit) {
		return decimal.Zero, ErrInvalidNumber
	}
	return parsed, nil
}
