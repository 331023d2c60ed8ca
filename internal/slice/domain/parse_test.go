package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmountAcceptsBothSeparators(t *testing.T) {
	comma, err := ParseAmount("12,5")
	require.NoError(t, err)
	dot, err := ParseAmount(" 12.5 ")
	require.NoError(t, err)

	assert.True(t, comma.Equal(dot))
	assert.True(t, dot.Equal(decimal.RequireFromString("12.5")))

	whole, err := ParseAmount("0")
	require.NoError(t, err)
	assert.True(t, whole.IsZero())
}

func TestParseAmountRejectsMalformedInput(t *testing.T) {
	for _, raw := range []string{"12.5.3", "abc", "", "   ", "-3", "+3", ".5", "5.", "1,000.50", "1e3"} {
		_, err := ParseAmount(raw)
		assert.ErrorIs(t, err, ErrInvalidNumber, "input %q", raw)
	}
}

func TestParseAmountStaysWithinStoragePrecision(t *testing.T) {
	for _, raw := range []string{"5.000001", "5,0000010", "9999999999.999999", "0.000001"} {
		_, err := ParseAmount(raw)
		assert.NoError(t, err, "input %q", raw)
	}
	for _, raw := range []string{"5.0000001", "0.0000001", "10000000000", "123456789012345678"} {
		_, err := ParseAmount(raw)
		assert.ErrorIs(t, err, ErrInvalidNumber, "input %q", raw)
	}
}
