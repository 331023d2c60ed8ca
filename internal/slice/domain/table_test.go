package domain

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weightSlice(id int64, bound, price string) Slice {
	return Slice{
		ID:        snowflake.ID(id),
		AreaID:    7,
		WeightMax: decimal.NewNullDecimal(decimal.RequireFromString(bound)),
		Price:     decimal.RequireFromString(price),
	}
}

func TestTableLookupPicksFirstCoveringTier(t *testing.T) {
	table := NewTable(7, MethodByWeight, []Slice{
		weightSlice(2, "10", "15"),
		weightSlice(1, "5", "10"),
	})

	got, ok := table.Lookup(decimal.RequireFromString("5"))
	require.True(t, ok)
	assert.Equal(t, "10", got.Price.String())

	got, ok = table.Lookup(decimal.RequireFromString("5.01"))
	require.True(t, ok)
	assert.Equal(t, "15", got.Price.String())

	got, ok = table.Lookup(decimal.RequireFromString("0.2"))
	require.True(t, ok)
	assert.Equal(t, "10", got.Price.String())

	_, ok = table.Lookup(decimal.RequireFromString("10.01"))
	assert.False(t, ok)

	assert.Equal(t, "10", table.Max().String())
}

func TestTableSkipsSlicesWithoutMethodBound(t *testing.T) {
	priced := Slice{ID: 3, AreaID: 7, PriceMax: decimal.NewNullDecimal(decimal.NewFromInt(100))}
	table := NewTable(7, MethodByWeight, []Slice{priced, weightSlice(1, "5", "10")})

	require.Len(t, table.Slices, 1)
	assert.Equal(t, snowflake.ID(1), table.Slices[0].ID)

	empty := NewTable(7, MethodByPrice, nil)
	_, ok := empty.Lookup(decimal.NewFromInt(1))
	assert.False(t, ok)
	assert.True(t, empty.Max().IsZero())
}

func TestTableValidate(t *testing.T) {
	ok := NewTable(7, MethodByWeight, []Slice{weightSlice(1, "5", "10"), weightSlice(2, "10", "15")})
	assert.NoError(t, ok.Validate())

	dup := NewTable(7, MethodByWeight, []Slice{weightSlice(1, "5", "10"), weightSlice(2, "5.0", "15")})
	assert.ErrorIs(t, dup.Validate(), ErrDuplicateBound)

	zero := NewTable(7, MethodByWeight, []Slice{weightSlice(1, "0", "10")})
	assert.ErrorIs(t, zero.Validate(), ErrInvalidUpperBound)
}

func TestConflicts(t *testing.T) {
	existing := []Slice{
		{ID: 1, WeightMax: decimal.NewNullDecimal(decimal.NewFromInt(5)), PriceMax: decimal.NewNullDecimal(decimal.NewFromInt(50))},
		{ID: 2, WeightMax: decimal.NewNullDecimal(decimal.NewFromInt(10)), PriceMax: decimal.NewNullDecimal(decimal.NewFromInt(100))},
	}

	candidate := Slice{WeightMax: decimal.NewNullDecimal(decimal.RequireFromString("5.00"))}
	assert.Equal(t, []string{FieldWeightMax}, Conflicts(MethodByWeight, candidate, existing))
	assert.Empty(t, Conflicts(MethodByPrice, candidate, existing))

	// Updating a slice in place never collides with itself.
	candidate.ID = 1
	assert.Empty(t, Conflicts(MethodByWeight, candidate, existing))

	mixed := Slice{
		WeightMax: decimal.NewNullDecimal(decimal.NewFromInt(5)),
		PriceMax:  decimal.NewNullDecimal(decimal.NewFromInt(100)),
	}
	assert.Empty(t, Conflicts(MethodByWeightAndPrice, mixed, existing))

	same := Slice{
		WeightMax: decimal.NewNullDecimal(decimal.NewFromInt(10)),
		PriceMax:  decimal.NewNullDecimal(decimal.NewFromInt(100)),
	}
	assert.Equal(t, []string{FieldWeightMax, FieldPriceMax}, Conflicts(MethodByWeightAndPrice, same, existing))
}

func TestSliceView(t *testing.T) {
	tax := int64(9)
	s := weightSlice(42, "2.5", "0")
	s.TaxRuleID = &tax

	view := s.View()
	assert.Equal(t, "42", view["Id"])
	assert.Equal(t, int64(7), view["AreaId"])
	assert.Equal(t, "2.5", view["WeightMax"])
	assert.Nil(t, view["PriceMax"])
	assert.Equal(t, "0", view["Price"])
	assert.Equal(t, int64(9), view["TaxRuleId"])
}
