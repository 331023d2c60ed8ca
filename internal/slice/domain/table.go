package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Table is the ordered view of one area's slices for a single method.
// Slices without a bound for the method are left out.
type Table struct {
	AreaID int64
	Method Method
	Slices []Slice
}

func NewTable(areaID int64, method Method, slices []Slice) Table {
	items := make([]Slice, 0, len(slices))
	for _, s := range slices {
		if _, ok := s.UpperBound(method); ok {
			items = append(items, s)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, _ := items[i].UpperBound(method)
		b, _ := items[j].UpperBound(method)
		return a.LessThan(b)
	})
	return Table{AreaID: areaID, Method: method, Slices: items}
}

// Lookup returns the cheapest tier that still contains metric: the first
// slice whose bound is >= metric.
func (t Table) Lookup(metric decimal.Decimal) (Slice, bool) {
	idx := sort.Search(len(t.Slices), func(i int) bool {
		bound, _ := t.Slices[i].UpperBound(t.Method)
		return bound.GreaterThanOrEqual(metric)
	})
	if idx == len(t.Slices) {
		return Slice{}, false
	}
	return t.Slices[idx], true
}

// Max is the largest bound in the table, zero when empty.
func (t Table) Max() decimal.Decimal {
	if len(t.Slices) == 0 {
		return decimal.Zero
	}
	bound, _ := t.Slices[len(t.Slices)-1].UpperBound(t.Method)
	return bound
}

// Validate checks that bounds are positive and pairwise distinct, which is
// what makes the sorted bounds a partition of (0, max].
func (t Table) Validate() error {
	var prev decimal.Decimal
	for i, s := range t.Slices {
		bound, _ := s.UpperBound(t.Method)
		if !bound.IsPositive() {
			return ErrInvalidUpperBound
		}
		if i > 0 && bound.Equal(prev) {
			return ErrDuplicateBound
		}
		prev = bound
	}
	return nil
}

// Conflicts reports the fields of candidate whose bounds collide with another
// slice already in slices. Under the combined method a conflict needs both
// bounds to match, since only the exact same tier is known to overlap.
func Conflicts(method Method, candidate Slice, slices []Slice) []string {
	var weightHit, priceHit, pairHit bool
	for _, s := range slices {
		if s.ID != 0 && s.ID == candidate.ID {
			continue
		}
		w := sameBound(candidate.WeightMax, s.WeightMax)
		p := sameBound(candidate.PriceMax, s.PriceMax)
		weightHit = weightHit || w
		priceHit = priceHit || p
		pairHit = pairHit || (w && p)
	}

	var fields []string
	switch method {
	case MethodByWeight:
		if weightHit {
			fields = append(fields, FieldWeightMax)
		}
	case MethodByPrice:
		if priceHit {
			fields = append(fields, FieldPriceMax)
		}
	case MethodByWeightAndPrice:
		if pairHit {
			fields = append(fields, FieldWeightMax, FieldPriceMax)
		}
	}
	return fields
}

func sameBound(a, b decimal.NullDecimal) bool {
	return a.Valid && b.Valid && a.Decimal.Equal(b.Decimal)
}
