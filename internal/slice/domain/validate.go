package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Draft is the typed result of validating a SaveRequest.
type Draft struct {
	AreaID    int64
	WeightMax decimal.NullDecimal
	PriceMax  decimal.NullDecimal
	Price     decimal.Decimal
	// TaxRuleSet is false when the request left the tax rule blank.
	TaxRuleSet bool
	TaxRuleID  *int64
}

type boundValidator func(req SaveRequest, draft *Draft, errs *ValidationErrors)

var boundValidators = map[Method]boundValidator{
	MethodByWeight:         validateWeightBound,
	MethodByPrice:          validatePriceBound,
	MethodByWeightAndPrice: validateBothBounds,
}

// ValidateSave checks every field of req under method and reports all
// failures at once.
func ValidateSave(method Method, req SaveRequest) (Draft, ValidationErrors) {
	var (
		draft Draft
		errs  ValidationErrors
	)

	validateArea(req, &draft, &errs)

	bounds, ok := boundValidators[method]
	if !ok {
		errs.Add("method", ErrInvalidMethod)
	} else {
		bounds(req, &draft, &errs)
	}

	validatePrice(req, &draft, &errs)
	validateTaxRule(req, &draft, &errs)

	return draft, errs
}

func validateArea(req SaveRequest, draft *Draft, errs *ValidationErrors) {
	areaID, err := strconv.ParseInt(strings.TrimSpace(req.AreaID), 10, 64)
	if err != nil || areaID <= 0 {
		errs.Add(FieldArea, ErrInvalidArea)
		return
	}
	draft.AreaID = areaID
}

func validateWeightBound(req SaveRequest, draft *Draft, errs *ValidationErrors) {
	if bound, ok := parseBound(req.WeightMax, FieldWeightMax, errs); ok {
		draft.WeightMax = decimal.NewNullDecimal(bound)
	}
}

func validatePriceBound(req SaveRequest, draft *Draft, errs *ValidationErrors) {
	if bound, ok := parseBound(req.PriceMax, FieldPriceMax, errs); ok {
		draft.PriceMax = decimal.NewNullDecimal(bound)
	}
}

func validateBothBounds(req SaveRequest, draft *Draft, errs *ValidationErrors) {
	validateWeightBound(req, draft, errs)
	validatePriceBound(req, draft, errs)
}

func parseBound(raw, field string, errs *ValidationErrors) (decimal.Decimal, bool) {
	bound, err := ParseAmount(raw)
	if err != nil {
		errs.Add(field, ErrInvalidNumber)
		return decimal.Zero, false
	}
	if !bound.IsPositive() {
		errs.Add(field, ErrInvalidUpperBound)
		return decimal.Zero, false
	}
	return bound, true
}

func validatePrice(req SaveRequest, draft *Draft, errs *ValidationErrors) {
	price, err := ParseAmount(req.Price)
	if err != nil || price.IsNegative() {
		errs.Add(FieldPrice, ErrInvalidPrice)
		return
	}
	draft.Price = price
}

// A blank tax rule leaves the stored one untouched; "0" clears it.
func validateTaxRule(req SaveRequest, draft *Draft, errs *ValidationErrors) {
	raw := strings.TrimSpace(req.TaxRuleID)
	if raw == "" {
		return
	}
	taxRuleID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || taxRuleID < 0 {
		errs.Add(FieldTaxRule, ErrInvalidTaxRule)
		return
	}
	draft.TaxRuleSet = true
	if taxRuleID > 0 {
		draft.TaxRuleID = &taxRuleID
	}
}

// Apply copies the draft onto target. Bounds the method does not use keep
// their stored value.
func (d Draft) Apply(method Method, target *Slice) {
	target.AreaID = d.AreaID
	target.Price = d.Price
	if method.UsesWeight() {
		target.WeightMax = d.WeightMax
	}
	if method.UsesPrice() {
		target.PriceMax = d.PriceMax
	}
	if d.TaxRuleSet {
		target.TaxRuleID = d.TaxRuleID
	}
}
