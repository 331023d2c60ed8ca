package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	taxdomain "github.com/smallbiznis/customdelivery/internal/tax/domain"
	"go.uber.org/fx"
)

const taxPlaces = 2

type calculatorParam struct {
	fx.In

	Repository taxdomain.Repository
}

type calculator struct {
	repo taxdomain.Repository
}

func NewCalculator(p calculatorParam) taxdomain.Calculator {
	return &calculator{repo: p.Repository}
}

func (c *calculator) Compute(ctx context.Context, ruleID int64, amount decimal.Decimal) (taxdomain.TaxAmount, error) {
	untaxed := taxdomain.TaxAmount{Tax: decimal.Zero, Total: amount}
	if ruleID <= 0 {
		return untaxed, nil
	}

	rule, err := c.repo.FindByID(ctx, snowflake.ID(ruleID))
	if err != nil {
		return taxdomain.TaxAmount{}, err
	}
	if rule == nil || !rule.IsEnabled || !rule.Rate.IsPositive() {
		return untaxed, nil
	}

	result := taxdomain.TaxAmount{
		RuleID:  ruleID,
		TaxMode: rule.TaxMode,
		Rate:    rule.Rate,
	}
	switch rule.TaxMode {
	case taxdomain.TaxModeInclusive:
		result.Tax = ComputeTaxInclusive(amount, rule.Rate)
		result.Total = amount
	default:
		result.Tax = ComputeTaxExclusive(amount, rule.Rate)
		result.Total = amount.Add(result.Tax)
	}
	return result, nil
}

// ComputeTaxExclusive calculates tax added on top of amount.
// Rounding happens only here.
func ComputeTaxExclusive(amount, rate decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() || !rate.IsPositive() {
		return decimal.Zero
	}
	return amount.Mul(rate).Round(taxPlaces)
}

// ComputeTaxInclusive calculates the tax portion already included in amount.
func ComputeTaxInclusive(amount, rate decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() || !rate.IsPositive() {
		return decimal.Zero
	}
	return amount.Mul(rate).Div(decimal.NewFromInt(1).Add(rate)).Round(taxPlaces)
}
