package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	slicedomain "github.com/smallbiznis/customdelivery/internal/slice/domain"
)

var (
	ErrNoApplicableRate  = errors.New("no_applicable_rate")
	ErrUnsupportedMethod = errors.New("unsupported_method")
	ErrInvalidMetric     = errors.New("invalid_metric")
)

// Charge is the shipping price resolved for one order.
type Charge struct {
	SliceID   snowflake.ID       `json:"slice_id"`
	AreaID    int64              `json:"area_id"`
	Method    slicedomain.Method `json:"method"`
	Amount    decimal.Decimal    `json:"amount"`
	Tax       decimal.Decimal    `json:"tax"`
	Total     decimal.Decimal    `json:"total"`
	TaxRuleID *int64             `json:"tax_rule_id,omitempty"`
}

type Resolver interface {
	// Resolve prices an order of the given weight and declared value
	// shipped to areaID.
	Resolve(ctx context.Context, areaID int64, method slicedomain.Method, weight, price float64) (*Charge, error)
}
