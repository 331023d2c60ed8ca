package domain

import (
	"context"

	slicedomain "github.com/smallbiznis/customdelivery/internal/slice/domain"
)

type Service interface {
	Get(ctx context.Context) (Config, error)
	Save(ctx context.Context, req SaveRequest) (Config, error)
}

type SaveRequest struct {
	TrackingURL string `json:"url"`
	Method      string `json:"method"`
	TaxRuleID   int64  `json:"tax"`
}

// Aliases of the slice validation errors.
var (
	ErrInvalidMethod  = slicedomain.ErrInvalidMethod
	ErrInvalidTaxRule = slicedomain.ErrInvalidTaxRule
)
