package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Calculator applies a tax rule to a shipping charge. A zero ruleID, or a
// rule that is missing or disabled, yields zero tax.
type Calculator interface {
	Compute(ctx context.Context, ruleID int64, amount decimal.Decimal) (TaxAmount, error)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Disable(ctx context.Context, id string) (*Response, error)
}

type CreateRequest struct {
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	TaxMode TaxMode `json:"tax_mode"`
	Rate    string  `json:"rate"`
}

type Response struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	TaxMode   TaxMode   `json:"tax_mode"`
	Rate      string    `json:"rate"`
	IsEnabled bool      `json:"is_enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
