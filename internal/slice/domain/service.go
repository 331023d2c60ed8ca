package domain

import "context"

type Service interface {
	Save(ctx context.Context, req SaveRequest) (SliceView, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (SliceView, error)
	List(ctx context.Context, areaID int64) ([]SliceView, error)
}

// SaveRequest carries raw admin input. Numbers are kept as strings so the
// locale-flexible parser sees exactly what was typed.
type SaveRequest struct {
	ID        string `json:"id"`
	AreaID    string `json:"area"`
	WeightMax string `json:"weight_max"`
	PriceMax  string `json:"price_max"`
	Price     string `json:"price"`
	TaxRuleID string `json:"tax_rule_id"`
}
