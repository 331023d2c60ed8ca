package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, rule *TaxRule) error
	FindByID(ctx context.Context, id snowflake.ID) (*TaxRule, error)
	Update(ctx context.Context, rule *TaxRule) error
}
