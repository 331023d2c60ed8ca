package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Find(ctx context.Context, db *gorm.DB) (*Config, error)
	Upsert(ctx context.Context, db *gorm.DB, cfg *Config) error
}
