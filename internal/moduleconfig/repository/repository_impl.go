package repository

import (
	"context"

	moduleconfigdomain "github.com/smallbiznis/customdelivery/internal/moduleconfig/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() moduleconfigdomain.Repository {
	return &repo{}
}

func (r *repo) Find(ctx context.Context, db *gorm.DB) (*moduleconfigdomain.Config, error) {
	var cfg moduleconfigdomain.Config
	err := db.WithContext(ctx).Raw(
		`SELECT id, tracking_url, method, tax_rule_id, updated_at
		 FROM custom_delivery_configs WHERE id = ?`,
		moduleconfigdomain.SingletonID,
	).Scan(&cfg).Error
	if err != nil {
		return nil, err
	}
	if cfg.ID == 0 {
		return nil, nil
	}
	return &cfg, nil
}

// Upsert writes the singleton row, inserting it on first save.
func (r *repo) Upsert(ctx context.Context, db *gorm.DB, cfg *moduleconfigdomain.Config) error {
	cfg.ID = moduleconfigdomain.SingletonID
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"tracking_url", "method", "tax_rule_id", "updated_at"}),
	}).Create(cfg).Error
}
