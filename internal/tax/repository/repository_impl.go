package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	taxdomain "github.com/smallbiznis/customdelivery/internal/tax/domain"
	"github.com/smallbiznis/customdelivery/pkg/db"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) taxdomain.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rule *taxdomain.TaxRule) error {
	err := r.db.WithContext(ctx).Exec(
		`INSERT INTO tax_rules (
			id, code, name, tax_mode, rate, is_enabled, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rule.ID,
		rule.Code,
		rule.Name,
		rule.TaxMode,
		rule.Rate,
		rule.IsEnabled,
		rule.CreatedAt,
		rule.UpdatedAt,
	).Error
	if db.IsDuplicateKeyErr(err) {
		return taxdomain.ErrDuplicateCode
	}
	return err
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*taxdomain.TaxRule, error) {
	var rule taxdomain.TaxRule
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, code, name, tax_mode, rate, is_enabled, created_at, updated_at
		 FROM tax_rules
		 WHERE id = ?`,
		id,
	).Scan(&rule).Error
	if err != nil {
		return nil, err
	}
	if rule.ID == 0 {
		return nil, nil
	}
	return &rule, nil
}

func (r *repository) Update(ctx context.Context, rule *taxdomain.TaxRule) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE tax_rules
		 SET name = ?, tax_mode = ?, rate = ?, is_enabled = ?, updated_at = ?
		 WHERE id = ?`,
		rule.Name,
		rule.TaxMode,
		rule.Rate,
		rule.IsEnabled,
		rule.UpdatedAt,
		rule.ID,
	).Error
}
