package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	slicedomain "github.com/smallbiznis/customdelivery/internal/slice/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() slicedomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, slice *slicedomain.Slice) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO custom_delivery_slices (
			id, area_id, weight_max, price_max, price, tax_rule_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		slice.ID,
		slice.AreaID,
		slice.WeightMax,
		slice.PriceMax,
		slice.Price,
		slice.TaxRuleID,
		slice.CreatedAt,
		slice.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, slice *slicedomain.Slice) error {
	return db.WithContext(ctx).Exec(
		`UPDATE custom_delivery_slices
		 SET area_id = ?, weight_max = ?, price_max = ?, price = ?, tax_rule_id = ?, updated_at = ?
		 WHERE id = ?`,
		slice.AreaID,
		slice.WeightMax,
		slice.PriceMax,
		slice.Price,
		slice.TaxRuleID,
		slice.UpdatedAt,
		slice.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM custom_delivery_slices WHERE id = ?`, id)
	return res.RowsAffected, res.Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*slicedomain.Slice, error) {
	var slice slicedomain.Slice
	err := db.WithContext(ctx).Raw(
		`SELECT id, area_id, weight_max, price_max, price, tax_rule_id, created_at, updated_at
		 FROM custom_delivery_slices WHERE id = ?`,
		id,
	).Scan(&slice).Error
	if err != nil {
		return nil, err
	}
	if slice.ID == 0 {
		return nil, nil
	}
	return &slice, nil
}

func (r *repo) ListByArea(ctx context.Context, db *gorm.DB, areaID int64) ([]slicedomain.Slice, error) {
	var items []slicedomain.Slice
	err := db.WithContext(ctx).Raw(
		`SELECT id, area_id, weight_max, price_max, price, tax_rule_id, created_at, updated_at
		 FROM custom_delivery_slices WHERE area_id = ? ORDER BY id ASC`,
		areaID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&slicedomain.Slice{}).Count(&count).Error
	return count, err
}

func (r *repo) BumpVersion(ctx context.Context, db *gorm.DB, areaID int64) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "area_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"version": gorm.Expr("custom_delivery_table_versions.version + 1"),
		}),
	}).Create(&slicedomain.TableVersion{AreaID: areaID, Version: 1}).Error
}

func (r *repo) Version(ctx context.Context, db *gorm.DB, areaID int64) (int64, error) {
	var version int64
	err := db.WithContext(ctx).Raw(
		`SELECT version FROM custom_delivery_table_versions WHERE area_id = ?`,
		areaID,
	).Scan(&version).Error
	return version, err
}
