package repository

import (
	"context"

	areadomain "github.com/smallbiznis/customdelivery/internal/area/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() areadomain.Repository {
	return &repo{}
}

func (r *repo) CountByModule(ctx context.Context, db *gorm.DB, moduleID int64) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&areadomain.AreaDeliveryModule{}).
		Where("delivery_module_id = ?", moduleID).
		Count(&count).Error
	return count, err
}

func (r *repo) ListAreaIDs(ctx context.Context, db *gorm.DB, moduleID int64) ([]int64, error) {
	var ids []int64
	err := db.WithContext(ctx).Raw(
		`SELECT DISTINCT area_id FROM area_delivery_modules
		 WHERE delivery_module_id = ? ORDER BY area_id ASC`,
		moduleID,
	).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, assoc *areadomain.AreaDeliveryModule) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO area_delivery_modules (id, area_id, delivery_module_id) VALUES (?, ?, ?)`,
		assoc.ID,
		assoc.AreaID,
		assoc.DeliveryModuleID,
	).Error
}
