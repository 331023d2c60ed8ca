// Package domain describes the host platform's area-to-delivery-module
// associations. The table is owned by the host; this module only reads it,
// apart from operator seeding.
package domain

import (
	"context"

	"gorm.io/gorm"
)

type AreaDeliveryModule struct {
	ID               int64 `gorm:"primaryKey"`
	AreaID           int64 `gorm:"column:area_id;not null"`
	DeliveryModuleID int64 `gorm:"column:delivery_module_id;not null;index"`
}

func (AreaDeliveryModule) TableName() string { return "area_delivery_modules" }

type Repository interface {
	CountByModule(ctx context.Context, db *gorm.DB, moduleID int64) (int64, error)
	ListAreaIDs(ctx context.Context, db *gorm.DB, moduleID int64) ([]int64, error)
	Insert(ctx context.Context, db *gorm.DB, assoc *AreaDeliveryModule) error
}
