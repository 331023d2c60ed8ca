package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, slice *Slice) error
	Update(ctx context.Context, db *gorm.DB, slice *Slice) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Slice, error)
	ListByArea(ctx context.Context, db *gorm.DB, areaID int64) ([]Slice, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	BumpVersion(ctx context.Context, db *gorm.DB, areaID int64) error
	// Version is zero for an area that was never written.
	Version(ctx context.Context, db *gorm.DB, areaID int64) (int64, error)
}
