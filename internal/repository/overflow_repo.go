package repository

import (
	"context"
	"time"

	"go-floor-inventory/internal/model"

	"gorm.io/gorm"
)

type OverflowRepository interface {
	Create(ctx context.Context, event *model.OverflowEvent) error
	FindActive(ctx context.Context) ([]model.OverflowEvent, error)

	// StatsBetween sums quantities and counts non-deleted events per product
	// with from <= created_at < to, ordered by product number.
	StatsBetween(ctx context.Context, from, to time.Time) ([]model.OverflowStat, error)

	// FindByProduct returns every event of the product, deleted ones included
	FindByProduct(ctx context.Context, productNumber string) ([]model.OverflowEvent, error)

	// SoftDelete flags the event identified by (productNumber, createdAt) if it is
	// still active. It returns false without error when no row matched.
	SoftDelete(ctx context.Context, productNumber string, createdAt, deletedAt time.Time) (bool, error)
}

type overflowRepo struct {
	db *gorm.DB
}

func NewOverflowRepo(db *gorm.DB) OverflowRepository {
	return &overflowRepo{db}
}

func (r *overflowRepo) Create(ctx context.Context, event *model.OverflowEvent) error {
	return r.db.WithContext(ctx).Omit("Product").Create(event).Error
}

func (r *overflowRepo) FindActive(ctx context.Context) ([]model.OverflowEvent, error) {
	var events []model.OverflowEvent
	err := r.withCatalog(ctx).
		Where("overflow_management.is_deleted = ?", false).
		Order("overflow_management.created_at DESC").
		Find(&events).Error
	return events, err
}

func (r *overflowRepo) StatsBetween(ctx context.Context, from, to time.Time) ([]model.OverflowStat, error) {
	var stats []model.OverflowStat
	err := statsStmt(r.db.WithContext(ctx), &stats, from, to).Error
	return stats, err
}

func (r *overflowRepo) FindByProduct(ctx context.Context, productNumber string) ([]model.OverflowEvent, error) {
	var events []model.OverflowEvent
	err := r.withCatalog(ctx).
		Where("overflow_management.product_number = ?", productNumber).
		Order("overflow_management.created_at DESC").
		Find(&events).Error
	return events, err
}

func (r *overflowRepo) SoftDelete(ctx context.Context, productNumber string, createdAt, deletedAt time.Time) (bool, error) {
	result := softDeleteStmt(r.db.WithContext(ctx), productNumber, createdAt, deletedAt)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *overflowRepo) withCatalog(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.OverflowEvent{}).
		Select("overflow_management.*, products.location_number, products.box_type").
		Joins("LEFT JOIN products ON products.product_number = overflow_management.product_number")
}

// statsStmt aggregates the window in the database
func statsStmt(db *gorm.DB, dest *[]model.OverflowStat, from, to time.Time) *gorm.DB {
	return db.Model(&model.OverflowEvent{}).
		Select(`
			overflow_management.product_number,
			COALESCE(products.location_number, '') AS location_number,
			COALESCE(SUM(overflow_management.overflow_quantity), 0) AS total_quantity,
			COUNT(*) AS overflow_count
		`).
		Joins("LEFT JOIN products ON products.product_number = overflow_management.product_number").
		Where("overflow_management.is_deleted = ?", false).
		Where("overflow_management.created_at >= ? AND overflow_management.created_at < ?", from, to).
		Group("overflow_management.product_number, products.location_number").
		Order("overflow_management.product_number ASC").
		Find(dest)
}

// softDeleteStmt only matches the event while it is still active
func softDeleteStmt(db *gorm.DB, productNumber string, createdAt, deletedAt time.Time) *gorm.DB {
	return db.Model(&model.OverflowEvent{}).
		Where("product_number = ? AND created_at = ? AND is_deleted = ?", productNumber, createdAt, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": deletedAt,
		})
}
