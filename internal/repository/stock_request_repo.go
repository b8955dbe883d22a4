package repository

import (
	"context"
	"time"

	"go-floor-inventory/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StockRequestRepository interface {
	Create(ctx context.Context, req *model.StockRequest) error
	FindByID(ctx context.Context, id uint) (*model.StockRequest, error)
	FindActive(ctx context.Context) ([]model.StockRequest, error)

	// Complete moves a pending, non-deleted request to completed in one statement.
	// It returns false without error when no row matched.
	Complete(ctx context.Context, id uint, stockQuantity int, checkedAt time.Time) (*model.StockRequest, bool, error)

	// Archive soft-deletes a completed, non-deleted request in one statement.
	Archive(ctx context.Context, id uint, deletedAt time.Time) (bool, error)
}

type stockRequestRepo struct {
	db *gorm.DB
}

func NewStockRequestRepo(db *gorm.DB) StockRequestRepository {
	return &stockRequestRepo{db}
}

func (r *stockRequestRepo) Create(ctx context.Context, req *model.StockRequest) error {
	return r.db.WithContext(ctx).Omit("Product").Create(req).Error
}

func (r *stockRequestRepo) FindByID(ctx context.Context, id uint) (*model.StockRequest, error) {
	var req model.StockRequest
	err := r.withCapacity(ctx).
		Where("stock_requests.id = ?", id).
		Take(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// FindActive lists non-deleted requests, most recent first
func (r *stockRequestRepo) FindActive(ctx context.Context) ([]model.StockRequest, error) {
	var requests []model.StockRequest
	err := r.withCapacity(ctx).
		Where("stock_requests.is_deleted = ?", false).
		Order("stock_requests.requested_at DESC, stock_requests.id DESC").
		Find(&requests).Error
	return requests, err
}

func (r *stockRequestRepo) Complete(ctx context.Context, id uint, stockQuantity int, checkedAt time.Time) (*model.StockRequest, bool, error) {
	var req model.StockRequest
	result := completeStmt(r.db.WithContext(ctx), &req, id, stockQuantity, checkedAt)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, false, nil
	}
	return &req, true, nil
}

func (r *stockRequestRepo) Archive(ctx context.Context, id uint, deletedAt time.Time) (bool, error) {
	result := archiveStmt(r.db.WithContext(ctx), id, deletedAt)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// completeStmt only matches a pending, non-deleted row; dest receives the updated row
func completeStmt(db *gorm.DB, dest *model.StockRequest, id uint, stockQuantity int, checkedAt time.Time) *gorm.DB {
	return db.Model(dest).
		Clauses(clause.Returning{}).
		Where("id = ? AND status = ? AND is_deleted = ?", id, model.StatusPending, false).
		Updates(map[string]interface{}{
			"status":         model.StatusCompleted,
			"stock_quantity": stockQuantity,
			"checked_at":     checkedAt,
		})
}

// archiveStmt only matches a completed, non-deleted row
func archiveStmt(db *gorm.DB, id uint, deletedAt time.Time) *gorm.DB {
	return db.Model(&model.StockRequest{}).
		Where("id = ? AND status = ? AND is_deleted = ?", id, model.StatusCompleted, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": deletedAt,
		})
}

func (r *stockRequestRepo) withCapacity(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.StockRequest{}).
		Select("stock_requests.*, products.location_capacity").
		Joins("LEFT JOIN products ON products.product_number = stock_requests.product_number")
}
