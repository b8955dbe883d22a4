package repository

import (
	"context"

	"go-floor-inventory/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	FindByProductNumber(ctx context.Context, productNumber string) (*model.Product, error)
	Search(ctx context.Context, query string, offset, limit int) ([]model.Product, int64, error)
	Upsert(ctx context.Context, product *model.Product) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) FindByProductNumber(ctx context.Context, productNumber string) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "product_number = ?", productNumber).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Search matches product numbers case-insensitively and returns one page plus the total count
func (r *productRepo) Search(ctx context.Context, query string, offset, limit int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{})
	if query != "" {
		q = q.Where("product_number ILIKE ?", "%"+query+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Order("product_number ASC").
		Offset(offset).
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// Upsert is used by the catalog seeder only
func (r *productRepo) Upsert(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"location_number", "box_type", "location_capacity", "description"}),
	}).Create(product).Error
}
