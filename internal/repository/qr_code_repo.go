package repository

import (
	"context"

	"go-floor-inventory/internal/model"

	"gorm.io/gorm"
)

type QRCodeRepository interface {
	List(ctx context.Context, search string, ascending bool) ([]model.QRCode, error)
}

type qrCodeRepo struct {
	db *gorm.DB
}

func NewQRCodeRepo(db *gorm.DB) QRCodeRepository {
	return &qrCodeRepo{db}
}

func (r *qrCodeRepo) List(ctx context.Context, search string, ascending bool) ([]model.QRCode, error) {
	var codes []model.QRCode

	q := r.db.WithContext(ctx).Model(&model.QRCode{})
	if search != "" {
		q = q.Where("content ILIKE ?", "%"+search+"%")
	}

	order := "scanned_at DESC NULLS LAST, id DESC"
	if ascending {
		order = "scanned_at ASC NULLS LAST, id ASC"
	}

	err := q.Order(order).Find(&codes).Error
	return codes, err
}
