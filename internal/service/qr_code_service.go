package service

import (
	"context"
	"strings"

	"go-floor-inventory/internal/model"
	"go-floor-inventory/internal/repository"
)

type QRCodeService interface {
	List(ctx context.Context, search string, order SortOrder) ([]model.QRCode, error)
}

type qrCodeService struct {
	qrRepo repository.QRCodeRepository
}

func NewQRCodeService(qrRepo repository.QRCodeRepository) QRCodeService {
	return &qrCodeService{qrRepo: qrRepo}
}

func (s *qrCodeService) List(ctx context.Context, search string, order SortOrder) ([]model.QRCode, error) {
	return s.qrRepo.List(ctx, strings.TrimSpace(search), order == SortAsc)
}
