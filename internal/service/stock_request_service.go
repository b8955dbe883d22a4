package service

import (
	"context"
	"errors"
	"fmt"

	"go-floor-inventory/internal/model"
	"go-floor-inventory/internal/repository"
	"go-floor-inventory/internal/ws"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type StockRequestService interface {
	CreateRequest(ctx context.Context, productNumber string, actor *model.Actor) (*model.StockRequest, error)
	AnswerRequest(ctx context.Context, id uint, stockQuantity int) (*model.StockRequest, error)
	DeleteRequest(ctx context.Context, id uint) error
	ListActive(ctx context.Context) ([]model.StockRequest, error)
}

type stockRequestService struct {
	requestRepo repository.StockRequestRepository
	catalog     CatalogService
	notifier    Notifier
	now         Clock
	logger      *zap.Logger
}

func NewStockRequestService(requestRepo repository.StockRequestRepository, catalog CatalogService, notifier Notifier, now Clock, logger *zap.Logger) StockRequestService {
	return &stockRequestService{
		requestRepo: requestRepo,
		catalog:     catalog,
		notifier:    notifier,
		now:         now,
		logger:      logger,
	}
}

func (s *stockRequestService) CreateRequest(ctx context.Context, productNumber string, actor *model.Actor) (*model.StockRequest, error) {
	if actor == nil || actor.DisplayName == "" {
		return nil, fmt.Errorf("%w: stock requests need an authenticated requester", ErrAuth)
	}

	product, err := s.catalog.Lookup(ctx, productNumber)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown product %q", ErrValidation, productNumber)
		}
		return nil, err
	}

	req := &model.StockRequest{
		ProductNumber: product.ProductNumber,
		RequestedAt:   s.now().Truncate(timePrecision),
		RequestedBy:   actor.DisplayName,
		Status:        model.StatusPending,
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	capacity := product.LocationCapacity
	req.LocationCapacity = &capacity

	s.logger.Info("stock request created",
		zap.Uint("id", req.ID),
		zap.String("product_number", req.ProductNumber),
		zap.String("requested_by", req.RequestedBy))

	s.notifier.Notify(ws.Event{
		Type:    "stock_request",
		Action:  "stock_request_created",
		Data:    req.ToResponse(),
		User:    actor.DisplayName,
		Message: fmt.Sprintf("%s requested a stock count for %s", actor.DisplayName, req.ProductNumber),
	})

	return req, nil
}

func (s *stockRequestService) AnswerRequest(ctx context.Context, id uint, stockQuantity int) (*model.StockRequest, error) {
	if stockQuantity < 0 {
		return nil, fmt.Errorf("%w: stock quantity must not be negative", ErrValidation)
	}

	req, ok, err := s.requestRepo.Complete(ctx, id, stockQuantity, s.now().Truncate(timePrecision))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.classifyMiss(ctx, id, "answered")
	}

	if product, err := s.catalog.Lookup(ctx, req.ProductNumber); err == nil {
		capacity := product.LocationCapacity
		req.LocationCapacity = &capacity
	}

	s.logger.Info("stock request answered",
		zap.Uint("id", req.ID),
		zap.String("product_number", req.ProductNumber),
		zap.Int("stock_quantity", stockQuantity))

	s.notifier.Notify(ws.Event{
		Type:    "stock_request",
		Action:  "stock_request_answered",
		Data:    req.ToResponse(),
		Message: fmt.Sprintf("%s counted %d units", req.ProductNumber, stockQuantity),
	})

	return req, nil
}

func (s *stockRequestService) DeleteRequest(ctx context.Context, id uint) error {
	ok, err := s.requestRepo.Archive(ctx, id, s.now().Truncate(timePrecision))
	if err != nil {
		return err
	}
	if !ok {
		return s.classifyMiss(ctx, id, "deleted")
	}

	s.logger.Info("stock request deleted", zap.Uint("id", id))

	s.notifier.Notify(ws.Event{
		Type:    "stock_request",
		Action:  "stock_request_deleted",
		Data:    map[string]interface{}{"id": id},
		Message: fmt.Sprintf("stock request %d archived", id),
	})

	return nil
}

func (s *stockRequestService) ListActive(ctx context.Context) ([]model.StockRequest, error) {
	return s.requestRepo.FindActive(ctx)
}

// classifyMiss explains why a conditional update touched no row
func (s *stockRequestService) classifyMiss(ctx context.Context, id uint, verb string) error {
	current, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: stock request %d", ErrNotFound, id)
		}
		return err
	}
	if current.IsDeleted {
		return fmt.Errorf("%w: stock request %d is deleted and cannot be %s", ErrState, id, verb)
	}
	return fmt.Errorf("%w: stock request %d is %s and cannot be %s", ErrState, id, current.Status, verb)
}
