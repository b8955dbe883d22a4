package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-floor-inventory/internal/model"
	"go-floor-inventory/internal/repository"
	"go-floor-inventory/internal/ws"
	"go-floor-inventory/pkg/validator"

	"go.uber.org/zap"
)

// RecordOverflowInput is what the floor terminal submits
type RecordOverflowInput struct {
	ProductNumber  string `json:"product_number" validate:"required"`
	LocationNumber string `json:"location_number"`
	Quantity       int    `json:"overflow_quantity" validate:"gt=0"`
	Reason         string `json:"overflow_reason" validate:"required,overflow_reason"`
	CustomText     string `json:"custom_reason"`
}

type OverflowService interface {
	RecordOverflow(ctx context.Context, input *RecordOverflowInput, actor *model.Actor) (*model.OverflowEvent, error)
	SoftDelete(ctx context.Context, productNumber string, createdAt time.Time, actor *model.Actor) error
	ListActive(ctx context.Context) ([]model.OverflowEvent, error)
}

type overflowService struct {
	overflowRepo repository.OverflowRepository
	catalog      CatalogService
	notifier     Notifier
	now          Clock
	logger       *zap.Logger
}

func NewOverflowService(overflowRepo repository.OverflowRepository, catalog CatalogService, notifier Notifier, now Clock, logger *zap.Logger) OverflowService {
	return &overflowService{
		overflowRepo: overflowRepo,
		catalog:      catalog,
		notifier:     notifier,
		now:          now,
		logger:       logger,
	}
}

func (s *overflowService) RecordOverflow(ctx context.Context, input *RecordOverflowInput, actor *model.Actor) (*model.OverflowEvent, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: empty overflow", ErrValidation)
	}
	input.ProductNumber = strings.TrimSpace(input.ProductNumber)
	input.LocationNumber = strings.TrimSpace(input.LocationNumber)

	if msg := validator.FirstError(input); msg != "" {
		return nil, fmt.Errorf("%w: %s", ErrValidation, msg)
	}

	reason := input.Reason
	if model.OverflowReason(reason) == model.ReasonOther {
		reason = strings.TrimSpace(input.CustomText)
		if reason == "" {
			return nil, fmt.Errorf("%w: reason 'other' needs a description", ErrValidation)
		}
	}

	product, err := s.catalog.Lookup(ctx, input.ProductNumber)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown product %q", ErrValidation, input.ProductNumber)
		}
		return nil, err
	}
	if input.LocationNumber != "" && input.LocationNumber != product.LocationNumber {
		return nil, fmt.Errorf("%w: product %s is stored at %s, not %s",
			ErrValidation, product.ProductNumber, product.LocationNumber, input.LocationNumber)
	}

	event := &model.OverflowEvent{
		ProductNumber:    product.ProductNumber,
		OverflowQuantity: input.Quantity,
		OverflowReason:   reason,
		CreatedAt:        s.now().Truncate(timePrecision),
	}
	if err := s.overflowRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	event.LocationNumber = product.LocationNumber
	event.BoxType = product.BoxType

	s.logger.Info("overflow recorded",
		zap.Uint("id", event.ID),
		zap.String("product_number", event.ProductNumber),
		zap.Int("overflow_quantity", event.OverflowQuantity),
		zap.String("overflow_reason", event.OverflowReason))

	user := ""
	if actor != nil {
		user = actor.DisplayName
	}
	s.notifier.Notify(ws.Event{
		Type:    "overflow",
		Action:  "overflow_recorded",
		Data:    event,
		User:    user,
		Message: fmt.Sprintf("overflow of %d at %s (%s)", event.OverflowQuantity, event.LocationNumber, event.ProductNumber),
	})

	return event, nil
}

func (s *overflowService) SoftDelete(ctx context.Context, productNumber string, createdAt time.Time, actor *model.Actor) error {
	ok, err := s.overflowRepo.SoftDelete(ctx, productNumber, createdAt, s.now().Truncate(timePrecision))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: no active overflow for %s at %s", ErrNotFound, productNumber, createdAt.Format(time.RFC3339Nano))
	}

	s.logger.Info("overflow deleted",
		zap.String("product_number", productNumber),
		zap.Time("created_at", createdAt))

	user := ""
	if actor != nil {
		user = actor.DisplayName
	}
	s.notifier.Notify(ws.Event{
		Type:   "overflow",
		Action: "overflow_deleted",
		Data: map[string]interface{}{
			"product_number": productNumber,
			"created_at":     createdAt,
		},
		User:    user,
		Message: fmt.Sprintf("overflow for %s resolved", productNumber),
	})

	return nil
}

func (s *overflowService) ListActive(ctx context.Context) ([]model.OverflowEvent, error) {
	return s.overflowRepo.FindActive(ctx)
}
