package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-floor-inventory/internal/cache"
	"go-floor-inventory/internal/model"
	"go-floor-inventory/internal/repository"
	"go-floor-inventory/pkg/paging"

	"gorm.io/gorm"
)

// ProductPageSize matches the product search screen
const ProductPageSize = 10

type CatalogService interface {
	Lookup(ctx context.Context, productNumber string) (*model.Product, error)
	Search(ctx context.Context, query string, page int) (*paging.Page[model.Product], error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	cache       cache.CatalogCache
}

func NewCatalogService(productRepo repository.ProductRepository, c cache.CatalogCache) CatalogService {
	if c == nil {
		c = cache.NewNoopCatalogCache()
	}
	return &catalogService{productRepo: productRepo, cache: c}
}

func (s *catalogService) Lookup(ctx context.Context, productNumber string) (*model.Product, error) {
	productNumber = strings.TrimSpace(productNumber)
	if productNumber == "" {
		return nil, fmt.Errorf("%w: product number is required", ErrValidation)
	}

	if product, ok := s.cache.Get(ctx, productNumber); ok {
		return product, nil
	}

	product, err := s.productRepo.FindByProductNumber(ctx, productNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, productNumber)
		}
		return nil, err
	}

	s.cache.Set(ctx, product)
	return product, nil
}

func (s *catalogService) Search(ctx context.Context, query string, page int) (*paging.Page[model.Product], error) {
	query = strings.TrimSpace(query)
	if page < 0 {
		page = 0
	}

	products, total, err := s.productRepo.Search(ctx, query, paging.Offset(page, ProductPageSize), ProductPageSize)
	if err != nil {
		return nil, err
	}

	// past the last page: serve the last page instead
	totalPages := paging.TotalPages(int(total), ProductPageSize)
	if clamped := paging.ClampPage(page, totalPages); clamped != page {
		page = clamped
		products, total, err = s.productRepo.Search(ctx, query, paging.Offset(page, ProductPageSize), ProductPageSize)
		if err != nil {
			return nil, err
		}
		totalPages = paging.TotalPages(int(total), ProductPageSize)
	}
	if products == nil {
		products = []model.Product{}
	}

	return &paging.Page[model.Product]{
		Items:      products,
		Page:       page,
		PageSize:   ProductPageSize,
		TotalPages: totalPages,
		Total:      int(total),
	}, nil
}
