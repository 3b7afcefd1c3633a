package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/robomart/toystore/internal/domain"
	"github.com/robomart/toystore/internal/repository"
	apperrors "github.com/robomart/toystore/pkg/errors"
	"github.com/robomart/toystore/pkg/pagination"
)

// CatalogService serves the read-only product catalog.
type CatalogService struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.ProductRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: logger,
	}
}

// ListProducts returns a page of catalog products, optionally filtered by a
// search term matched against name and description.
func (s *CatalogService) ListProducts(ctx context.Context, search string, page pagination.Params) ([]domain.Product, int, error) {
	filter := repository.ProductFilter{
		Limit:  page.PerPage,
		Offset: page.Offset,
	}
	if search != "" {
		filter.Search = &search
	}

	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}

	return products, total, nil
}

// GetProduct resolves a product by ID or slug. A UUID looks up by ID, any
// other value looks up by slug.
func (s *CatalogService) GetProduct(ctx context.Context, idOrSlug string) (*domain.Product, error) {
	if idOrSlug == "" {
		return nil, apperrors.InvalidInput("product identifier is required")
	}

	if _, err := uuid.Parse(idOrSlug); err == nil {
		return s.repo.GetByID(ctx, idOrSlug)
	}
	return s.repo.GetBySlug(ctx, idOrSlug)
}
