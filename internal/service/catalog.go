package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/digistore/digistore/internal/model"
	"github.com/digistore/digistore/internal/repository"
)

// Catalog errors.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrMissingTitle    = errors.New("product title is required")
	ErrNegativePrice   = errors.New("product price must be non-negative")
)

// ProductStore is the storage collaborator for the product catalog.
type ProductStore interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context) ([]*model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

// ProductCache is a read-through cache for catalog lookups.
// All methods are best-effort: errors degrade to database reads.
type ProductCache interface {
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	SetProduct(ctx context.Context, product *model.Product) error
	GetProductList(ctx context.Context) ([]*model.Product, error)
	SetProductList(ctx context.Context, products []*model.Product) error
	InvalidateProduct(ctx context.Context, id string) error
}

// CatalogService handles product catalog business logic.
// Mutations are admin-only; the capability check happens at the
// middleware boundary, not here.
type CatalogService struct {
	store  ProductStore
	cache  ProductCache
	logger *slog.Logger
}

// NewCatalogService constructs a CatalogService. Cache may be nil.
func NewCatalogService(store ProductStore, cache ProductCache, logger *slog.Logger) *CatalogService {
	return &CatalogService{store: store, cache: cache, logger: logger}
}

// ProductInput defines the mutable fields of a product.
type ProductInput struct {
	Title       string
	Description string
	Price       float64
	ImageURL    string
	DownloadURL string
}

func (in *ProductInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrMissingTitle
	}
	if in.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// CreateProduct adds a new product to the catalog.
func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*model.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &model.Product{
		ID:          ulid.Make().String(),
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		DownloadURL: input.DownloadURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.invalidate(ctx, product.ID)

	return product, nil
}

// GetProduct retrieves a product by id, consulting the cache first.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	if s.cache != nil {
		if product, err := s.cache.GetProduct(ctx, id); err == nil {
			return product, nil
		}
	}

	product, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetProduct(ctx, product); err != nil {
			s.logger.Debug("product cache write failed", "error", err)
		}
	}

	return product, nil
}

// ListProducts retrieves the catalog, newest first, consulting the cache first.
func (s *CatalogService) ListProducts(ctx context.Context) ([]*model.Product, error) {
	if s.cache != nil {
		if products, err := s.cache.GetProductList(ctx); err == nil {
			return products, nil
		}
	}

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetProductList(ctx, products); err != nil {
			s.logger.Debug("product cache write failed", "error", err)
		}
	}

	return products, nil
}

// UpdateProduct replaces the mutable fields of a product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input ProductInput) (*model.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	existing, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	existing.Title = input.Title
	existing.Description = input.Description
	existing.Price = input.Price
	existing.ImageURL = input.ImageURL
	existing.DownloadURL = input.DownloadURL
	existing.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateProduct(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.invalidate(ctx, id)

	return existing, nil
}

// DeleteProduct removes a product from the catalog.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("delete product: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// invalidate drops cache entries after a mutation. Best-effort.
func (s *CatalogService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateProduct(ctx, id); err != nil {
		s.logger.Warn("product cache invalidation failed", "product_id", id, "error", err)
	}
}
