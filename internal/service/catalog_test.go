package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/digistore/digistore/internal/model"
)

type fakeProductCache struct {
	mu      sync.Mutex
	byID    map[string]*model.Product
	list    []*model.Product
	hasList bool
}

func newFakeProductCache() *fakeProductCache {
	return &fakeProductCache{byID: make(map[string]*model.Product)}
}

func (f *fakeProductCache) GetProduct(_ context.Context, id string) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, errors.New("cache miss")
}

func (f *fakeProductCache) SetProduct(_ context.Context, product *model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[product.ID] = product
	return nil
}

func (f *fakeProductCache) GetProductList(_ context.Context) ([]*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.hasList {
		return nil, errors.New("cache miss")
	}
	return f.list, nil
}

func (f *fakeProductCache) SetProductList(_ context.Context, products []*model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.list = products
	f.hasList = true
	return nil
}

func (f *fakeProductCache) InvalidateProduct(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	f.list = nil
	f.hasList = false
	return nil
}

func TestCatalogService_CreateAndGet(t *testing.T) {
	t.Parallel()

	svc := NewCatalogService(newFakeProductStore(), newFakeProductCache(), discardLogger())
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, ProductInput{
		Title:       "Web Development Course",
		Description: "Complete guide",
		Price:       79.99,
		DownloadURL: "https://example.com/downloads/webdev.zip",
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if created.ID == "" {
		t.Error("expected generated product id")
	}

	got, err := svc.GetProduct(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if got.Title != "Web Development Course" || got.Price != 79.99 {
		t.Errorf("unexpected product: %+v", got)
	}
}

func TestCatalogService_Validation(t *testing.T) {
	t.Parallel()

	svc := NewCatalogService(newFakeProductStore(), nil, discardLogger())
	ctx := context.Background()

	if _, err := svc.CreateProduct(ctx, ProductInput{Title: "   ", Price: 1}); !errors.Is(err, ErrMissingTitle) {
		t.Errorf("expected ErrMissingTitle, got %v", err)
	}
	if _, err := svc.CreateProduct(ctx, ProductInput{Title: "Guide", Price: -0.01}); !errors.Is(err, ErrNegativePrice) {
		t.Errorf("expected ErrNegativePrice, got %v", err)
	}
}

func TestCatalogService_GetNotFound(t *testing.T) {
	t.Parallel()

	svc := NewCatalogService(newFakeProductStore(), nil, discardLogger())

	_, err := svc.GetProduct(context.Background(), "missing")
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCatalogService_GetServesFromCache(t *testing.T) {
	t.Parallel()

	store := newFakeProductStore()
	cache := newFakeProductCache()
	svc := NewCatalogService(store, cache, discardLogger())
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, ProductInput{Title: "Guide", Price: 9.99})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	// Warm the cache, then remove the row from the store: a cache hit
	// should still serve the product.
	if _, err := svc.GetProduct(ctx, created.ID); err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if err := store.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("DeleteProduct failed: %v", err)
	}

	got, err := svc.GetProduct(ctx, created.ID)
	if err != nil {
		t.Fatalf("expected cache hit, got %v", err)
	}
	if got.Title != "Guide" {
		t.Errorf("unexpected cached product: %+v", got)
	}
}

func TestCatalogService_UpdateInvalidatesCache(t *testing.T) {
	t.Parallel()

	store := newFakeProductStore()
	cache := newFakeProductCache()
	svc := NewCatalogService(store, cache, discardLogger())
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, ProductInput{Title: "Guide", Price: 9.99})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if _, err := svc.GetProduct(ctx, created.ID); err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}

	updated, err := svc.UpdateProduct(ctx, created.ID, ProductInput{Title: "Guide v2", Price: 14.99})
	if err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}
	if updated.Title != "Guide v2" {
		t.Errorf("expected updated title, got %s", updated.Title)
	}

	got, err := svc.GetProduct(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if got.Title != "Guide v2" || got.Price != 14.99 {
		t.Errorf("stale product after update: %+v", got)
	}
}

func TestCatalogService_UpdateNotFound(t *testing.T) {
	t.Parallel()

	svc := NewCatalogService(newFakeProductStore(), nil, discardLogger())

	_, err := svc.UpdateProduct(context.Background(), "missing", ProductInput{Title: "Guide", Price: 1})
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCatalogService_Delete(t *testing.T) {
	t.Parallel()

	svc := NewCatalogService(newFakeProductStore(), newFakeProductCache(), discardLogger())
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, ProductInput{Title: "Guide", Price: 1})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	if err := svc.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("DeleteProduct failed: %v", err)
	}

	if _, err := svc.GetProduct(ctx, created.ID); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound after delete, got %v", err)
	}

	if err := svc.DeleteProduct(ctx, created.ID); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound for double delete, got %v", err)
	}
}
