//go:build integration

package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/digistore/digistore/internal/model"
	"github.com/digistore/digistore/internal/testutil"
)

func TestIntegrationProductCache_RoundTrip(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	product := testutil.NewTestProduct(t, "Cached Guide")
	if err := c.SetProduct(ctx, product); err != nil {
		t.Fatalf("SetProduct failed: %v", err)
	}

	cached, err := c.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if cached.Title != product.Title {
		t.Errorf("Title mismatch: got %q, want %q", cached.Title, product.Title)
	}
	if cached.Price != product.Price {
		t.Errorf("Price mismatch: got %v, want %v", cached.Price, product.Price)
	}
}

func TestIntegrationProductCache_MissAfterInvalidate(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	product := testutil.NewTestProduct(t, "Short Lived")
	if err := c.SetProduct(ctx, product); err != nil {
		t.Fatalf("SetProduct failed: %v", err)
	}
	if err := c.SetProductList(ctx, []*model.Product{product}); err != nil {
		t.Fatalf("SetProductList failed: %v", err)
	}

	if err := c.InvalidateProduct(ctx, product.ID); err != nil {
		t.Fatalf("InvalidateProduct failed: %v", err)
	}

	if _, err := c.GetProduct(ctx, product.ID); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss for product, got: %v", err)
	}
	if _, err := c.GetProductList(ctx); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss for list, got: %v", err)
	}
}

func newCacheTestEnv(t *testing.T) (context.Context, *Cache) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	redisURL := testutil.RequireEnv(t, "REDIS_URL")

	c, err := New(ctx, redisURL)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Close()
	})

	if err := testutil.FlushRedis(ctx, c.Client()); err != nil {
		t.Fatalf("flush redis: %v", err)
	}

	return ctx, c
}
