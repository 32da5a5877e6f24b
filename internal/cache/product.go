package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/digistore/digistore/internal/model"
)

// Cache key layout and TTLs for the product catalog.
const (
	productKeyPrefix = "product:"
	catalogListKey   = "products:all"

	// DefaultProductTTL is the TTL for cached catalog entries.
	// The catalog changes only through admin mutations, which invalidate
	// eagerly, so the TTL is just a backstop.
	DefaultProductTTL = time.Hour
)

// ErrCacheMiss indicates the key is not present in the cache.
var ErrCacheMiss = errors.New("cache miss")

// GetProduct retrieves a product from cache by id.
// Returns ErrCacheMiss if not found; corrupted entries are treated as misses.
func (c *Cache) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	data, err := c.client.Get(ctx, productKeyPrefix+id).Bytes()
	if err != nil {
		return nil, ErrCacheMiss
	}

	var product model.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, ErrCacheMiss
	}

	return &product, nil
}

// SetProduct stores a product in cache.
func (c *Cache) SetProduct(ctx context.Context, product *model.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}

	return c.client.Set(ctx, productKeyPrefix+product.ID, data, DefaultProductTTL).Err()
}

// GetProductList retrieves the cached catalog listing.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetProductList(ctx context.Context) ([]*model.Product, error) {
	data, err := c.client.Get(ctx, catalogListKey).Bytes()
	if err != nil {
		return nil, ErrCacheMiss
	}

	var products []*model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, ErrCacheMiss
	}

	return products, nil
}

// SetProductList caches the full catalog listing.
func (c *Cache) SetProductList(ctx context.Context, products []*model.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("marshal product list: %w", err)
	}

	return c.client.Set(ctx, catalogListKey, data, DefaultProductTTL).Err()
}

// InvalidateProduct removes a product and the catalog listing from cache.
// Called after any admin mutation.
func (c *Cache) InvalidateProduct(ctx context.Context, id string) error {
	return c.client.Del(ctx, productKeyPrefix+id, catalogListKey).Err()
}
