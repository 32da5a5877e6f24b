// Package cache caches the product catalog in Redis.
// The workload is read-mostly: public listing and product reads dominate,
// and the rare admin mutation invalidates eagerly.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Pool sizing for the catalog workload. The cache only ever serves point
// reads and small list payloads, so a modest pool with a short checkout
// timeout is enough; a saturated pool should fail the read quickly and
// let the caller fall through to postgres.
const (
	poolSize        = 8
	minIdleConns    = 1
	poolTimeout     = 2 * time.Second
	connMaxIdleTime = 10 * time.Minute
)

// Cache is the Redis-backed store for catalog entries.
type Cache struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, redisURL string) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.PoolSize = poolSize
	opt.MinIdleConns = minIdleConns
	opt.PoolTimeout = poolTimeout
	opt.ConnMaxIdleTime = connMaxIdleTime

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// Ping checks Redis connectivity. Used by the readiness probe.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the client and its connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Client exposes the underlying Redis client for test helpers.
// Production code should go through the typed catalog methods.
func (c *Cache) Client() *redis.Client {
	return c.client
}
