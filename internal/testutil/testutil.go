// Package testutil provides helpers for integration tests that need a real
// PostgreSQL or Redis instance. Tests using these helpers skip themselves
// when the corresponding environment variables are not set.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/digistore/digistore/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 730731

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// TruncateAll clears every application table between test runs.
// Orders go first to satisfy foreign keys.
func TruncateAll(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, "TRUNCATE orders, products, users"); err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser creates a test user with sensible defaults.
func NewTestUser(t testing.TB, email string) *model.User {
	t.Helper()
	now := time.Now().UTC()
	return &model.User{
		ID:           UniqueID("user"),
		Email:        email,
		Name:         "Test User",
		PasswordHash: "$2a$12$0000000000000000000000000000000000000000000000000000",
		CreatedAt:    now,
	}
}

// NewTestProduct creates a test product with sensible defaults.
func NewTestProduct(t testing.TB, title string) *model.Product {
	t.Helper()
	now := time.Now().UTC()
	return &model.Product{
		ID:          UniqueID("product"),
		Title:       title,
		Description: "Test product: " + title,
		Price:       19.99,
		ImageURL:    "https://example.com/images/test.png",
		DownloadURL: "https://example.com/downloads/test.zip",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewTestOrder creates a completed test order for the given user and product.
func NewTestOrder(t testing.TB, userID, productID string) *model.Order {
	t.Helper()
	return &model.Order{
		ID:        UniqueID("order"),
		UserID:    userID,
		ProductID: productID,
		Status:    model.OrderStatusCompleted,
		PaymentID: "test-payment-id",
		CreatedAt: time.Now().UTC(),
	}
}

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
