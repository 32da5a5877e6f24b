package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/digistore/digistore/internal/model"
)

// ErrOrderNotFound indicates the order id does not resolve to a row.
var ErrOrderNotFound = errors.New("order not found")

// CreateOrder appends a new order row. Orders are never updated or deleted.
// Single-row insert; atomicity comes from the storage engine.
func (r *Repository) CreateOrder(ctx context.Context, order *model.Order) error {
	query := `
		INSERT INTO orders (id, user_id, product_id, status, payment_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		order.ID,
		order.UserID,
		order.ProductID,
		order.Status,
		order.PaymentID,
		order.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// GetOrderByID retrieves an order by its ID.
func (r *Repository) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	query := `
		SELECT id, user_id, product_id, status, payment_id, created_at
		FROM orders
		WHERE id = $1
	`

	var order model.Order
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.ProductID,
		&order.Status,
		&order.PaymentID,
		&order.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &order, nil
}

// ListOrdersByUser retrieves all orders owned by a user, newest first.
func (r *Repository) ListOrdersByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	query := `
		SELECT id, user_id, product_id, status, payment_id, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*model.Order
	for rows.Next() {
		var order model.Order
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.ProductID,
			&order.Status,
			&order.PaymentID,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, &order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}
