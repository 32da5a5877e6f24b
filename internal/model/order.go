package model

import "time"

// OrderStatus is an open set of string tags describing an order's state.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
)

// Order links a user to a purchased product.
// Orders are append-only: this core never updates or deletes them.
type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	ProductID string      `json:"product_id"`
	Status    OrderStatus `json:"status"`
	PaymentID string      `json:"payment_id,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
