// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/digistore/digistore/internal/model"
)

// SignupRequest represents the request body for creating an account.
type SignupRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for authenticating.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// IdentityResponse represents the authenticated user in API responses.
// Never carries the password hash.
type IdentityResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	IsAdmin bool   `json:"is_admin"`
}

// LoginResponse is returned on successful authentication. The same token
// is also set as the session cookie.
type LoginResponse struct {
	User  IdentityResponse `json:"user"`
	Token string           `json:"token"`
}

// ProductRequest represents the request body for creating or updating a product.
type ProductRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
	DownloadURL string  `json:"download_url,omitempty"`
}

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url"`
	DownloadURL string    `json:"download_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CheckoutRequest represents the request body for starting a checkout.
type CheckoutRequest struct {
	ProductID string `json:"product_id"`
}

// CheckoutResponse is returned on a successful mock checkout.
type CheckoutResponse struct {
	URL     string `json:"url"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// PurchaseRequest represents the request body for completing a purchase.
type PurchaseRequest struct {
	ProductID string `json:"product_id"`
}

// PurchaseResponse is returned when a purchase is recorded. Warning is set
// when the order committed but the confirmation email did not go out.
type PurchaseResponse struct {
	Success   bool   `json:"success"`
	OrderID   string `json:"order_id"`
	EmailSent bool   `json:"email_sent"`
	Warning   string `json:"warning,omitempty"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToIdentityResponse converts an Identity to its response form.
func ToIdentityResponse(identity *model.Identity) IdentityResponse {
	return IdentityResponse{
		ID:      identity.UserID,
		Email:   identity.Email,
		Name:    identity.Name,
		IsAdmin: identity.IsAdmin,
	}
}

// ToProductResponse converts a Product model to ProductResponse DTO.
func ToProductResponse(product *model.Product) *ProductResponse {
	return &ProductResponse{
		ID:          product.ID,
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
		DownloadURL: product.DownloadURL,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// ToProductListResponse converts a slice of Product models.
func ToProductListResponse(products []*model.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i, product := range products {
		responses[i] = *ToProductResponse(product)
	}
	return responses
}
