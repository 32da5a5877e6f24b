package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/digistore/digistore/internal/mail"
	"github.com/digistore/digistore/internal/model"
	"github.com/digistore/digistore/internal/repository"
)

// ErrMailNotConfigured indicates the mail provider credential is absent or
// malformed. Purchase fails fast with this before recording anything.
var ErrMailNotConfigured = errors.New("mail provider not configured")

// mockPaymentID marks orders created by the mock checkout.
// Real gateway integration would replace this with the provider's id.
const mockPaymentID = "mock-payment-id"

// OrderStore is the storage collaborator for order records.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *model.Order) error
}

// ProductGetter resolves product ids. Satisfied by the repository.
type ProductGetter interface {
	GetProductByID(ctx context.Context, id string) (*model.Product, error)
}

// PurchaseService sequences order recording and notification dispatch.
//
// Per purchase attempt: validate product -> record order -> notify.
// Storage failure is fatal and leaves no partial state (single insert);
// notification failure is a warning, never a rollback trigger. No step
// is ever retried.
type PurchaseService struct {
	orders   OrderStore
	products ProductGetter
	mailer   mail.Mailer
	baseURL  string
	logger   *slog.Logger
}

// NewPurchaseService constructs a PurchaseService.
func NewPurchaseService(orders OrderStore, products ProductGetter, mailer mail.Mailer, baseURL string, logger *slog.Logger) *PurchaseService {
	return &PurchaseService{
		orders:   orders,
		products: products,
		mailer:   mailer,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		logger:   logger,
	}
}

// CheckoutResult is the outcome of a mock checkout.
type CheckoutResult struct {
	Order       *model.Order
	CheckoutURL string
}

// Checkout validates the product and records a pending order with a mock
// payment reference, returning the mock checkout URL.
func (s *PurchaseService) Checkout(ctx context.Context, identity *model.Identity, productID string) (*CheckoutResult, error) {
	product, err := s.resolveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	order, err := s.record(ctx, identity, product, model.OrderStatusPending, mockPaymentID)
	if err != nil {
		return nil, err
	}

	checkoutURL := fmt.Sprintf("%s/checkout/success?product_id=%s", s.baseURL, url.QueryEscape(product.ID))

	s.logger.Info("checkout created",
		"order_id", order.ID,
		"product_id", product.ID,
		"user_id", identity.UserID,
	)

	return &CheckoutResult{Order: order, CheckoutURL: checkoutURL}, nil
}

// PurchaseResult is the outcome of a completed purchase attempt.
// EmailSent=false with a non-nil Order is the partial-success state:
// the order committed but the confirmation did not go out.
type PurchaseResult struct {
	Order     *model.Order
	EmailSent bool
}

// Purchase records a completed order and dispatches the confirmation email.
//
// The mail credential is checked before recording so a misconfigured
// deployment fails fast without creating orders. Once the order insert
// commits, the purchase has happened: a failed send downgrades the result
// to a warning, and the caller still receives the order id.
func (s *PurchaseService) Purchase(ctx context.Context, identity *model.Identity, productID string) (*PurchaseResult, error) {
	if !s.mailer.Configured() {
		return nil, ErrMailNotConfigured
	}

	product, err := s.resolveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	order, err := s.record(ctx, identity, product, model.OrderStatusCompleted, "")
	if err != nil {
		return nil, err
	}

	result := &PurchaseResult{Order: order}

	msg, err := mail.PurchaseConfirmation(identity, order, product)
	if err != nil {
		s.logger.Warn("purchase confirmation compose failed",
			"order_id", order.ID,
			"error", err,
		)
		return result, nil
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.Warn("purchase confirmation send failed",
			"order_id", order.ID,
			"recipient", identity.Email,
			"error", err,
		)
		return result, nil
	}

	result.EmailSent = true

	s.logger.Info("purchase completed",
		"order_id", order.ID,
		"product_id", product.ID,
		"user_id", identity.UserID,
	)

	return result, nil
}

func (s *PurchaseService) resolveProduct(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("resolve product: %w", err)
	}
	return product, nil
}

func (s *PurchaseService) record(ctx context.Context, identity *model.Identity, product *model.Product, status model.OrderStatus, paymentID string) (*model.Order, error) {
	order := &model.Order{
		ID:        ulid.Make().String(),
		UserID:    identity.UserID,
		ProductID: product.ID,
		Status:    status,
		PaymentID: paymentID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("record order: %w", err)
	}

	return order, nil
}
