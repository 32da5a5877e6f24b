package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/digistore/digistore/internal/model"
)

func testProduct() *model.Product {
	return &model.Product{
		ID:          "01HV4QPRODUCT",
		Title:       "Digital Marketing Guide",
		Price:       29.99,
		DownloadURL: "https://example.com/downloads/marketing-guide.pdf",
	}
}

func buyer() *model.Identity {
	return &model.Identity{UserID: "01HV4QBUYER", Email: "a@x.com", Name: "Ada"}
}

func TestPurchaseService_Checkout(t *testing.T) {
	t.Parallel()

	orders := &fakeOrderStore{}
	mailer := &fakeMailer{configured: true}
	svc := NewPurchaseService(orders, newFakeProductStore(testProduct()), mailer, "http://localhost:8080/", discardLogger())

	result, err := svc.Checkout(context.Background(), buyer(), "01HV4QPRODUCT")
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	if result.Order.Status != model.OrderStatusPending {
		t.Errorf("expected pending order, got %s", result.Order.Status)
	}
	if result.Order.PaymentID != "mock-payment-id" {
		t.Errorf("expected mock payment id, got %s", result.Order.PaymentID)
	}
	if want := "http://localhost:8080/checkout/success?product_id=01HV4QPRODUCT"; result.CheckoutURL != want {
		t.Errorf("expected checkout URL %s, got %s", want, result.CheckoutURL)
	}
	if orders.count() != 1 {
		t.Errorf("expected exactly one order row, got %d", orders.count())
	}
}

func TestPurchaseService_CheckoutProductNotFound(t *testing.T) {
	t.Parallel()

	orders := &fakeOrderStore{}
	svc := NewPurchaseService(orders, newFakeProductStore(), &fakeMailer{configured: true}, "http://localhost:8080", discardLogger())

	_, err := svc.Checkout(context.Background(), buyer(), "missing")
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if orders.count() != 0 {
		t.Errorf("expected no order rows, got %d", orders.count())
	}
}

func TestPurchaseService_PurchaseSuccess(t *testing.T) {
	t.Parallel()

	orders := &fakeOrderStore{}
	mailer := &fakeMailer{configured: true}
	svc := NewPurchaseService(orders, newFakeProductStore(testProduct()), mailer, "http://localhost:8080", discardLogger())

	result, err := svc.Purchase(context.Background(), buyer(), "01HV4QPRODUCT")
	if err != nil {
		t.Fatalf("Purchase failed: %v", err)
	}

	if !result.EmailSent {
		t.Error("expected confirmation email to be sent")
	}
	if result.Order.Status != model.OrderStatusCompleted {
		t.Errorf("expected completed order, got %s", result.Order.Status)
	}
	if orders.count() != 1 {
		t.Errorf("expected exactly one order row, got %d", orders.count())
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("expected one message sent, got %d", len(mailer.sent))
	}
	msg := mailer.sent[0]
	if !strings.Contains(msg.HTMLBody, "$29.99") {
		t.Error("expected price rendered as $29.99 in confirmation")
	}
	if !strings.Contains(msg.HTMLBody, result.Order.ID) {
		t.Error("expected order id embedded verbatim in confirmation")
	}
}

func TestPurchaseService_PurchaseMailFailureIsWarning(t *testing.T) {
	t.Parallel()

	orders := &fakeOrderStore{}
	mailer := &fakeMailer{configured: true, sendErr: errors.New("provider returned status 500")}
	svc := NewPurchaseService(orders, newFakeProductStore(testProduct()), mailer, "http://localhost:8080", discardLogger())

	result, err := svc.Purchase(context.Background(), buyer(), "01HV4QPRODUCT")
	if err != nil {
		t.Fatalf("mail failure must not fail the purchase, got %v", err)
	}

	if result.EmailSent {
		t.Error("expected EmailSent=false when the provider fails")
	}
	if result.Order == nil || result.Order.ID == "" {
		t.Fatal("expected order id present despite mail failure")
	}
	if orders.count() != 1 {
		t.Errorf("expected exactly one order row, got %d", orders.count())
	}
}

func TestPurchaseService_PurchaseStorageFailureIsFatal(t *testing.T) {
	t.Parallel()

	orders := &fakeOrderStore{createErr: errStorageDown}
	mailer := &fakeMailer{configured: true}
	svc := NewPurchaseService(orders, newFakeProductStore(testProduct()), mailer, "http://localhost:8080", discardLogger())

	_, err := svc.Purchase(context.Background(), buyer(), "01HV4QPRODUCT")
	if err == nil {
		t.Fatal("expected error when order insert fails")
	}
	if orders.count() != 0 {
		t.Errorf("expected zero order rows, got %d", orders.count())
	}
	if len(mailer.sent) != 0 {
		t.Error("no confirmation should be sent when recording fails")
	}
}

func TestPurchaseService_PurchaseMailNotConfigured(t *testing.T) {
	t.Parallel()

	orders := &fakeOrderStore{}
	mailer := &fakeMailer{configured: false}
	svc := NewPurchaseService(orders, newFakeProductStore(testProduct()), mailer, "http://localhost:8080", discardLogger())

	_, err := svc.Purchase(context.Background(), buyer(), "01HV4QPRODUCT")
	if !errors.Is(err, ErrMailNotConfigured) {
		t.Fatalf("expected ErrMailNotConfigured, got %v", err)
	}
	if orders.count() != 0 {
		t.Errorf("misconfigured mail must fail before recording, got %d order rows", orders.count())
	}
}

func TestPurchaseService_PurchaseProductNotFound(t *testing.T) {
	t.Parallel()

	orders := &fakeOrderStore{}
	svc := NewPurchaseService(orders, newFakeProductStore(), &fakeMailer{configured: true}, "http://localhost:8080", discardLogger())

	_, err := svc.Purchase(context.Background(), buyer(), "missing")
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if orders.count() != 0 {
		t.Errorf("expected no order rows, got %d", orders.count())
	}
}
