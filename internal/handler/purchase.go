package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/digistore/digistore/internal/auth"
	"github.com/digistore/digistore/internal/handler/dto"
	"github.com/digistore/digistore/internal/service"
)

// emailWarning is surfaced when the order committed but the confirmation
// email did not go out. The purchase itself still succeeded.
const emailWarning = "order recorded but the confirmation email could not be sent"

// PurchaseHandler handles checkout and purchase endpoints.
// Both sit behind the session middleware.
type PurchaseHandler struct {
	svc    *service.PurchaseService
	logger *slog.Logger
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(svc *service.PurchaseService, logger *slog.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		svc:    svc,
		logger: logger,
	}
}

// Checkout handles POST /api/v1/checkout.
// Records a pending order and returns the mock checkout URL.
func (h *PurchaseHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	var req dto.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	result, err := h.svc.Checkout(r.Context(), identity, req.ProductID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CheckoutResponse{
		URL:     result.CheckoutURL,
		OrderID: result.Order.ID,
		Status:  string(result.Order.Status),
	})
}

// Purchase handles POST /api/v1/purchase-email.
// Records a completed order and dispatches the confirmation email.
// A failed send is a warning on a 200 response, never a failure.
func (h *PurchaseHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustIdentityFromContext(r.Context())

	var req dto.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	result, err := h.svc.Purchase(r.Context(), identity, req.ProductID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	response := dto.PurchaseResponse{
		Success:   true,
		OrderID:   result.Order.ID,
		EmailSent: result.EmailSent,
	}
	if !result.EmailSent {
		response.Warning = emailWarning
	}

	writeJSON(w, http.StatusOK, response)
}

// handleServiceError maps purchase errors to HTTP responses.
func (h *PurchaseHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
	case errors.Is(err, service.ErrMailNotConfigured):
		writeError(w, http.StatusServiceUnavailable, "MAIL_NOT_CONFIGURED", "The mail service is not properly configured")
	default:
		h.logger.Error("purchase failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
