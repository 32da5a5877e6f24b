package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/digistore/digistore/internal/handler/dto"
	"github.com/digistore/digistore/internal/service"
)

// ProductHandler handles HTTP requests for the product catalog.
// Reads are public; mutations sit behind the admin middleware.
type ProductHandler struct {
	svc    *service.CatalogService
	logger *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(svc *service.CatalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/v1/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProductListResponse(products))
}

// Get handles GET /api/v1/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Product ID is required")
		return
	}

	product, err := h.svc.GetProduct(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProductResponse(product))
}

// Create handles POST /api/v1/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	product, err := h.svc.CreateProduct(r.Context(), productInput(req))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("product created",
		"product_id", product.ID,
		"title", product.Title,
	)

	writeJSON(w, http.StatusCreated, dto.ToProductResponse(product))
}

// Update handles PUT /api/v1/products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Product ID is required")
		return
	}

	var req dto.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	product, err := h.svc.UpdateProduct(r.Context(), id, productInput(req))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("product updated", "product_id", product.ID)

	writeJSON(w, http.StatusOK, dto.ToProductResponse(product))
}

// Delete handles DELETE /api/v1/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Product ID is required")
		return
	}

	if err := h.svc.DeleteProduct(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("product deleted", "product_id", id)

	w.WriteHeader(http.StatusNoContent)
}

func productInput(req dto.ProductRequest) service.ProductInput {
	return service.ProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		DownloadURL: req.DownloadURL,
	}
}

// handleServiceError maps catalog errors to HTTP responses.
func (h *ProductHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
	case errors.Is(err, service.ErrMissingTitle):
		writeError(w, http.StatusBadRequest, "MISSING_TITLE", "Product title is required")
	case errors.Is(err, service.ErrNegativePrice):
		writeError(w, http.StatusBadRequest, "INVALID_PRICE", "Price must be non-negative")
	default:
		h.logger.Error("catalog operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
