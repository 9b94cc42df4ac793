package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/serverup/serverup-be/internal/services"
)

// ProductHandler handles HTTP requests for the product catalog. Mutations
// require a valid token but, unlike messages, carry no ownership check.
type ProductHandler struct {
	service services.ProductServiceProvider
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service services.ProductServiceProvider) *ProductHandler {
	return &ProductHandler{service: service}
}

// Create handles creating a product from an arbitrary field set.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var doc map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	product, err := h.service.Create(doc)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create product")
		writeError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"data":   product,
	})
}

// GetAll handles listing products newest-first, optionally filtered by the
// search query parameter. No authentication required.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetAll(r.URL.Query().Get("search"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch products")
		writeError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   products,
	})
}

// Get handles retrieving a single product by id.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	product, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Error().Err(err).Str("product_id", id).Msg("Failed to fetch product")
		writeError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   product,
	})
}

// Update handles a partial update. Fields absent from the payload are kept;
// id and createdAt are immutable.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	product, err := h.service.Update(id, updates)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Error().Err(err).Str("product_id", id).Msg("Failed to update product")
		writeError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   product,
	})
}

// Delete handles removing a product.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Error().Err(err).Str("product_id", id).Msg("Failed to delete product")
		writeError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Product deleted successfully",
	})
}
