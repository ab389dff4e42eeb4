package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sanchitttt/qkart-backend/internal/catalog"
)

// ProductHandler serves the public, unauthenticated product endpoints.
type ProductHandler struct {
	products catalog.Browser
}

func NewProductHandler(products catalog.Browser) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.FindAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	product, err := h.products.FindByID(r.Context(), productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondJSON(w, http.StatusOK, product)
}
