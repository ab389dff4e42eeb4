package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/sanchitttt/qkart-backend/internal/domain"
)

// CartEngine is the boundary the cart endpoints consume.
// Consumers define this interface, not the engine implementation.
type CartEngine interface {
	GetCart(ctx context.Context, caller domain.User) (*domain.Cart, error)
	AddProduct(ctx context.Context, caller domain.User, productID string, quantity int) (*domain.Cart, error)
	UpdateProduct(ctx context.Context, caller domain.User, productID string, quantity int) (*domain.Cart, error)
	DeleteProduct(ctx context.Context, caller domain.User, productID string) error
	Checkout(ctx context.Context, caller domain.User) error
}

type CartHandler struct {
	engine   CartEngine
	validate *validator.Validate
}

func NewCartHandler(engine CartEngine) *CartHandler {
	return &CartHandler{
		engine:   engine,
		validate: validator.New(),
	}
}

type AddProductRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type UpdateProductRequest struct {
	ProductID string `json:"productId" validate:"required"`
	// Quantity is a pointer so a missing field is distinguishable from an
	// explicit zero; zero routes to delete rather than update.
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Please authenticate")
		return
	}

	cart, err := h.engine.GetCart(r.Context(), caller)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Please authenticate")
		return
	}

	var req AddProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "productId is required and quantity must be a positive integer")
		return
	}

	cart, err := h.engine.AddProduct(r.Context(), caller, req.ProductID, req.Quantity)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, cart)
}

// UpdateProduct handles PUT /v1/cart. Quantity zero is the delete signal:
// the item is removed and the response is 204 with no body.
func (h *CartHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Please authenticate")
		return
	}

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "productId is required and quantity must be a non-negative integer")
		return
	}

	if *req.Quantity == 0 {
		if err := h.engine.DeleteProduct(r.Context(), caller, req.ProductID); err != nil {
			respondAppError(w, err)
			return
		}
		respondJSON(w, http.StatusNoContent, nil)
		return
	}

	cart, err := h.engine.UpdateProduct(r.Context(), caller, req.ProductID, *req.Quantity)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Please authenticate")
		return
	}

	if err := h.engine.Checkout(r.Context(), caller); err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
