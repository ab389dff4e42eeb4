package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanchitttt/qkart-backend/internal/apperror"
	"github.com/sanchitttt/qkart-backend/internal/domain"
)

type mockEngine struct {
	cart *domain.Cart
	err  error

	deletedProduct string
	updatedQty     int
	checkedOut     bool
}

func (m *mockEngine) GetCart(context.Context, domain.User) (*domain.Cart, error) {
	return m.cart, m.err
}

func (m *mockEngine) AddProduct(_ context.Context, _ domain.User, productID string, quantity int) (*domain.Cart, error) {
	return m.cart, m.err
}

func (m *mockEngine) UpdateProduct(_ context.Context, _ domain.User, productID string, quantity int) (*domain.Cart, error) {
	m.updatedQty = quantity
	return m.cart, m.err
}

func (m *mockEngine) DeleteProduct(_ context.Context, _ domain.User, productID string) error {
	m.deletedProduct = productID
	return m.err
}

func (m *mockEngine) Checkout(context.Context, domain.User) error {
	m.checkedOut = m.err == nil
	return m.err
}

func withCaller(r *http.Request) *http.Request {
	caller := domain.User{
		ID:    "6010008e6c3477697e8eaba3",
		Email: "crio-user@gmail.com",
	}
	return r.WithContext(context.WithValue(r.Context(), callerKey, caller))
}

func testCartDoc() *domain.Cart {
	return &domain.Cart{
		Email:         "crio-user@gmail.com",
		Items:         []domain.CartItem{{Product: domain.Product{ID: "p1", Cost: 20}, Quantity: 2}},
		PaymentOption: domain.DefaultPaymentOption,
	}
}

func TestGetCart_OK(t *testing.T) {
	h := NewCartHandler(&mockEngine{cart: testCartDoc()})

	req := withCaller(httptest.NewRequest(http.MethodGet, "/v1/cart", nil))
	rec := httptest.NewRecorder()
	h.GetCart(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var cart domain.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	assert.Equal(t, "crio-user@gmail.com", cart.Email)
	assert.Len(t, cart.Items, 1)
}

func TestGetCart_NotFoundMapsTo404(t *testing.T) {
	h := NewCartHandler(&mockEngine{err: apperror.NotFound("User does not have a cart")})

	req := withCaller(httptest.NewRequest(http.MethodGet, "/v1/cart", nil))
	rec := httptest.NewRecorder()
	h.GetCart(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, body.Code)
	assert.Equal(t, "User does not have a cart", body.Message)
}

func TestGetCart_MissingCallerIs401(t *testing.T) {
	h := NewCartHandler(&mockEngine{cart: testCartDoc()})

	rec := httptest.NewRecorder()
	h.GetCart(rec, httptest.NewRequest(http.MethodGet, "/v1/cart", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddProduct_Created(t *testing.T) {
	h := NewCartHandler(&mockEngine{cart: testCartDoc()})

	body := strings.NewReader(`{"productId":"p1","quantity":2}`)
	req := withCaller(httptest.NewRequest(http.MethodPost, "/v1/cart", body))
	rec := httptest.NewRecorder()
	h.AddProduct(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAddProduct_InvalidRequestMapsTo400(t *testing.T) {
	h := NewCartHandler(&mockEngine{err: apperror.InvalidRequest("Product doesn't exist in database")})

	body := strings.NewReader(`{"productId":"nope","quantity":1}`)
	req := withCaller(httptest.NewRequest(http.MethodPost, "/v1/cart", body))
	rec := httptest.NewRecorder()
	h.AddProduct(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Product doesn't exist in database", resp.Message)
}

func TestAddProduct_RejectsZeroQuantity(t *testing.T) {
	engine := &mockEngine{cart: testCartDoc()}
	h := NewCartHandler(engine)

	body := strings.NewReader(`{"productId":"p1","quantity":0}`)
	req := withCaller(httptest.NewRequest(http.MethodPost, "/v1/cart", body))
	rec := httptest.NewRecorder()
	h.AddProduct(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddProduct_RejectsBadJSON(t *testing.T) {
	h := NewCartHandler(&mockEngine{})

	req := withCaller(httptest.NewRequest(http.MethodPost, "/v1/cart", strings.NewReader("{")))
	rec := httptest.NewRecorder()
	h.AddProduct(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProduct_OK(t *testing.T) {
	engine := &mockEngine{cart: testCartDoc()}
	h := NewCartHandler(engine)

	body := strings.NewReader(`{"productId":"p1","quantity":5}`)
	req := withCaller(httptest.NewRequest(http.MethodPut, "/v1/cart", body))
	rec := httptest.NewRecorder()
	h.UpdateProduct(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, engine.updatedQty)
}

func TestUpdateProduct_ZeroQuantityDeletes(t *testing.T) {
	engine := &mockEngine{cart: testCartDoc()}
	h := NewCartHandler(engine)

	body := strings.NewReader(`{"productId":"p1","quantity":0}`)
	req := withCaller(httptest.NewRequest(http.MethodPut, "/v1/cart", body))
	rec := httptest.NewRecorder()
	h.UpdateProduct(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "p1", engine.deletedProduct)
	assert.Equal(t, 0, engine.updatedQty, "update must not run on the zero-quantity path")
}

func TestUpdateProduct_MissingQuantityIs400(t *testing.T) {
	h := NewCartHandler(&mockEngine{cart: testCartDoc()})

	body := strings.NewReader(`{"productId":"p1"}`)
	req := withCaller(httptest.NewRequest(http.MethodPut, "/v1/cart", body))
	rec := httptest.NewRecorder()
	h.UpdateProduct(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckout_NoContent(t *testing.T) {
	engine := &mockEngine{}
	h := NewCartHandler(engine)

	req := withCaller(httptest.NewRequest(http.MethodPut, "/v1/cart/checkout", nil))
	rec := httptest.NewRecorder()
	h.Checkout(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, engine.checkedOut)
}

func TestCheckout_FailureKeepsKind(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"no cart", apperror.NotFound("User does not have a cart"), http.StatusNotFound},
		{"empty cart", apperror.InvalidRequest("No products found in user cart"), http.StatusBadRequest},
		{"no address", apperror.InvalidRequest("No address found"), http.StatusBadRequest},
		{"insufficient funds", apperror.InvalidRequest("Insufficient funds"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewCartHandler(&mockEngine{err: tt.err})

			req := withCaller(httptest.NewRequest(http.MethodPut, "/v1/cart/checkout", nil))
			rec := httptest.NewRecorder()
			h.Checkout(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
