package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanchitttt/qkart-backend/internal/domain"
	"github.com/sanchitttt/qkart-backend/internal/user"
)

type mockUserRepo struct {
	byID    map[string]*domain.User
	setErr  error
	address string
}

func newMockUserRepo(users ...*domain.User) *mockUserRepo {
	m := &mockUserRepo{byID: make(map[string]*domain.User)}
	for _, u := range users {
		m.byID[u.ID] = u
	}
	return m
}

func (m *mockUserRepo) Create(context.Context, *domain.User) error { return nil }

func (m *mockUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepo) SetAddress(_ context.Context, id, address string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.address = address
	return nil
}

func (m *mockUserRepo) DebitWallet(context.Context, string, float64) error { return nil }
func (m *mockUserRepo) CreditWallet(context.Context, string, float64) error { return nil }

func routeRequest(r *http.Request, userID string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userId", userID)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func testUserDoc() *domain.User {
	return &domain.User{
		ID:          "6010008e6c3477697e8eaba3",
		Name:        "crio-user",
		Email:       "crio-user@gmail.com",
		WalletMoney: 500,
		Address:     domain.AddressNotSet,
	}
}

func TestGetUser_ReturnsOwnRecord(t *testing.T) {
	u := testUserDoc()
	h := NewUserHandler(newMockUserRepo(u))

	req := withCaller(routeRequest(httptest.NewRequest(http.MethodGet, "/v1/users/"+u.ID, nil), u.ID))
	rec := httptest.NewRecorder()
	h.GetUser(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var got domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, float64(500), got.WalletMoney)
}

func TestGetUser_AddressQueryReturnsOnlyAddress(t *testing.T) {
	u := testUserDoc()
	u.Address = "123 Main Street, Springfield, USA"
	h := NewUserHandler(newMockUserRepo(u))

	req := withCaller(routeRequest(httptest.NewRequest(http.MethodGet, "/v1/users/"+u.ID+"?q=address", nil), u.ID))
	rec := httptest.NewRecorder()
	h.GetUser(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, map[string]string{"address": u.Address}, got)
}

func TestGetUser_OtherUserIDIsSingle403(t *testing.T) {
	u := testUserDoc()
	h := NewUserHandler(newMockUserRepo(u))

	req := withCaller(routeRequest(httptest.NewRequest(http.MethodGet, "/v1/users/someone-else", nil), "someone-else"))
	rec := httptest.NewRecorder()
	h.GetUser(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	// Exactly one JSON document in the body.
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "User not found", resp.Message)
}

func TestSetAddress_OK(t *testing.T) {
	u := testUserDoc()
	repo := newMockUserRepo(u)
	h := NewUserHandler(repo)

	body := strings.NewReader(`{"address":"123 Main Street, Springfield, USA"}`)
	req := withCaller(routeRequest(httptest.NewRequest(http.MethodPut, "/v1/users/"+u.ID, body), u.ID))
	rec := httptest.NewRecorder()
	h.SetAddress(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "123 Main Street, Springfield, USA", repo.address)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, u.Email, resp["email"])
}

func TestSetAddress_TooShortIs400(t *testing.T) {
	u := testUserDoc()
	h := NewUserHandler(newMockUserRepo(u))

	body := strings.NewReader(`{"address":"short"}`)
	req := withCaller(routeRequest(httptest.NewRequest(http.MethodPut, "/v1/users/"+u.ID, body), u.ID))
	rec := httptest.NewRecorder()
	h.SetAddress(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetAddress_OtherUserIDIs403(t *testing.T) {
	u := testUserDoc()
	h := NewUserHandler(newMockUserRepo(u))

	body := strings.NewReader(`{"address":"123 Main Street, Springfield, USA"}`)
	req := withCaller(routeRequest(httptest.NewRequest(http.MethodPut, "/v1/users/other", body), "other"))
	rec := httptest.NewRecorder()
	h.SetAddress(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
