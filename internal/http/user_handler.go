package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/sanchitttt/qkart-backend/internal/user"
)

type UserHandler struct {
	users    user.Repository
	validate *validator.Validate
}

func NewUserHandler(users user.Repository) *UserHandler {
	return &UserHandler{
		users:    users,
		validate: validator.New(),
	}
}

type SetAddressRequest struct {
	Address string `json:"address" validate:"required,min=20"`
}

// GetUser returns the caller's own record, or just the address when the
// "q=address" query parameter is present. Requests for another user's id
// get exactly one response: 403.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Please authenticate")
		return
	}

	userID := chi.URLParam(r, "userId")
	if userID != caller.ID {
		respondError(w, http.StatusForbidden, "User not found")
		return
	}

	u, err := h.users.FindByID(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	if r.URL.Query().Get("q") == "address" {
		respondJSON(w, http.StatusOK, map[string]string{"address": u.Address})
		return
	}

	respondJSON(w, http.StatusOK, u)
}

func (h *UserHandler) SetAddress(w http.ResponseWriter, r *http.Request) {
	caller, ok := CallerFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Please authenticate")
		return
	}

	userID := chi.URLParam(r, "userId")
	if userID != caller.ID {
		respondError(w, http.StatusForbidden, "User not found")
		return
	}

	var req SetAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "address must be at least 20 characters")
		return
	}

	if err := h.users.SetAddress(r.Context(), userID, req.Address); err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"address": req.Address,
		"email":   caller.Email,
	})
}
