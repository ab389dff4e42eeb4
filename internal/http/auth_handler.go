package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/sanchitttt/qkart-backend/internal/auth"
	"github.com/sanchitttt/qkart-backend/internal/domain"
)

type AuthHandler struct {
	service  *auth.Service
	validate *validator.Validate
}

func NewAuthHandler(service *auth.Service) *AuthHandler {
	v := validator.New()
	// Passwords need at least one letter and one digit on top of the
	// length floor.
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		var hasLetter, hasDigit bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsLetter(r):
				hasLetter = true
			case unicode.IsDigit(r):
				hasDigit = true
			}
		}
		return hasLetter && hasDigit
	})

	return &AuthHandler{
		service:  service,
		validate: v,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type authResponse struct {
	User   *domain.User `json:"user"`
	Tokens struct {
		Access tokenResponse `json:"access"`
	} `json:"tokens"`
}

func newAuthResponse(u *domain.User, token string, expires time.Time) authResponse {
	var resp authResponse
	resp.User = u
	resp.Tokens.Access = tokenResponse{Token: token, Expires: expires}
	return resp
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "name, a valid email, and a password of at least 8 characters with a letter and a number are required")
		return
	}

	u, token, expires, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, newAuthResponse(u, token, expires))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "a valid email and a password are required")
		return
	}

	u, token, expires, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Incorrect email or password")
			return
		}
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newAuthResponse(u, token, expires))
}
