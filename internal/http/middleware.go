package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/sanchitttt/qkart-backend/internal/auth"
	"github.com/sanchitttt/qkart-backend/internal/domain"
	"github.com/sanchitttt/qkart-backend/internal/user"
)

type ctxKey int

const (
	callerKey ctxKey = iota
	requestIDKey
)

// CallerFromContext returns the authenticated user the middleware resolved.
func CallerFromContext(ctx context.Context) (domain.User, bool) {
	caller, ok := ctx.Value(callerKey).(domain.User)
	return caller, ok
}

// Authenticator turns a bearer token into the identity context handlers
// trust: the caller's email, wallet balance, and address.
type Authenticator struct {
	tokens *auth.TokenManager
	users  user.Repository
}

func NewAuthenticator(tokens *auth.TokenManager, users user.Repository) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			respondError(w, http.StatusUnauthorized, "Please authenticate")
			return
		}

		userID, err := a.tokens.Verify(tokenString)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Please authenticate")
			return
		}

		caller, err := a.users.FindByID(r.Context(), userID)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Please authenticate")
			return
		}

		ctx := context.WithValue(r.Context(), callerKey, *caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDMiddleware tags each request with an id, honoring one supplied by
// the client.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
