// Package http is the thin transport adapter over the cart engine, the user
// store, and the auth collaborator.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the v1 API.
func NewRouter(authn *Authenticator, authH *AuthHandler, userH *UserHandler, cartH *CartHandler, productH *ProductHandler, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authH.Register)
			r.Post("/login", authH.Login)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productH.ListProducts)
			r.Get("/{productId}", productH.GetProduct)
		})

		r.Group(func(r chi.Router) {
			r.Use(authn.Authenticate)

			r.Route("/users", func(r chi.Router) {
				r.Get("/{userId}", userH.GetUser)
				r.Put("/{userId}", userH.SetAddress)
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartH.GetCart)
				r.Post("/", cartH.AddProduct)
				r.Put("/", cartH.UpdateProduct)
				r.Put("/checkout", cartH.Checkout)
			})
		})
	})

	return r
}
