package cache

import (
	"context"
	"errors"

	"github.com/sanchitttt/qkart-backend/internal/domain"
)

// CartCache sits in front of the cart store for reads. Every cart mutation
// invalidates the owner's entry.
type CartCache interface {
	Get(ctx context.Context, email string) (*domain.Cart, error)
	Set(ctx context.Context, email string, cart *domain.Cart) error
	Delete(ctx context.Context, email string) error
}

var ErrCacheMiss = errors.New("cache miss")
