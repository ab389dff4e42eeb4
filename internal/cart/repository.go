package cart

import (
	"context"
	"errors"

	"github.com/sanchitttt/qkart-backend/internal/domain"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrCartExists   = errors.New("cart already exists for owner")
	// ErrVersionConflict means a Save lost the compare-and-swap: somebody
	// persisted a newer version of the cart after this one was loaded.
	ErrVersionConflict = errors.New("cart version conflict")
)

// Repository is the cart store: one document per owner email, unique at the
// storage layer. Consumers define this interface, not the MongoDB
// implementation.
type Repository interface {
	FindByOwner(ctx context.Context, email string) (*domain.Cart, error)
	Create(ctx context.Context, cart *domain.Cart) error
	// Save persists the items and payment option of a previously loaded
	// cart under an optimistic-concurrency guard on cart.Version.
	Save(ctx context.Context, cart *domain.Cart) error
}
