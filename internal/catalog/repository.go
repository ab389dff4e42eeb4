// Package catalog is the product lookup the cart engine resolves product ids
// against. The engine only reads; writes exist for seeding the collection.
package catalog

import (
	"context"
	"errors"

	"github.com/sanchitttt/qkart-backend/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Finder resolves a product id to its catalog record.
// Consumers define this interface, not the MongoDB implementation.
type Finder interface {
	FindByID(ctx context.Context, productID string) (*domain.Product, error)
}

// Browser is the read surface the public product endpoints consume.
type Browser interface {
	Finder
	FindAll(ctx context.Context) ([]domain.Product, error)
}
