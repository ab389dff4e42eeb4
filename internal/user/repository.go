// Package user owns the users collection: identity lookup, registration
// writes, the shipping address, and the wallet balance the checkout debits.
package user

import (
	"context"
	"errors"

	"github.com/sanchitttt/qkart-backend/internal/domain"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("email already taken")
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
)

// Repository defines the user store operations the rest of the app needs.
// Consumers define this interface, not the MongoDB implementation.
type Repository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	SetAddress(ctx context.Context, id, address string) error

	// DebitWallet atomically decrements the wallet, guarded so the balance
	// can never go negative. ErrInsufficientFunds when the guard fails.
	DebitWallet(ctx context.Context, email string, amount float64) error
	// CreditWallet is the compensating write for a checkout whose cart
	// persist failed after the debit.
	CreditWallet(ctx context.Context, email string, amount float64) error
}
