// Package cart holds the cart store and the cart engine: the get/add/update/
// delete/checkout operations over a user's cart and wallet.
package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sanchitttt/qkart-backend/internal/apperror"
	"github.com/sanchitttt/qkart-backend/internal/cache"
	"github.com/sanchitttt/qkart-backend/internal/catalog"
	"github.com/sanchitttt/qkart-backend/internal/domain"
	"github.com/sanchitttt/qkart-backend/internal/user"
)

// UserStore is the slice of the user repository the engine needs at
// checkout time.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	DebitWallet(ctx context.Context, email string, amount float64) error
	CreditWallet(ctx context.Context, email string, amount float64) error
}

type Service struct {
	repo    Repository
	catalog catalog.Finder
	users   UserStore
	cache   cache.CartCache
	log     *zap.Logger
	sfg     singleflight.Group // Prevents cache stampede
	locks   ownerLocks
}

func NewService(repo Repository, finder catalog.Finder, users UserStore, c cache.CartCache, log *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		catalog: finder,
		users:   users,
		cache:   c,
		log:     log,
	}
}

// ownerLocks serializes mutations per owner so concurrent read-modify-write
// cycles on the same cart/wallet pair never interleave.
type ownerLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func (l *ownerLocks) lock(owner string) *sync.Mutex {
	l.mu.Lock()
	if l.m == nil {
		l.m = make(map[string]*sync.Mutex)
	}
	ol, ok := l.m[owner]
	if !ok {
		ol = &sync.Mutex{}
		l.m[owner] = ol
	}
	l.mu.Unlock()

	ol.Lock()
	return ol
}

// GetCart returns the caller's cart. Unlike AddProduct it never creates one:
// a missing cart is a NotFound failure.
func (s *Service) GetCart(ctx context.Context, caller domain.User) (*domain.Cart, error) {
	// Singleflight collapses concurrent cache misses for the same owner
	// into one store read.
	v, err, _ := s.sfg.Do(caller.Email, func() (interface{}, error) {
		cached, err := s.cache.Get(ctx, caller.Email)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn("cart cache get failed", zap.Error(err))
		}

		loaded, err := s.repo.FindByOwner(ctx, caller.Email)
		if err != nil {
			if errors.Is(err, ErrCartNotFound) {
				return nil, apperror.NotFound("User does not have a cart")
			}
			return nil, apperror.Internal("failed to load cart", err)
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := s.cache.Set(ctx, caller.Email, loaded); err != nil {
				s.log.Warn("cart cache set failed", zap.Error(err))
			}
		}()

		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// CreateForOwner provisions the empty cart that registration pairs with a
// new user.
func (s *Service) CreateForOwner(ctx context.Context, email string) error {
	cart := &domain.Cart{
		Email:         email,
		Items:         []domain.CartItem{},
		PaymentOption: domain.DefaultPaymentOption,
	}
	if err := s.repo.Create(ctx, cart); err != nil {
		if errors.Is(err, ErrCartExists) {
			return nil
		}
		return apperror.Internal("failed to create cart", err)
	}
	return nil
}

// AddProduct appends a snapshot of the product to the caller's cart. A
// missing cart is created on the way (self-healing); a product already in
// the cart must go through UpdateProduct instead.
func (s *Service) AddProduct(ctx context.Context, caller domain.User, productID string, quantity int) (*domain.Cart, error) {
	defer s.locks.lock(caller.Email).Unlock()

	userCart, err := s.repo.FindByOwner(ctx, caller.Email)
	if err != nil {
		if !errors.Is(err, ErrCartNotFound) {
			return nil, apperror.Internal("failed to load cart", err)
		}
		userCart = &domain.Cart{
			Email:         caller.Email,
			Items:         []domain.CartItem{},
			PaymentOption: domain.DefaultPaymentOption,
		}
		if err := s.repo.Create(ctx, userCart); err != nil {
			return nil, apperror.Internal("failed to create cart", err)
		}
	}

	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, apperror.InvalidRequest("Product doesn't exist in database")
		}
		return nil, apperror.Internal("failed to look up product", err)
	}

	if userCart.ItemFor(productID) >= 0 {
		return nil, apperror.InvalidRequest("Product already in cart. Use the cart sidebar to update or remove product from cart")
	}

	// The product is copied by value: the item keeps the cost and name it
	// was added at, whatever the catalog does later.
	userCart.Items = append(userCart.Items, domain.CartItem{
		Product:  *product,
		Quantity: quantity,
	})

	if err := s.repo.Save(ctx, userCart); err != nil {
		return nil, apperror.Internal("failed to save cart", err)
	}
	s.invalidateCache(caller.Email)

	return userCart, nil
}

// UpdateProduct sets the quantity of a product already in the cart. It is
// deliberately asymmetric with AddProduct: no cart and no pre-existing item
// are both caller errors here.
func (s *Service) UpdateProduct(ctx context.Context, caller domain.User, productID string, quantity int) (*domain.Cart, error) {
	defer s.locks.lock(caller.Email).Unlock()

	userCart, err := s.repo.FindByOwner(ctx, caller.Email)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return nil, apperror.InvalidRequest("User does not have a cart. Use POST to create cart and add a product")
		}
		return nil, apperror.Internal("failed to load cart", err)
	}

	if _, err := s.catalog.FindByID(ctx, productID); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, apperror.InvalidRequest("Product doesn't exist in database")
		}
		return nil, apperror.Internal("failed to look up product", err)
	}

	idx := userCart.ItemFor(productID)
	if idx < 0 {
		return nil, apperror.InvalidRequest("Product not in cart")
	}

	userCart.Items[idx].Quantity = quantity

	if err := s.repo.Save(ctx, userCart); err != nil {
		return nil, apperror.Internal("failed to save cart", err)
	}
	s.invalidateCache(caller.Email)

	return userCart, nil
}

// DeleteProduct removes exactly one item, keeping the order of the rest.
func (s *Service) DeleteProduct(ctx context.Context, caller domain.User, productID string) error {
	defer s.locks.lock(caller.Email).Unlock()

	userCart, err := s.repo.FindByOwner(ctx, caller.Email)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return apperror.InvalidRequest("User does not have a cart")
		}
		return apperror.Internal("failed to load cart", err)
	}

	idx := userCart.ItemFor(productID)
	if idx < 0 {
		return apperror.InvalidRequest("Product not in cart")
	}

	userCart.Items = append(userCart.Items[:idx], userCart.Items[idx+1:]...)

	if err := s.repo.Save(ctx, userCart); err != nil {
		return apperror.Internal("failed to save cart", err)
	}
	s.invalidateCache(caller.Email)

	return nil
}

// Checkout prices the cart, debits the owner's wallet, and clears the items.
// The wallet debit and the cart clear must land as a unit: the debit is a
// guarded atomic decrement, and if the cart save then fails the debit is
// compensated before the failure is reported. Retrying a failed checkout
// reproduces the same decision.
func (s *Service) Checkout(ctx context.Context, caller domain.User) error {
	defer s.locks.lock(caller.Email).Unlock()

	userCart, err := s.repo.FindByOwner(ctx, caller.Email)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return apperror.NotFound("User does not have a cart")
		}
		return apperror.Internal("failed to load cart", err)
	}

	if len(userCart.Items) == 0 {
		return apperror.InvalidRequest("No products found in user cart")
	}

	// Re-read the user so the address and wallet checks see current state,
	// not the identity snapshot captured at authentication time.
	owner, err := s.users.FindByEmail(ctx, caller.Email)
	if err != nil {
		return apperror.Internal("failed to load user", err)
	}

	if !owner.HasSetNonDefaultAddress() {
		return apperror.InvalidRequest("No address found")
	}

	total := userCart.Total()
	if owner.WalletMoney-total < 0 {
		return apperror.InvalidRequest("Insufficient funds")
	}

	if err := s.users.DebitWallet(ctx, caller.Email, total); err != nil {
		if errors.Is(err, user.ErrInsufficientFunds) {
			return apperror.InvalidRequest("Insufficient funds")
		}
		return apperror.Internal("failed to debit wallet", err)
	}

	userCart.Items = []domain.CartItem{}
	if err := s.repo.Save(ctx, userCart); err != nil {
		// Wallet already debited; put the money back so a clean retry of
		// the whole checkout stays correct.
		if creditErr := s.users.CreditWallet(ctx, caller.Email, total); creditErr != nil {
			s.log.Error("checkout compensation failed, wallet and cart inconsistent",
				zap.String("email", caller.Email),
				zap.Float64("amount", total),
				zap.Error(creditErr))
		}
		return apperror.Internal("failed to clear cart", err)
	}
	s.invalidateCache(caller.Email)

	return nil
}

func (s *Service) invalidateCache(email string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, email); err != nil {
		s.log.Warn("cart cache invalidate failed", zap.Error(err))
	}
}
