// Package auth is the authentication collaborator: registration, login, and
// the access tokens the cart endpoints resolve callers from.
package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sanchitttt/qkart-backend/internal/apperror"
	"github.com/sanchitttt/qkart-backend/internal/domain"
	"github.com/sanchitttt/qkart-backend/internal/user"
)

var ErrInvalidCredentials = errors.New("incorrect email or password")

// CartProvisioner creates the empty cart every new user is paired with.
type CartProvisioner interface {
	CreateForOwner(ctx context.Context, email string) error
}

type Service struct {
	users         user.Repository
	carts         CartProvisioner
	tokens        *TokenManager
	defaultWallet float64
	log           *zap.Logger
}

func NewService(users user.Repository, carts CartProvisioner, tokens *TokenManager, defaultWallet float64, log *zap.Logger) *Service {
	return &Service{
		users:         users,
		carts:         carts,
		tokens:        tokens,
		defaultWallet: defaultWallet,
		log:           log,
	}
}

// Register creates a user with the default wallet balance and the
// address placeholder, provisions their cart, and issues an access token.
// A taken email is a client error, not a success.
func (s *Service) Register(ctx context.Context, name, email, password string) (*domain.User, string, time.Time, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", time.Time{}, apperror.Internal("failed to hash password", err)
	}

	u := &domain.User{
		Name:        name,
		Email:       email,
		Password:    string(hash),
		WalletMoney: s.defaultWallet,
		Address:     domain.AddressNotSet,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, "", time.Time{}, apperror.InvalidRequest("Email already taken")
		}
		return nil, "", time.Time{}, apperror.Internal("failed to create user", err)
	}

	// User and cart are created together; a user without a cart would break
	// the add-before-get asymmetry for everyone else.
	if err := s.carts.CreateForOwner(ctx, email); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.tokens.Generate(u.ID)
	if err != nil {
		return nil, "", time.Time{}, apperror.Internal("failed to issue token", err)
	}

	s.log.Info("user registered", zap.String("email", email))
	return u, token, expiresAt, nil
}

// Login verifies the password and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, apperror.Internal("failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Generate(u.ID)
	if err != nil {
		return nil, "", time.Time{}, apperror.Internal("failed to issue token", err)
	}

	return u, token, expiresAt, nil
}
