package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Osiris4002/ann-dhan/internal/core/domain"
	"github.com/Osiris4002/ann-dhan/internal/core/port"
	"github.com/Osiris4002/ann-dhan/internal/infra/logger"
	"github.com/Osiris4002/ann-dhan/internal/repository"
)

// pinLength is the exact credential length accepted by the endpoint.
const pinLength = 6

var (
	// ErrInvalidInput indicates a missing phone number or a malformed PIN.
	ErrInvalidInput = errors.New("invalid phone number or pin")
	// ErrInvalidPIN indicates the PIN does not match the stored hash.
	ErrInvalidPIN = errors.New("invalid pin")
)

// AuthService coordinates the authentication flow against the external
// identity platform and document store. It holds no per-request state.
type AuthService struct {
	users    port.UserRepository
	identity port.IdentityProvider
	hasher   port.PINHasher
	log      *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users port.UserRepository, identity port.IdentityProvider, hasher port.PINHasher, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		users:    users,
		identity: identity,
		hasher:   hasher,
		log:      log,
	}
}

// AuthResult is the outcome of a successful authentication.
type AuthResult struct {
	Token string
	// Created is true when the request registered a new user.
	Created bool
}

// Authenticate looks up the phone number and either verifies the supplied
// PIN against the stored hash (login) or registers a new identity and record
// (signup). Input validation happens before any external call.
func (s *AuthService) Authenticate(ctx context.Context, phoneNumber, pin string) (AuthResult, error) {
	if phoneNumber == "" || len(pin) != pinLength {
		return AuthResult{}, ErrInvalidInput
	}

	user, err := s.users.GetByPhone(ctx, phoneNumber)
	switch {
	case err == nil:
		return s.login(ctx, user, pin)
	case errors.Is(err, repository.ErrNotFound):
		return s.signup(ctx, phoneNumber, pin)
	default:
		return AuthResult{}, fmt.Errorf("lookup user: %w", err)
	}
}

func (s *AuthService) login(ctx context.Context, user *domain.User, pin string) (AuthResult, error) {
	ok, err := s.hasher.Verify(pin, user.PINHash)
	if err != nil {
		return AuthResult{}, fmt.Errorf("verify pin: %w", err)
	}
	if !ok {
		return AuthResult{}, ErrInvalidPIN
	}

	identity, err := s.identity.GetByPhone(ctx, user.PhoneNumber)
	if err != nil {
		return AuthResult{}, fmt.Errorf("resolve identity: %w", err)
	}

	token, err := s.identity.MintToken(ctx, identity.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("mint token: %w", err)
	}

	return AuthResult{Token: token}, nil
}

func (s *AuthService) signup(ctx context.Context, phoneNumber, pin string) (AuthResult, error) {
	pinHash, err := s.hasher.Hash(pin)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash pin: %w", err)
	}

	identity, err := s.identity.Create(ctx, phoneNumber)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// A concurrent signup won the race between the existence check
			// and identity creation. The record exists now; verify instead.
			s.log.Info("identity already exists, falling back to login",
				zap.String("phone", logger.MaskPhone(phoneNumber)))

			user, lookupErr := s.users.GetByPhone(ctx, phoneNumber)
			if lookupErr != nil {
				return AuthResult{}, fmt.Errorf("lookup user after creation conflict: %w", lookupErr)
			}
			return s.login(ctx, user, pin)
		}
		return AuthResult{}, fmt.Errorf("create identity: %w", err)
	}

	record := domain.User{
		ID:          identity.ID,
		PhoneNumber: phoneNumber,
		PINHash:     pinHash,
	}
	if err := s.users.Create(ctx, record); err != nil {
		// The identity exists without a record at this point. Not reconciled
		// here; the raw error reaches the operator log at the boundary.
		return AuthResult{}, fmt.Errorf("create user record: %w", err)
	}

	token, err := s.identity.MintToken(ctx, identity.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("mint token: %w", err)
	}

	return AuthResult{Token: token, Created: true}, nil
}
