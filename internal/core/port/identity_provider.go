package port

import (
	"context"

	"github.com/Osiris4002/ann-dhan/internal/core/domain"
)

// IdentityProvider exposes the external identity platform. Identity creation
// is atomic per phone number on the platform side; a creation attempt for an
// already registered phone number yields repository.ErrConflict.
type IdentityProvider interface {
	GetByPhone(ctx context.Context, phone string) (domain.Identity, error)
	Create(ctx context.Context, phone string) (domain.Identity, error)
	// MintToken issues a signed, time-bounded bearer token scoped to the
	// identity. The token is opaque to this service.
	MintToken(ctx context.Context, identityID string) (string, error)
	// VerifyToken validates a bearer token presented by a client and returns
	// the identity id it is scoped to.
	VerifyToken(ctx context.Context, token string) (string, error)
}
