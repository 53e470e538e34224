package port

import (
	"context"

	"github.com/Osiris4002/ann-dhan/internal/core/domain"
)

// UserRepository exposes persistence behavior for user records in the
// external document store.
type UserRepository interface {
	// GetByPhone returns the single record keyed by the phone number, or
	// repository.ErrNotFound. The lookup is limited to one result.
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	// Create persists a new record under the identity id. The creation
	// timestamp is assigned by the store.
	Create(ctx context.Context, user domain.User) error
}
