package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Osiris4002/ann-dhan/internal/core/domain"
	"github.com/Osiris4002/ann-dhan/internal/repository"
)

// UserRepository is an in-memory user store used in development when no
// Firebase credentials are configured, and by tests.
type UserRepository struct {
	mu      sync.RWMutex
	byPhone map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byPhone: make(map[string]domain.User)}
}

func (r *UserRepository) GetByPhone(_ context.Context, phone string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byPhone[phone]
	if !ok {
		return nil, repository.ErrNotFound
	}

	copy := user
	return &copy, nil
}

func (r *UserRepository) Create(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.byPhone[user.PhoneNumber] = user
	return nil
}
