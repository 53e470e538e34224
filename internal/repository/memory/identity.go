package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Osiris4002/ann-dhan/internal/core/domain"
	"github.com/Osiris4002/ann-dhan/internal/infra/security"
	"github.com/Osiris4002/ann-dhan/internal/repository"
)

// IdentityProvider is an in-memory stand-in for the identity platform. It
// assigns random identity ids and delegates token work to the development
// token issuer.
type IdentityProvider struct {
	mu      sync.RWMutex
	byPhone map[string]domain.Identity
	tokens  *security.DevTokenIssuer
}

func NewIdentityProvider(tokens *security.DevTokenIssuer) *IdentityProvider {
	return &IdentityProvider{
		byPhone: make(map[string]domain.Identity),
		tokens:  tokens,
	}
}

func (p *IdentityProvider) GetByPhone(_ context.Context, phone string) (domain.Identity, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	identity, ok := p.byPhone[phone]
	if !ok {
		return domain.Identity{}, repository.ErrNotFound
	}
	return identity, nil
}

func (p *IdentityProvider) Create(_ context.Context, phone string) (domain.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.byPhone[phone]; ok {
		return domain.Identity{}, repository.ErrConflict
	}

	identity := domain.Identity{ID: uuid.NewString(), PhoneNumber: phone}
	p.byPhone[phone] = identity
	return identity, nil
}

func (p *IdentityProvider) MintToken(_ context.Context, identityID string) (string, error) {
	return p.tokens.Mint(identityID)
}

func (p *IdentityProvider) VerifyToken(_ context.Context, token string) (string, error) {
	return p.tokens.Verify(token)
}
