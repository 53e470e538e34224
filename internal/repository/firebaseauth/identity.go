package firebaseauth

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"

	"github.com/Osiris4002/ann-dhan/internal/core/domain"
	"github.com/Osiris4002/ann-dhan/internal/repository"
)

// IdentityProvider adapts the Firebase Auth client to the identity platform
// port. Custom tokens minted here are exchanged by clients for ID tokens,
// which VerifyToken accepts on subsequent requests.
type IdentityProvider struct {
	client *auth.Client
}

// NewIdentityProvider constructs the Firebase-backed identity provider.
func NewIdentityProvider(client *auth.Client) *IdentityProvider {
	return &IdentityProvider{client: client}
}

func (p *IdentityProvider) GetByPhone(ctx context.Context, phone string) (domain.Identity, error) {
	u, err := p.client.GetUserByPhoneNumber(ctx, phone)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return domain.Identity{}, repository.ErrNotFound
		}
		return domain.Identity{}, fmt.Errorf("get identity by phone: %w", err)
	}

	return domain.Identity{ID: u.UID, PhoneNumber: u.PhoneNumber}, nil
}

func (p *IdentityProvider) Create(ctx context.Context, phone string) (domain.Identity, error) {
	params := (&auth.UserToCreate{}).PhoneNumber(phone)

	u, err := p.client.CreateUser(ctx, params)
	if err != nil {
		if auth.IsPhoneNumberAlreadyExists(err) {
			return domain.Identity{}, repository.ErrConflict
		}
		return domain.Identity{}, fmt.Errorf("create identity: %w", err)
	}

	return domain.Identity{ID: u.UID, PhoneNumber: phone}, nil
}

func (p *IdentityProvider) MintToken(ctx context.Context, identityID string) (string, error) {
	token, err := p.client.CustomToken(ctx, identityID)
	if err != nil {
		return "", fmt.Errorf("mint custom token: %w", err)
	}
	return token, nil
}

func (p *IdentityProvider) VerifyToken(ctx context.Context, token string) (string, error) {
	decoded, err := p.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("verify id token: %w", err)
	}
	return decoded.UID, nil
}
