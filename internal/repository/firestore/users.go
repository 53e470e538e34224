package firestore

import (
	"context"
	"fmt"
	"time"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/Osiris4002/ann-dhan/internal/core/domain"
	"github.com/Osiris4002/ann-dhan/internal/repository"
)

const usersCollection = "users"

// UserRepository persists user records in the users collection, documents
// keyed by the identity id.
type UserRepository struct {
	client *fs.Client
}

// NewUserRepository constructs a Firestore-backed user repository.
func NewUserRepository(client *fs.Client) *UserRepository {
	return &UserRepository{client: client}
}

type userDoc struct {
	PhoneNumber string    `firestore:"phoneNumber"`
	PINHash     string    `firestore:"pin_hash"`
	CreatedAt   time.Time `firestore:"created_at"`
}

// GetByPhone looks up at most one record matching the phone number.
func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	iter := r.client.Collection(usersCollection).
		Where("phoneNumber", "==", phone).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user by phone: %w", err)
	}

	var rec userDoc
	if err := doc.DataTo(&rec); err != nil {
		return nil, fmt.Errorf("decode user record: %w", err)
	}

	return &domain.User{
		ID:          doc.Ref.ID,
		PhoneNumber: rec.PhoneNumber,
		PINHash:     rec.PINHash,
		CreatedAt:   rec.CreatedAt,
	}, nil
}

// Create writes a new record under the identity id with a server-assigned
// creation timestamp.
func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	_, err := r.client.Collection(usersCollection).Doc(user.ID).Set(ctx, map[string]interface{}{
		"phoneNumber": user.PhoneNumber,
		"pin_hash":    user.PINHash,
		"created_at":  fs.ServerTimestamp,
	})
	if err != nil {
		return fmt.Errorf("create user record: %w", err)
	}
	return nil
}
