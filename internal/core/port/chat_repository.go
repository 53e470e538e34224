package port

import (
	"context"

	"github.com/Osiris4002/ann-dhan/internal/core/domain"
)

// ChatRepository persists conversation history under a user's profile.
type ChatRepository interface {
	// History returns up to limit most recent messages in chronological order.
	History(ctx context.Context, userID string, limit int) ([]domain.Message, error)
	Append(ctx context.Context, userID string, messages ...domain.Message) error
}
