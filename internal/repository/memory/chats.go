package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Osiris4002/ann-dhan/internal/core/domain"
)

// ChatRepository keeps conversation history in memory, per user.
type ChatRepository struct {
	mu     sync.RWMutex
	byUser map[string][]domain.Message
}

func NewChatRepository() *ChatRepository {
	return &ChatRepository{byUser: make(map[string][]domain.Message)}
}

func (r *ChatRepository) History(_ context.Context, userID string, limit int) ([]domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	messages := r.byUser[userID]
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}

	out := make([]domain.Message, len(messages))
	copy(out, messages)
	return out, nil
}

func (r *ChatRepository) Append(_ context.Context, userID string, messages ...domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range messages {
		if m.At.IsZero() {
			m.At = time.Now().UTC()
		}
		r.byUser[userID] = append(r.byUser[userID], m)
	}
	return nil
}
