package firestore

import (
	"context"
	"fmt"
	"time"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/Osiris4002/ann-dhan/internal/core/domain"
)

const (
	profilesCollection = "profiles"
	chatsCollection    = "chats"
)

// ChatRepository stores conversation turns under profiles/{uid}/chats, the
// layout the mobile client reads.
type ChatRepository struct {
	client *fs.Client
}

// NewChatRepository constructs a Firestore-backed chat repository.
func NewChatRepository(client *fs.Client) *ChatRepository {
	return &ChatRepository{client: client}
}

type chatDoc struct {
	From string `firestore:"from"`
	Text string `firestore:"text"`
	TS   int64  `firestore:"ts"`
}

// History returns up to limit most recent messages in chronological order.
func (r *ChatRepository) History(ctx context.Context, userID string, limit int) ([]domain.Message, error) {
	q := r.chats(userID).OrderBy("ts", fs.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var messages []domain.Message
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read chat history: %w", err)
		}

		var rec chatDoc
		if err := doc.DataTo(&rec); err != nil {
			return nil, fmt.Errorf("decode chat message: %w", err)
		}

		messages = append(messages, domain.Message{
			From: domain.MessageFrom(rec.From),
			Text: rec.Text,
			At:   time.UnixMilli(rec.TS),
		})
	}

	// The query is newest-first; callers expect chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// Append persists messages in order under the user's profile.
func (r *ChatRepository) Append(ctx context.Context, userID string, messages ...domain.Message) error {
	col := r.chats(userID)
	for _, m := range messages {
		at := m.At
		if at.IsZero() {
			at = time.Now()
		}
		if _, _, err := col.Add(ctx, map[string]interface{}{
			"from": string(m.From),
			"text": m.Text,
			"ts":   at.UnixMilli(),
		}); err != nil {
			return fmt.Errorf("append chat message: %w", err)
		}
	}
	return nil
}

func (r *ChatRepository) chats(userID string) *fs.CollectionRef {
	return r.client.Collection(profilesCollection).Doc(userID).Collection(chatsCollection)
}
