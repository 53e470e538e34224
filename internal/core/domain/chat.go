package domain

import "time"

// MessageFrom identifies the author of a chat message.
type MessageFrom string

const (
	MessageFromUser MessageFrom = "user"
	MessageFromBot  MessageFrom = "bot"
)

// Message is one turn of a conversation, stored under the caller's profile in
// the document store.
type Message struct {
	From MessageFrom
	Text string
	At   time.Time
}
