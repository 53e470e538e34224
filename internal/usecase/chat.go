package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Osiris4002/ann-dhan/internal/core/domain"
	"github.com/Osiris4002/ann-dhan/internal/core/port"
)

// ErrEmptyQuestion indicates the chat request carried no question text.
var ErrEmptyQuestion = errors.New("question is required")

// ChatService assembles one prompt from the system instruction, the
// conversation history, and the new question, and forwards it to the
// generative-AI service.
type ChatService struct {
	chats             port.ChatRepository
	generator         port.AnswerGenerator
	historyLimit      int
	systemInstruction string
	log               *zap.Logger
}

// NewChatService constructs a ChatService instance.
func NewChatService(chats port.ChatRepository, generator port.AnswerGenerator, historyLimit int, systemInstruction string, log *zap.Logger) *ChatService {
	if log == nil {
		log = zap.NewNop()
	}
	if historyLimit <= 0 {
		historyLimit = 20
	}
	return &ChatService{
		chats:             chats,
		generator:         generator,
		historyLimit:      historyLimit,
		systemInstruction: systemInstruction,
		log:               log,
	}
}

// AskInput carries one chat question and its context.
type AskInput struct {
	// UserID is the verified identity of the caller, empty for anonymous
	// requests.
	UserID   string
	Question string
	Crop     string
	Language string
	// History is used only for anonymous callers; authenticated callers get
	// their stored history.
	History []domain.Message
}

// Ask generates an answer for the question. For authenticated callers the
// conversation is read from and appended to the document store.
func (s *ChatService) Ask(ctx context.Context, in AskInput) (string, error) {
	question := strings.TrimSpace(in.Question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	history := in.History
	if in.UserID != "" {
		stored, err := s.chats.History(ctx, in.UserID, s.historyLimit)
		if err != nil {
			return "", fmt.Errorf("load chat history: %w", err)
		}
		history = stored
	}

	prompt := s.buildPrompt(question, in.Crop, in.Language, history)

	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}

	if in.UserID != "" {
		now := time.Now().UTC()
		err := s.chats.Append(ctx, in.UserID,
			domain.Message{From: domain.MessageFromUser, Text: question, At: now},
			domain.Message{From: domain.MessageFromBot, Text: answer, At: now.Add(time.Millisecond)},
		)
		if err != nil {
			// The answer was produced; losing a history write is not worth
			// failing the request over.
			s.log.Warn("failed to persist chat history", zap.Error(err))
		}
	}

	return answer, nil
}

func (s *ChatService) buildPrompt(question, crop, language string, history []domain.Message) string {
	var sb strings.Builder
	sb.WriteString(s.systemInstruction)

	if crop = strings.TrimSpace(crop); crop != "" && !strings.EqualFold(crop, "general") {
		sb.WriteString("\nThe farmer grows ")
		sb.WriteString(crop)
		sb.WriteString(".")
	}
	if language = strings.TrimSpace(language); language != "" && !strings.EqualFold(language, "en") {
		sb.WriteString("\nAnswer in the language with code ")
		sb.WriteString(language)
		sb.WriteString(".")
	}

	if len(history) > 0 {
		sb.WriteString("\n\nConversation so far:\n")
		for _, m := range history {
			label := "Farmer"
			if m.From == domain.MessageFromBot {
				label = "Ann Dhan"
			}
			sb.WriteString(label)
			sb.WriteString(": ")
			sb.WriteString(m.Text)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\nFarmer: ")
	sb.WriteString(question)
	sb.WriteString("\nAnn Dhan:")

	return sb.String()
}
