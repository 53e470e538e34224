package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Osiris4002/ann-dhan/internal/core/domain"
	"github.com/Osiris4002/ann-dhan/internal/transport/http/middleware"
	"github.com/Osiris4002/ann-dhan/internal/usecase"
)

// ChatHandler exposes the chat forwarding endpoint.
type ChatHandler struct {
	chat *usecase.ChatService
	log  *zap.Logger
}

// NewChatHandler constructs ChatHandler.
func NewChatHandler(chat *usecase.ChatService, log *zap.Logger) *ChatHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ChatHandler{chat: chat, log: log}
}

// RegisterRoutes binds the chat route, applying optional middleware ahead of
// the handler.
func (h *ChatHandler) RegisterRoutes(r *gin.RouterGroup, middlewares ...gin.HandlerFunc) {
	chain := append([]gin.HandlerFunc{}, middlewares...)
	chain = append(chain, h.ask)
	r.POST("/chat", chain...)
}

// Ask godoc
// @Summary Answer a farming question
// @Description Forwards the question, with conversation context, to the generative-AI service and returns the answer.
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body ChatRequest true "Chat request"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} MessageResponse "Missing question"
// @Failure 500 {object} MessageResponse "Generation failure"
// @Router /api/chat [post]
func (h *ChatHandler) ask(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewMessageResponse(c, "Invalid input"))
		return
	}

	in := usecase.AskInput{
		UserID:   middleware.GetUserID(c),
		Question: req.Question,
		Crop:     req.Crop,
		Language: req.Language,
		History:  historyFromRequest(req.History),
	}

	answer, err := h.chat.Ask(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyQuestion) {
			c.JSON(http.StatusBadRequest, NewMessageResponse(c, "Invalid input"))
			return
		}
		h.log.Error("chat generation failed",
			zap.Error(err),
			zap.String("trace_id", middleware.GetTraceID(c)))
		c.JSON(http.StatusInternalServerError, NewMessageResponse(c, "chat service unavailable"))
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Answer: answer})
}

func historyFromRequest(entries []ChatHistoryEntry) []domain.Message {
	if len(entries) == 0 {
		return nil
	}

	messages := make([]domain.Message, 0, len(entries))
	for _, e := range entries {
		from := domain.MessageFromUser
		if e.From == string(domain.MessageFromBot) {
			from = domain.MessageFromBot
		}
		messages = append(messages, domain.Message{From: from, Text: e.Text})
	}
	return messages
}
