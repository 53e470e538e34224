package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Osiris4002/ann-dhan/internal/transport/http/middleware"
)

// MessageResponse is the error payload: a caller-safe message plus a trace ID
// for support. Internal error detail never appears here.
type MessageResponse struct {
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewMessageResponse creates a message response with the trace ID from context.
func NewMessageResponse(c *gin.Context, message string) MessageResponse {
	return MessageResponse{
		Message: message,
		TraceID: middleware.GetTraceID(c),
	}
}

// AuthRequest defines the payload for the authentication endpoint.
type AuthRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	PIN         string `json:"pin"`
}

// TokenResponse carries the bearer token issued on successful authentication.
type TokenResponse struct {
	Token string `json:"token"`
}

// ChatHistoryEntry is one prior conversation turn supplied by an anonymous
// caller.
type ChatHistoryEntry struct {
	From string `json:"from"`
	Text string `json:"text"`
}

// ChatRequest defines the payload for the chat endpoint.
type ChatRequest struct {
	Question string             `json:"question"`
	Crop     string             `json:"crop"`
	Language string             `json:"language"`
	History  []ChatHistoryEntry `json:"history"`
}

// ChatResponse carries the generated answer.
type ChatResponse struct {
	Answer string `json:"answer"`
}

// HealthResponse reports liveness information.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadinessResponse reports the outcome of each readiness check.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
