package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Osiris4002/ann-dhan/internal/infra/logger"
	"github.com/Osiris4002/ann-dhan/internal/transport/http/middleware"
	"github.com/Osiris4002/ann-dhan/internal/usecase"
)

// AuthHandler exposes the authentication endpoint.
type AuthHandler struct {
	auth *usecase.AuthService
	log  *zap.Logger
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *usecase.AuthService, log *zap.Logger) *AuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{auth: auth, log: log}
}

// RegisterRoutes binds the authentication route.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth", h.authenticate)
}

// Authenticate godoc
// @Summary Authenticate a farmer by phone number and PIN
// @Description Verifies the PIN for a registered phone number, or registers a new account and returns a bearer token either way.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body AuthRequest true "Authentication request"
// @Success 200 {object} TokenResponse "Existing account authenticated"
// @Success 201 {object} TokenResponse "New account registered"
// @Failure 400 {object} MessageResponse "Missing phone number or malformed PIN"
// @Failure 401 {object} MessageResponse "PIN mismatch"
// @Failure 500 {object} MessageResponse "Downstream failure"
// @Router /api/auth [post]
func (h *AuthHandler) authenticate(c *gin.Context) {
	var req AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewMessageResponse(c, "Invalid input"))
		return
	}

	result, err := h.auth.Authenticate(c.Request.Context(), strings.TrimSpace(req.PhoneNumber), req.PIN)
	if err != nil {
		h.respondAuthError(c, req.PhoneNumber, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, TokenResponse{Token: result.Token})
}

// respondAuthError is the single error boundary for the endpoint: expected
// outcomes map to their statuses, everything else is logged with the raw
// error and surfaced as a generic failure.
func (h *AuthHandler) respondAuthError(c *gin.Context, phoneNumber string, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, NewMessageResponse(c, "Invalid input"))
	case errors.Is(err, usecase.ErrInvalidPIN):
		c.JSON(http.StatusUnauthorized, NewMessageResponse(c, "Invalid PIN"))
	default:
		h.log.Error("authentication failed",
			zap.Error(err),
			zap.String("phone", logger.MaskPhone(phoneNumber)),
			zap.String("trace_id", middleware.GetTraceID(c)))
		c.JSON(http.StatusInternalServerError, NewMessageResponse(c, "Authentication failed"))
	}
}
