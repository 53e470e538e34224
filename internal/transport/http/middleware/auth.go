package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Osiris4002/ann-dhan/internal/core/port"
)

// OptionalAuth resolves the caller's identity from a bearer token when one is
// presented. The chat endpoint serves anonymous callers too, so an absent or
// unverifiable token does not abort the request; it just leaves the identity
// unset.
func OptionalAuth(identity port.IdentityProvider, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Next()
			return
		}

		token := strings.TrimSpace(parts[1])
		if token == "" {
			c.Next()
			return
		}

		userID, err := identity.VerifyToken(c.Request.Context(), token)
		if err != nil {
			log.Debug("bearer token did not verify", zap.Error(err))
			c.Next()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// GetUserID returns the verified identity id for the request, if any.
func GetUserID(c *gin.Context) string {
	if raw, exists := c.Get(UserIDKey); exists {
		if id, ok := raw.(string); ok {
			return id
		}
	}
	return ""
}
