package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-parser/internal/shared/server/respond"
)

const (
	userIDKey    = "userId"
	userIDHeader = "X-User-Id"
)

// Identity copies the caller's X-User-Id header into the gin context.
// The value is used for attribution only and is never verified.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := strings.TrimSpace(c.GetHeader(userIDHeader)); userID != "" {
			c.Set(userIDKey, userID)
		}
		c.Next()
	}
}

// RequireIdentity rejects requests that carry no caller identity.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserIDFromContext(c) == "" {
			respond.Error(c, http.StatusBadRequest, "missing_identity", "X-User-Id header is required", nil)
			return
		}
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by Identity.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(userIDKey)
}
