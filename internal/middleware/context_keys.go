package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the calling user's ID in the context.
const userIDKey = contextKey("userID")

// userIDHeader is the header the caller identifies itself with. The ledger
// records it in the audit fields of everything it writes.
const userIDHeader = "X-User-ID"

// fallbackUserID is recorded when no caller identity is supplied.
const fallbackUserID = "system"

// IdentityMiddleware reads the caller's user reference from the X-User-ID
// header and stores it in the request context for audit stamping.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(userIDHeader)
		if userID == "" {
			userID = fallbackUserID
		}

		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetUserIDFromContext retrieves the caller's user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}
