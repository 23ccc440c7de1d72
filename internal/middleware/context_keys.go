package middleware

import "github.com/gin-gonic/gin"

// contextKey is the private type for values this package stores in request
// contexts.
type contextKey string

// userIDKey stores the authenticated user's ID. A custom key type keeps it
// from colliding with other context values.
const userIDKey = contextKey("userID")

// GetUserIDFromContext returns the authenticated user ID set by the auth
// middleware, checking the Gin context map first and the request context
// second. The boolean reports whether an ID was present.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		userID, ok := v.(string)
		return userID, ok
	}
	if v := c.Request.Context().Value(userIDKey); v != nil {
		userID, ok := v.(string)
		return userID, ok
	}
	return "", false
}
