package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	portssvc "github.com/oluto/oluto-backend/internal/core/ports/services"
)

// APITokenAuth is a middleware that authenticates requests using API tokens.
// When no token is presented or validation fails it falls through so the JWT
// middleware can take over.
func APITokenAuth(tokenSvc portssvc.APITokenSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isPublicRoute(c.Request.URL.Path) {
			c.Next()
			return
		}

		apiKey := c.GetHeader("x-api-key")
		if apiKey == "" {
			c.Next()
			return
		}

		user, err := tokenSvc.ValidateToken(c.Request.Context(), apiKey)
		if err != nil {
			c.Next()
			return
		}

		// Token is valid, set user ID in context and skip JWT auth
		ctx := context.WithValue(c.Request.Context(), userIDKey, user.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(userIDKey), user.UserID)
		c.Set("authMethod", "api_token")
		c.Next()
	}
}

// isPublicRoute checks if the given path is a public route that doesn't require authentication
func isPublicRoute(path string) bool {
	publicRoutes := []string{
		"/api/v1/auth/login",
		"/api/v1/auth/register",
		"/api/v1/auth/refresh",
		"/health",
	}

	for _, route := range publicRoutes {
		if path == route {
			return true
		}
	}
	return false
}
