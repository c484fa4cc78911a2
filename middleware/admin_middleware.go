package middleware

import (
	"net/http"

	"github.com/estatehub-api/dto"
	"github.com/estatehub-api/models"
	"github.com/estatehub-api/services"
	"github.com/gin-gonic/gin"
)

// AdminMiddleware creates a middleware that ensures the user has admin role
// This middleware should be used after AuthMiddleware
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			abort(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required")
			return
		}

		if roleStr, ok := role.(string); !ok || roleStr != string(models.RoleAdmin) {
			abort(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Admin privileges required")
			return
		}

		c.Next()
	}
}

// RequireAdmin chains authentication and the admin role check
func RequireAdmin(authService *services.AuthService) []gin.HandlerFunc {
	return []gin.HandlerFunc{AuthMiddleware(authService), AdminMiddleware()}
}
