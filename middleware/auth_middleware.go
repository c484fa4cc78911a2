package middleware

import (
	"net/http"
	"strings"

	"github.com/estatehub-api/dto"
	"github.com/estatehub-api/services"
	"github.com/gin-gonic/gin"
)

// SessionCookie is the HttpOnly cookie carrying the session token
const SessionCookie = "access_token"

// Context keys set by AuthMiddleware
const (
	ContextUserID = "userId"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// AuthMiddleware authenticates the request from the session cookie or an
// Authorization bearer token and stores the claims in the context
func AuthMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			abort(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required")
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			abort(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Invalid or expired session")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func abort(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(status, dto.Envelope{
		Success: false,
		Error:   &dto.ErrorDetails{Code: code, Message: message},
	})
}
