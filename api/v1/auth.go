package v1

import (
	"net/http"
	"time"

	"github.com/estatehub-api/dto"
	"github.com/estatehub-api/middleware"
	"github.com/estatehub-api/services"
	"github.com/gin-gonic/gin"
)

// AuthController handles backoffice sessions
type AuthController struct {
	authService  *services.AuthService
	sessionTTL   time.Duration
	cookieSecure bool
}

// NewAuthController creates a new auth controller
func NewAuthController(authService *services.AuthService, sessionTTL time.Duration, cookieSecure bool) *AuthController {
	return &AuthController{
		authService:  authService,
		sessionTTL:   sessionTTL,
		cookieSecure: cookieSecure,
	}
}

// RegisterRoutes registers auth routes
func (ctl *AuthController) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", ctl.Login)
		authGroup.POST("/logout", ctl.Logout)
		// Use auth middleware here only for the /me endpoint
		authGroup.GET("/me", middleware.AuthMiddleware(ctl.authService), ctl.GetCurrentUser)
	}
}

// Login handles user authentication
func (ctl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	authResponse, err := ctl.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Set token as HttpOnly cookie
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.SessionCookie,
		authResponse.Token,
		int(ctl.sessionTTL.Seconds()),
		"/",
		"",
		ctl.cookieSecure,
		true,
	)

	// Also return token in response body for clients that prefer Bearer auth
	respondOK(c, http.StatusOK, authResponse)
}

// GetCurrentUser returns the currently authenticated user's profile
func (ctl *AuthController) GetCurrentUser(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "User not authenticated", "")
		return
	}

	user, err := ctl.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, user)
}
