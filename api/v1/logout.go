package v1

import (
	"net/http"

	"github.com/estatehub-api/middleware"
	"github.com/gin-gonic/gin"
)

// Logout handles user logout
func (ctl *AuthController) Logout(c *gin.Context) {
	// Clear the cookie by setting max-age to -1 (expired)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.SessionCookie,
		"",
		-1,
		"/",
		"",
		ctl.cookieSecure,
		true,
	)

	respondOK(c, http.StatusOK, gin.H{"message": "Logged out successfully"})
}
