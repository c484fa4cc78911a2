package utils

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/estatehub-api/dto"
	"github.com/gin-gonic/gin"
)

// CronAuthMiddleware admits scheduler invocations that either present
// "Authorization: Bearer <secret>" or carry trustedHeader set to "true",
// the header a hosting platform adds to its own cron requests. An empty
// secret disables the bearer path.
func CronAuthMiddleware(secret, trustedHeader string) gin.HandlerFunc {
	if secret == "" && trustedHeader == "" {
		Logger.Warn("Cron endpoint has neither CRON_SECRET nor a trusted header, every call will be rejected")
	}

	return func(c *gin.Context) {
		if trustedHeader != "" && strings.EqualFold(c.GetHeader(trustedHeader), "true") {
			c.Next()
			return
		}

		if secret != "" {
			if token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok &&
				subtle.ConstantTimeCompare([]byte(token), []byte(secret)) == 1 {
				c.Next()
				return
			}
		}

		Logger.WithField("client_ip", c.ClientIP()).Warn("Rejected unauthenticated cron call")
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Envelope{
			Success: false,
			Error: &dto.ErrorDetails{
				Code:    dto.ErrorCodeUnauthorized,
				Message: "Cron authentication required",
			},
		})
	}
}
