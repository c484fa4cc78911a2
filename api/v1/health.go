package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/estatehub-api/dto"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const serviceName = "estatehub-api"

// HealthCheck reports liveness and database reachability
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		dbStatus := "ok"

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "unreachable"
		}

		c.JSON(status, dto.Envelope{
			Success: status == http.StatusOK,
			Data: gin.H{
				"service":   serviceName,
				"database":  dbStatus,
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			},
		})
	}
}
