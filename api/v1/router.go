package v1

import (
	"time"

	"github.com/estatehub-api/lib/storage"
	"github.com/estatehub-api/middleware"
	"github.com/estatehub-api/services"
	"github.com/estatehub-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies carries everything the v1 routes need
type Dependencies struct {
	DB         *gorm.DB
	Auth       *services.AuthService
	Search     *services.SearchService
	Reminders  *services.ReminderService
	Properties *services.PropertyService
	Leads      *services.LeadService
	Gallery    *services.GalleryService
	Storage    storage.Provider

	SessionTTL        time.Duration
	CookieSecure      bool
	CronSecret        string
	CronTrustedHeader string
	CronBudget        time.Duration
	UploadMaxBytes    int64
	LeadRatePerMinute int
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, deps Dependencies) {
	// Health check endpoint
	router.GET("/health", HealthCheck(deps.DB))

	requireAdmin := middleware.RequireAdmin(deps.Auth)
	admin := router.Group("/admin", requireAdmin...)

	NewAuthController(deps.Auth, deps.SessionTTL, deps.CookieSecure).RegisterRoutes(router)
	NewSearchController(deps.Search).RegisterRoutes(router)
	NewReminderController(deps.Reminders).RegisterRoutes(router, requireAdmin)
	NewCronController(deps.Reminders, deps.CronBudget).
		RegisterRoutes(router, utils.CronAuthMiddleware(deps.CronSecret, deps.CronTrustedHeader))
	NewPropertyController(deps.Properties).RegisterRoutes(router, admin)

	limiter := middleware.NewIPRateLimiter(deps.LeadRatePerMinute)
	NewLeadController(deps.Leads).RegisterRoutes(router, admin, middleware.RateLimitMiddleware(limiter))

	NewGalleryController(deps.Gallery).RegisterRoutes(router, admin)
	NewUploadController(deps.Storage, deps.UploadMaxBytes).RegisterRoutes(admin)
}
