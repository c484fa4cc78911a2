package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/estatehub-api/dto"
	"github.com/estatehub-api/services"
	"github.com/estatehub-api/utils"
	"github.com/gin-gonic/gin"
)

// CronController exposes the dispatch cycle to an external scheduler
type CronController struct {
	reminderService *services.ReminderService
	budget          time.Duration
}

// NewCronController creates a new cron controller. Each dispatch is bounded
// by budget.
func NewCronController(reminderService *services.ReminderService, budget time.Duration) *CronController {
	return &CronController{reminderService: reminderService, budget: budget}
}

// RegisterRoutes registers cron routes behind auth
func (ctl *CronController) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	cron := router.Group("/cron", auth)
	{
		cron.GET("/send-reminders", ctl.SendReminders)
	}
}

// SendReminders runs one dispatch cycle. Delivery failures are reported in
// the summary and never turn the response into an error.
func (ctl *CronController) SendReminders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.budget)
	defer cancel()

	summary, err := ctl.reminderService.DispatchDue(ctx, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if summary.Disabled {
		c.JSON(http.StatusOK, dto.DispatchResponse{
			Success:   true,
			Message:   "Reminder notifications are disabled",
			Summary:   summary,
			Timestamp: time.Now().UTC(),
		})
		return
	}

	utils.Logger.WithField("summary", summary).Debug("Cron dispatch completed")
	c.JSON(http.StatusOK, dto.DispatchResponse{
		Success:   true,
		Summary:   summary,
		Timestamp: time.Now().UTC(),
	})
}
