package v1

import (
	"net/http"

	"github.com/estatehub-api/dto"
	"github.com/estatehub-api/services"
	"github.com/gin-gonic/gin"
)

// ReminderController handles lead follow-up reminders
type ReminderController struct {
	reminderService *services.ReminderService
}

// NewReminderController creates a new reminder controller
func NewReminderController(reminderService *services.ReminderService) *ReminderController {
	return &ReminderController{reminderService: reminderService}
}

// RegisterRoutes registers reminder routes. Reading is public; scheduling
// and cancelling go through requireAdmin.
func (ctl *ReminderController) RegisterRoutes(router *gin.RouterGroup, requireAdmin []gin.HandlerFunc) {
	reminders := router.Group("/reminders")
	{
		reminders.GET("", ctl.GetReminder)
		reminders.GET("/presets", ctl.ListPresets)
	}

	admin := reminders.Group("", requireAdmin...)
	{
		admin.POST("", ctl.CreateReminder)
		admin.DELETE("/:id", ctl.CancelReminder)
	}
}

// CreateReminder schedules, or reschedules, the reminder of a lead
func (ctl *ReminderController) CreateReminder(c *gin.Context) {
	var req dto.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := ctl.reminderService.Schedule(c.Request.Context(), req.LeadID, req.Preset)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetReminder returns the reminder of the lead in ?leadId, or null
func (ctl *ReminderController) GetReminder(c *gin.Context) {
	leadID := c.Query("leadId")
	if leadID == "" {
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidParameter, "leadId is required", "leadId")
		return
	}

	reminder, err := ctl.reminderService.GetByLead(c.Request.Context(), leadID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReminderLookupResponse{Success: true, Reminder: reminder})
}

// CancelReminder deletes a reminder
func (ctl *ReminderController) CancelReminder(c *gin.Context) {
	if err := ctl.reminderService.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListPresets returns the selectable schedule presets
func (ctl *ReminderController) ListPresets(c *gin.Context) {
	respondOK(c, http.StatusOK, services.Presets())
}
