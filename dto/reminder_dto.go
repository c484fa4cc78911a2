package dto

import (
	"time"

	"github.com/estatehub-api/models"
)

// CreateReminderRequest schedules or reschedules the reminder of a lead
type CreateReminderRequest struct {
	LeadID string `json:"leadId" binding:"required"`
	Preset string `json:"preset" binding:"required"`
}

// ReminderScheduledResponse is returned after a reminder is (re)scheduled
type ReminderScheduledResponse struct {
	Success       bool             `json:"success"`
	Reminder      *models.Reminder `json:"reminder"`
	ScheduledFor  time.Time        `json:"scheduledFor"`
	FormattedTime string           `json:"formattedTime"`
}

// ReminderLookupResponse returns the current reminder of a lead, or null
type ReminderLookupResponse struct {
	Success  bool             `json:"success"`
	Reminder *models.Reminder `json:"reminder"`
}

// PresetOption describes one selectable preset
type PresetOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// DispatchSummary counts the outcome of one dispatch cycle
type DispatchSummary struct {
	Processed int `json:"processed"`
	Sent      int `json:"sent"`
	Failed    int `json:"failed"`
	// Disabled is set when the cycle was skipped because dispatch is off
	Disabled bool `json:"-"`
}

// DispatchResponse is returned by the cron trigger
type DispatchResponse struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message,omitempty"`
	Summary   DispatchSummary `json:"summary"`
	Timestamp time.Time       `json:"timestamp"`
}
