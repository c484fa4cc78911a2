package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reminder is the single outstanding follow-up for a lead.
// LeadID is unique: scheduling again for the same lead replaces the row.
type Reminder struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	LeadID      string    `json:"leadId" gorm:"type:uuid;not null;uniqueIndex"`
	ScheduledAt time.Time `json:"scheduledAt" gorm:"not null;index"`
	Sent        bool      `json:"sent" gorm:"not null;default:false;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName sets the table name for Reminder model
func (Reminder) TableName() string {
	return "reminders"
}

// BeforeCreate assigns an ID
func (r *Reminder) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
