package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeadStatus represents where a lead sits in the follow-up pipeline
type LeadStatus string

const (
	LeadStatusNew        LeadStatus = "NEW"
	LeadStatusContacted  LeadStatus = "CONTACTED"
	LeadStatusInterested LeadStatus = "INTERESTED"
	LeadStatusConverted  LeadStatus = "CONVERTED"
	LeadStatusLost       LeadStatus = "LOST"
)

// Valid reports whether s is a known lead status
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusInterested, LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}

// Lead is an inquiry captured from the public site or entered by an admin
type Lead struct {
	ID         string     `json:"id" gorm:"primaryKey;type:uuid"`
	Name       string     `json:"name" gorm:"not null"`
	Phone      string     `json:"phone" gorm:"not null"`
	Purpose    string     `json:"purpose" gorm:"not null"`
	Notes      *string    `json:"notes" gorm:"type:text"`
	Status     LeadStatus `json:"status" gorm:"type:varchar(16);default:'NEW';index"`
	PropertyID *string    `json:"propertyId" gorm:"type:uuid;index"`
	CreatedAt  time.Time  `json:"createdAt" gorm:"index"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	// Relations
	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID;constraint:OnDelete:SET NULL"`
	Reminder *Reminder `json:"reminder,omitempty" gorm:"foreignKey:LeadID;constraint:OnDelete:CASCADE"`
}

// TableName sets the table name for Lead model
func (Lead) TableName() string {
	return "leads"
}

// BeforeCreate assigns an ID and the initial pipeline status
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Status == "" {
		l.Status = LeadStatusNew
	}
	return nil
}
