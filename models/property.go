package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PropertyStatus represents the listing state of a property
type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "AVAILABLE"
	PropertyStatusSold      PropertyStatus = "SOLD"
)

// Valid reports whether s is a known property status
func (s PropertyStatus) Valid() bool {
	return s == PropertyStatusAvailable || s == PropertyStatusSold
}

// Property represents a listed real-estate unit
type Property struct {
	ID           string                      `json:"id" gorm:"primaryKey;type:uuid"`
	Title        string                      `json:"title" gorm:"not null"`
	Description  string                      `json:"description" gorm:"type:text"`
	Price        float64                     `json:"price" gorm:"not null;index"`
	Location     string                      `json:"location" gorm:"not null"`
	Area         string                      `json:"area" gorm:"index"`
	Bedrooms     int                         `json:"bedrooms" gorm:"default:0"`
	Bathrooms    int                         `json:"bathrooms" gorm:"default:0"`
	PropertyType string                      `json:"propertyType" gorm:"index"`
	Status       PropertyStatus              `json:"status" gorm:"type:varchar(16);default:'AVAILABLE';index"`
	Size         *float64                    `json:"size"`
	FrontSize    *float64                    `json:"frontSize"`
	BackSize     *float64                    `json:"backSize"`
	Images       datatypes.JSONSlice[string] `json:"images"`
	OwnerName    *string                     `json:"ownerName"`
	OwnerPhone   *string                     `json:"ownerPhone"`
	CreatedAt    time.Time                   `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
}

// TableName sets the table name for Property model
func (Property) TableName() string {
	return "properties"
}

// BeforeCreate assigns an ID and fills in defaults that must hold for every new row
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = PropertyStatusAvailable
	}
	if p.Images == nil {
		p.Images = datatypes.JSONSlice[string]{}
	}
	p.DeriveSize()
	return nil
}

// DeriveSize sets Size to FrontSize*BackSize when Size is absent and both
// dimensions are known. It is applied on creation only; later edits to the
// dimensions leave Size untouched.
func (p *Property) DeriveSize() {
	if p.Size != nil || p.FrontSize == nil || p.BackSize == nil {
		return
	}
	size := *p.FrontSize * *p.BackSize
	p.Size = &size
}
