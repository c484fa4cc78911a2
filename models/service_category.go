package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceCategory groups portfolio gallery items under one offered service
type ServiceCategory struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid"`
	Name            string    `json:"name" gorm:"not null"`
	Slug            string    `json:"slug" gorm:"not null;uniqueIndex"`
	Description     string    `json:"description" gorm:"type:text"`
	DisplayOrder    int       `json:"displayOrder" gorm:"default:0;index"`
	IsActive        bool      `json:"isActive" gorm:"not null;index"`
	MetaTitle       *string   `json:"metaTitle"`
	MetaDescription *string   `json:"metaDescription"`
	CoverImageURL   *string   `json:"coverImageUrl"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	// Relations
	Items []GalleryItem `json:"items,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// TableName sets the table name for ServiceCategory model
func (ServiceCategory) TableName() string {
	return "service_categories"
}

// BeforeCreate assigns an ID
func (c *ServiceCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
