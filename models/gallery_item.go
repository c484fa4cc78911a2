package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GalleryItem is one portfolio image. Items that share CategoryID and
// ProjectName make up a project; there is no separate project row.
type GalleryItem struct {
	ID                string                      `json:"id" gorm:"primaryKey;type:uuid"`
	CategoryID        string                      `json:"categoryId" gorm:"type:uuid;not null;index:idx_gallery_project"`
	Title             string                      `json:"title" gorm:"not null"`
	Description       string                      `json:"description" gorm:"type:text"`
	ImageURL          string                      `json:"imageUrl" gorm:"not null"`
	ImageThumbnailURL *string                     `json:"imageThumbnailUrl"`
	ImageAltText      *string                     `json:"imageAltText"`
	ProjectName       *string                     `json:"projectName" gorm:"index:idx_gallery_project"`
	ProjectLocation   *string                     `json:"projectLocation"`
	CompletionDate    *time.Time                  `json:"completionDate"`
	IsActive          bool                        `json:"isActive" gorm:"not null;index"`
	DisplayOrder      int                         `json:"displayOrder" gorm:"default:0"`
	Tags              datatypes.JSONSlice[string] `json:"tags"`
	CreatedAt         time.Time                   `json:"createdAt"`
	UpdatedAt         time.Time                   `json:"updatedAt"`
}

// TableName sets the table name for GalleryItem model
func (GalleryItem) TableName() string {
	return "gallery_items"
}

// BeforeCreate assigns an ID
func (g *GalleryItem) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.Tags == nil {
		g.Tags = datatypes.JSONSlice[string]{}
	}
	return nil
}

// ImageURLs returns the stored image and thumbnail URLs of the item
func (g *GalleryItem) ImageURLs() []string {
	urls := []string{g.ImageURL}
	if g.ImageThumbnailURL != nil && *g.ImageThumbnailURL != "" {
		urls = append(urls, *g.ImageThumbnailURL)
	}
	return urls
}
