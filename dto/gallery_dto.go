package dto

import (
	"time"

	"github.com/estatehub-api/models"
)

// CategoryRequest represents the payload for creating or replacing a service category
type CategoryRequest struct {
	Name            string  `json:"name" binding:"required,max=120"`
	Slug            string  `json:"slug" binding:"omitempty,max=140"`
	Description     string  `json:"description"`
	DisplayOrder    int     `json:"displayOrder"`
	IsActive        *bool   `json:"isActive"`
	MetaTitle       *string `json:"metaTitle"`
	MetaDescription *string `json:"metaDescription"`
	CoverImageURL   *string `json:"coverImageUrl"`
}

// GalleryItemRequest represents the payload for creating or replacing a gallery item
type GalleryItemRequest struct {
	CategoryID        string     `json:"categoryId" binding:"required,uuid"`
	Title             string     `json:"title" binding:"required,max=200"`
	Description       string     `json:"description"`
	ImageURL          string     `json:"imageUrl" binding:"required"`
	ImageThumbnailURL *string    `json:"imageThumbnailUrl"`
	ImageAltText      *string    `json:"imageAltText"`
	ProjectName       *string    `json:"projectName" binding:"omitempty,max=200"`
	ProjectLocation   *string    `json:"projectLocation"`
	CompletionDate    *time.Time `json:"completionDate"`
	IsActive          *bool      `json:"isActive"`
	DisplayOrder      int        `json:"displayOrder"`
	Tags              []string   `json:"tags"`
}

// RenameProjectRequest renames every item of a project at once
type RenameProjectRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required,max=200"`
}

// ProjectSummary is a project derived from the gallery items sharing its name
type ProjectSummary struct {
	Name           string     `json:"name"`
	Location       *string    `json:"location"`
	CompletionDate *time.Time `json:"completionDate"`
	ItemCount      int        `json:"itemCount"`
	ActiveCount    int        `json:"activeCount"`
	CoverImageURL  string     `json:"coverImageUrl"`
}

// ServiceDetail is the public page of one service category
type ServiceDetail struct {
	Category models.ServiceCategory `json:"category"`
	Items    []models.GalleryItem   `json:"items"`
	Projects []ProjectSummary       `json:"projects"`
}
