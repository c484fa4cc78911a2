package dto

import "github.com/estatehub-api/models"

// PropertyRequest represents the payload for creating or replacing a property
type PropertyRequest struct {
	Title        string                `json:"title" binding:"required,max=200"`
	Description  string                `json:"description"`
	Price        float64               `json:"price" binding:"gte=0"`
	Location     string                `json:"location" binding:"required"`
	Area         string                `json:"area"`
	Bedrooms     int                   `json:"bedrooms" binding:"gte=0"`
	Bathrooms    int                   `json:"bathrooms" binding:"gte=0"`
	PropertyType string                `json:"propertyType" binding:"required"`
	Status       models.PropertyStatus `json:"status" binding:"omitempty,oneof=AVAILABLE SOLD"`
	Size         *float64              `json:"size" binding:"omitempty,gte=0"`
	FrontSize    *float64              `json:"frontSize" binding:"omitempty,gte=0"`
	BackSize     *float64              `json:"backSize" binding:"omitempty,gte=0"`
	Images       []string              `json:"images" binding:"dive,required"`
	OwnerName    *string               `json:"ownerName"`
	OwnerPhone   *string               `json:"ownerPhone" binding:"omitempty,phone"`
}

// PropertyStatusRequest changes only the listing status
type PropertyStatusRequest struct {
	Status models.PropertyStatus `json:"status" binding:"required,oneof=AVAILABLE SOLD"`
}

// PropertyListQuery filters the public property listing
type PropertyListQuery struct {
	PageRequest
	Status string `form:"status"`
}
