package dto

import "github.com/estatehub-api/models"

// CreateLeadRequest is submitted by the public inquiry form
type CreateLeadRequest struct {
	Name       string  `json:"name" binding:"required,max=120"`
	Phone      string  `json:"phone" binding:"required,phone"`
	Purpose    string  `json:"purpose" binding:"required,max=120"`
	Notes      *string `json:"notes" binding:"omitempty,max=2000"`
	PropertyID *string `json:"propertyId" binding:"omitempty,uuid"`
}

// LeadStatusRequest moves a lead through the pipeline
type LeadStatusRequest struct {
	Status models.LeadStatus `json:"status" binding:"required,oneof=NEW CONTACTED INTERESTED CONVERTED LOST"`
}

// LeadListQuery filters the admin lead listing
type LeadListQuery struct {
	PageRequest
	Status string `form:"status" binding:"omitempty,oneof=NEW CONTACTED INTERESTED CONVERTED LOST"`
}
