package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/estatehub-api/dto"
	"github.com/estatehub-api/models"
	"github.com/estatehub-api/repositories"
	"github.com/estatehub-api/utils"
	"github.com/sirupsen/logrus"
)

// LeadService handles inquiries and their follow-up pipeline
type LeadService struct {
	leads      *repositories.LeadRepository
	properties *repositories.PropertyRepository
}

// NewLeadService creates a new lead service instance
func NewLeadService(leads *repositories.LeadRepository, properties *repositories.PropertyRepository) *LeadService {
	return &LeadService{leads: leads, properties: properties}
}

// Create records an inquiry. A referenced property must exist.
func (s *LeadService) Create(ctx context.Context, req dto.CreateLeadRequest) (*models.Lead, error) {
	lead := &models.Lead{
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Purpose: strings.TrimSpace(req.Purpose),
		Notes:   req.Notes,
	}

	if req.PropertyID != nil && *req.PropertyID != "" {
		if err := checkID("property", *req.PropertyID); err != nil {
			return nil, err
		}
		if _, err := s.properties.FindByID(ctx, *req.PropertyID); err != nil {
			return nil, wrapNotFound("property", *req.PropertyID, err)
		}
		lead.PropertyID = req.PropertyID
	}

	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	utils.Logger.WithFields(logrus.Fields{
		"lead_id":     lead.ID,
		"property_id": lead.PropertyID,
	}).Info("Lead captured")
	return lead, nil
}

// Get retrieves a lead with its property and reminder
func (s *LeadService) Get(ctx context.Context, id string) (*models.Lead, error) {
	if err := checkID("lead", id); err != nil {
		return nil, err
	}
	lead, err := s.leads.FindByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound("lead", id, err)
	}
	return lead, nil
}

// List returns a page of leads, newest first
func (s *LeadService) List(ctx context.Context, status string, page, limit int) (dto.ListResponse, error) {
	if status != "" && !models.LeadStatus(status).Valid() {
		return dto.ListResponse{}, invalidParam("status", "unknown lead status %q", status)
	}
	leads, total, err := s.leads.List(ctx, status, page, limit)
	if err != nil {
		return dto.ListResponse{}, err
	}
	if leads == nil {
		leads = []models.Lead{}
	}
	return dto.ListResponse{
		Items:      leads,
		Pagination: dto.NewPagination(total, page, limit),
	}, nil
}

// UpdateStatus moves a lead to another pipeline status
func (s *LeadService) UpdateStatus(ctx context.Context, id string, status models.LeadStatus) (*models.Lead, error) {
	if !status.Valid() {
		return nil, invalidParam("status", "unknown lead status %q", status)
	}
	if err := checkID("lead", id); err != nil {
		return nil, err
	}
	if err := s.leads.UpdateStatus(ctx, id, status); err != nil {
		return nil, wrapNotFound("lead", id, err)
	}
	return s.Get(ctx, id)
}

// Delete removes a lead together with its reminder
func (s *LeadService) Delete(ctx context.Context, id string) error {
	if err := checkID("lead", id); err != nil {
		return err
	}
	if err := s.leads.Delete(ctx, id); err != nil {
		return wrapNotFound("lead", id, err)
	}
	utils.Logger.WithField("lead_id", id).Info("Lead deleted")
	return nil
}
