package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/estatehub-api/dto"
	"github.com/estatehub-api/lib/storage"
	"github.com/estatehub-api/models"
	"github.com/estatehub-api/repositories"
	"github.com/estatehub-api/utils"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PropertyService handles business logic for property listings
type PropertyService struct {
	repo    *repositories.PropertyRepository
	janitor *storage.Janitor
}

// NewPropertyService creates a new property service instance
func NewPropertyService(repo *repositories.PropertyRepository, janitor *storage.Janitor) *PropertyService {
	return &PropertyService{repo: repo, janitor: janitor}
}

// List returns a page of properties, newest first. An empty status or ALL
// lists every status.
func (s *PropertyService) List(ctx context.Context, status string, page, limit int) (dto.ListResponse, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if status == dto.StatusAll {
		status = ""
	}
	if status != "" && !models.PropertyStatus(status).Valid() {
		return dto.ListResponse{}, invalidParam("status", "status must be AVAILABLE, SOLD or ALL")
	}

	properties, total, err := s.repo.List(ctx, status, page, limit)
	if err != nil {
		return dto.ListResponse{}, err
	}
	return dto.ListResponse{
		Items:      nonNil(properties),
		Pagination: dto.NewPagination(total, page, limit),
	}, nil
}

// Get retrieves a property by ID
func (s *PropertyService) Get(ctx context.Context, id string) (*models.Property, error) {
	if err := checkID("property", id); err != nil {
		return nil, err
	}
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound("property", id, err)
	}
	return property, nil
}

// Create stores a new property. Size is derived from the frontage
// dimensions when it is omitted.
func (s *PropertyService) Create(ctx context.Context, req dto.PropertyRequest) (*models.Property, error) {
	property := &models.Property{}
	applyPropertyRequest(property, req)
	property.Size = req.Size

	if err := s.repo.Create(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	utils.Logger.WithField("property_id", property.ID).Info("Property created")
	return property, nil
}

// Update replaces the editable fields of a property. Size keeps its stored
// value unless the request sets it. Images dropped from the list are
// deleted from storage in the background.
func (s *PropertyService) Update(ctx context.Context, id string, req dto.PropertyRequest) (*models.Property, error) {
	property, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	removed := removedImages(property.Images, req.Images)
	applyPropertyRequest(property, req)
	if req.Size != nil {
		property.Size = req.Size
	}

	if err := s.repo.Save(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}

	s.janitor.Purge(removed...)
	return property, nil
}

// UpdateStatus marks a property as available or sold
func (s *PropertyService) UpdateStatus(ctx context.Context, id string, status models.PropertyStatus) (*models.Property, error) {
	if !status.Valid() {
		return nil, invalidParam("status", "status must be AVAILABLE or SOLD")
	}
	if err := checkID("property", id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, wrapNotFound("property", id, err)
	}
	return s.Get(ctx, id)
}

// Delete removes a property and then its images from storage. Leads that
// referenced it keep existing without a property.
func (s *PropertyService) Delete(ctx context.Context, id string) error {
	property, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrapNotFound("property", id, err)
	}

	s.janitor.Purge(property.Images...)
	utils.Logger.WithField("property_id", id).Info("Property deleted")
	return nil
}

func applyPropertyRequest(p *models.Property, req dto.PropertyRequest) {
	p.Title = strings.TrimSpace(req.Title)
	p.Description = req.Description
	p.Price = req.Price
	p.Location = strings.TrimSpace(req.Location)
	p.Area = strings.TrimSpace(req.Area)
	p.Bedrooms = req.Bedrooms
	p.Bathrooms = req.Bathrooms
	p.PropertyType = strings.TrimSpace(req.PropertyType)
	if req.Status != "" {
		p.Status = req.Status
	}
	p.FrontSize = req.FrontSize
	p.BackSize = req.BackSize
	p.Images = datatypes.JSONSlice[string](append([]string{}, req.Images...))
	p.OwnerName = req.OwnerName
	p.OwnerPhone = req.OwnerPhone
}

// removedImages returns the URLs of before that are not in after
func removedImages(before, after []string) []string {
	keep := make(map[string]struct{}, len(after))
	for _, url := range after {
		keep[url] = struct{}{}
	}
	var removed []string
	for _, url := range before {
		if _, ok := keep[url]; !ok {
			removed = append(removed, url)
		}
	}
	return removed
}

// checkID rejects IDs that cannot exist so they never reach a uuid column
func checkID(kind, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return nil
}

func wrapNotFound(kind, id string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return err
}
