package repositories

import (
	"context"

	"github.com/estatehub-api/models"
	"gorm.io/gorm"
)

// LeadRepository handles database operations for leads
type LeadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new lead repository instance
func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// Create inserts a new lead into the database
func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	return translate(r.db.WithContext(ctx).Create(lead).Error)
}

// FindByID retrieves a lead with its property and reminder
func (r *LeadRepository) FindByID(ctx context.Context, id string) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("Reminder").
		First(&lead, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &lead, nil
}

// Exists checks if a lead exists
func (r *LeadRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Lead{}).Where("id = ?", id).Count(&count).Error
	return count > 0, translate(err)
}

// List retrieves leads newest first, optionally filtered by status
func (r *LeadRepository) List(ctx context.Context, status string, page, limit int) ([]models.Lead, int64, error) {
	var leads []models.Lead
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Lead{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	err := db.Preload("Property").
		Preload("Reminder").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset(page, limit)).
		Find(&leads).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return leads, total, nil
}

// UpdateStatus changes the pipeline status of a lead
func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status models.LeadStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Lead{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a lead together with its reminder
func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lead_id = ?", id).Delete(&models.Reminder{}).Error; err != nil {
			return translate(err)
		}
		result := tx.Delete(&models.Lead{}, "id = ?", id)
		if result.Error != nil {
			return translate(result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
