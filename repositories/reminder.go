package repositories

import (
	"context"
	"time"

	"github.com/estatehub-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReminderRepository handles database operations for reminders
type ReminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new reminder repository instance
func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// FindByID retrieves a reminder by its ID
func (r *ReminderRepository) FindByID(ctx context.Context, id string) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := r.db.WithContext(ctx).First(&reminder, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &reminder, nil
}

// FindByLeadID retrieves the reminder owned by a lead
func (r *ReminderRepository) FindByLeadID(ctx context.Context, leadID string) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := r.db.WithContext(ctx).First(&reminder, "lead_id = ?", leadID).Error; err != nil {
		return nil, translate(err)
	}
	return &reminder, nil
}

// Upsert creates the reminder of a lead, or reschedules the existing one and
// marks it unsent again. The unique index on lead_id arbitrates concurrent calls.
func (r *ReminderRepository) Upsert(ctx context.Context, leadID string, scheduledAt time.Time) (*models.Reminder, error) {
	scheduledAt = scheduledAt.UTC()
	reminder := models.Reminder{
		LeadID:      leadID,
		ScheduledAt: scheduledAt,
		Sent:        false,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "lead_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"scheduled_at": scheduledAt,
			"sent":         false,
			"updated_at":   r.db.NowFunc(),
		}),
	}).Create(&reminder).Error
	if err != nil {
		return nil, translate(err)
	}

	// On conflict the generated ID is not the stored one; read the row back.
	return r.FindByLeadID(ctx, leadID)
}

// Delete removes a reminder by ID
func (r *ReminderRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Reminder{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindDue returns unsent reminders scheduled at or before now, oldest first
func (r *ReminderRepository) FindDue(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := r.db.WithContext(ctx).
		Where("scheduled_at <= ? AND sent = ?", now.UTC(), false).
		Order("scheduled_at ASC").
		Find(&reminders).Error
	return reminders, translate(err)
}

// MarkSent flags a reminder as delivered. Marking an already sent reminder
// is a no-op.
func (r *ReminderRepository) MarkSent(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&models.Reminder{}).
		Where("id = ? AND sent = ?", id, false).
		Updates(map[string]interface{}{"sent": true})
	return translate(result.Error)
}
