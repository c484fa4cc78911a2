package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/estatehub-api/dto"
	"github.com/estatehub-api/lib/notify"
	"github.com/estatehub-api/models"
	"github.com/estatehub-api/repositories"
	"github.com/estatehub-api/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ReminderOptions configures reminder dispatch
type ReminderOptions struct {
	// Enabled gates dispatch as a whole; scheduling works either way
	Enabled bool
	// SendTimeout bounds each notification call
	SendTimeout time.Duration
}

// ReminderService schedules one follow-up reminder per lead and delivers
// the due ones
type ReminderService struct {
	reminders *repositories.ReminderRepository
	leads     *repositories.LeadRepository
	sender    notify.Sender
	opts      ReminderOptions
	now       func() time.Time
}

// NewReminderService creates a new reminder service instance
func NewReminderService(reminders *repositories.ReminderRepository, leads *repositories.LeadRepository, sender notify.Sender, opts ReminderOptions) *ReminderService {
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = 30 * time.Second
	}
	return &ReminderService{
		reminders: reminders,
		leads:     leads,
		sender:    sender,
		opts:      opts,
		now:       time.Now,
	}
}

// Schedule creates the reminder of a lead, or moves the existing one to the
// preset's time and marks it pending again
func (s *ReminderService) Schedule(ctx context.Context, leadID, preset string) (*dto.ReminderScheduledResponse, error) {
	scheduledAt, err := CalculateScheduledTime(preset, s.now())
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(leadID); err != nil {
		return nil, invalidParam("leadId", "leadId must be a UUID")
	}

	exists, err := s.leads.Exists(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("lead %s: %w", leadID, ErrNotFound)
	}

	reminder, err := s.reminders.Upsert(ctx, leadID, scheduledAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save reminder: %w", err)
	}

	utils.Logger.WithFields(logrus.Fields{
		"lead_id":      leadID,
		"preset":       preset,
		"scheduled_at": scheduledAt,
	}).Info("Reminder scheduled")

	return &dto.ReminderScheduledResponse{
		Success:       true,
		Reminder:      reminder,
		ScheduledFor:  scheduledAt,
		FormattedTime: FormatScheduledTime(scheduledAt),
	}, nil
}

// GetByLead returns the reminder of a lead, or nil when it has none
func (s *ReminderService) GetByLead(ctx context.Context, leadID string) (*models.Reminder, error) {
	if _, err := uuid.Parse(leadID); err != nil {
		return nil, invalidParam("leadId", "leadId must be a UUID")
	}
	reminder, err := s.reminders.FindByLeadID(ctx, leadID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return reminder, nil
}

// Cancel deletes a reminder by ID
func (s *ReminderService) Cancel(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("reminder %s: %w", id, ErrNotFound)
	}
	if err := s.reminders.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("reminder %s: %w", id, ErrNotFound)
		}
		return err
	}
	return nil
}

// DispatchDue delivers every pending reminder scheduled at or before now,
// one at a time. A reminder is marked sent only after its notification was
// accepted or its lead turned out to be gone; failed ones stay pending and
// are retried by the next cycle. Delivery failures are counted, not
// returned. When ctx ends the loop stops before the next reminder.
func (s *ReminderService) DispatchDue(ctx context.Context, now time.Time) (dto.DispatchSummary, error) {
	var summary dto.DispatchSummary

	if !s.opts.Enabled {
		utils.Logger.Debug("Reminder dispatch disabled, skipping")
		summary.Disabled = true
		return summary, nil
	}
	if err := s.sender.Validate(); err != nil {
		return summary, configurationError(err)
	}

	due, err := s.reminders.FindDue(ctx, now)
	if err != nil {
		return summary, fmt.Errorf("failed to load due reminders: %w", err)
	}

	for _, reminder := range due {
		if ctx.Err() != nil {
			utils.Logger.WithFields(logrus.Fields{
				"processed": summary.Processed,
				"remaining": len(due) - summary.Processed,
			}).Warn("Reminder dispatch stopped early, remaining reminders wait for the next cycle")
			break
		}

		summary.Processed++
		if err := s.dispatchOne(ctx, reminder); err != nil {
			summary.Failed++
			utils.Logger.WithError(err).WithFields(logrus.Fields{
				"reminder_id": reminder.ID,
				"lead_id":     reminder.LeadID,
			}).Warn("Reminder not delivered, will retry")
			continue
		}
		summary.Sent++
	}

	utils.Logger.WithFields(logrus.Fields{
		"processed": summary.Processed,
		"sent":      summary.Sent,
		"failed":    summary.Failed,
	}).Info("Reminder dispatch finished")

	return summary, nil
}

func (s *ReminderService) dispatchOne(ctx context.Context, reminder models.Reminder) error {
	// Outcomes are recorded even if ctx ends mid-item, so a delivered
	// reminder is not sent twice.
	markCtx := context.WithoutCancel(ctx)

	lead, err := s.leads.FindByID(ctx, reminder.LeadID)
	if errors.Is(err, ErrNotFound) {
		utils.Logger.WithField("reminder_id", reminder.ID).Info("Lead gone, retiring orphan reminder")
		return s.reminders.MarkSent(markCtx, reminder.ID)
	}
	if err != nil {
		return err
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.opts.SendTimeout)
	defer cancel()

	messageID, err := s.sender.SendLeadReminder(sendCtx, leadReminder(lead))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	if err := s.reminders.MarkSent(markCtx, reminder.ID); err != nil {
		return fmt.Errorf("delivered as %s but not marked sent: %w", messageID, err)
	}

	utils.Logger.WithFields(logrus.Fields{
		"reminder_id": reminder.ID,
		"message_id":  messageID,
	}).Info("Reminder delivered")
	return nil
}

func leadReminder(lead *models.Lead) notify.LeadReminder {
	msg := notify.LeadReminder{
		Name:    lead.Name,
		Phone:   lead.Phone,
		Purpose: lead.Purpose,
		Notes:   lead.Notes,
	}
	if lead.Property != nil {
		msg.Property = &notify.PropertyRef{
			Title:    lead.Property.Title,
			Location: lead.Property.Location,
		}
	}
	return msg
}
