package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/estatehub-api/database"
	"github.com/estatehub-api/lib/notify"
	"github.com/estatehub-api/models"
	"github.com/estatehub-api/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite://file::memory:", "silent")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close(db) })
	return db
}

// fakeSender records deliveries and fails on demand
type fakeSender struct {
	mu        sync.Mutex
	configErr error
	failWith  error
	onSend    func()
	sent      []notify.LeadReminder
}

func (f *fakeSender) Validate() error {
	return f.configErr
}

func (f *fakeSender) SendLeadReminder(ctx context.Context, msg notify.LeadReminder) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.onSend != nil {
		f.onSend()
	}
	if f.failWith != nil {
		return "", f.failWith
	}
	f.sent = append(f.sent, msg)
	return fmt.Sprintf("SM%03d", len(f.sent)), nil
}

func (f *fakeSender) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// memoryProvider is a storage.Provider that only records deletions
type memoryProvider struct {
	mu      sync.Mutex
	deleted []string
}

func (m *memoryProvider) Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	return "/uploads/" + key, nil
}

func (m *memoryProvider) Delete(ctx context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, url)
	return nil
}

func (m *memoryProvider) deletedURLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.deleted...)
}

func createLead(t *testing.T, db *gorm.DB, propertyID *string) *models.Lead {
	t.Helper()
	lead := &models.Lead{
		Name:       "Asha Verma",
		Phone:      "+919876543210",
		Purpose:    "Site visit",
		Notes:      utils.Ptr("Prefers weekends"),
		PropertyID: propertyID,
	}
	require.NoError(t, db.Create(lead).Error)
	return lead
}

func createProperty(t *testing.T, db *gorm.DB, p models.Property) *models.Property {
	t.Helper()
	if p.Location == "" {
		p.Location = "Pune"
	}
	if p.PropertyType == "" {
		p.PropertyType = "Villa"
	}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

// dueReminder schedules a pending reminder for lead at the given time
func dueReminder(t *testing.T, db *gorm.DB, leadID string, at time.Time) *models.Reminder {
	t.Helper()
	reminder := &models.Reminder{LeadID: leadID, ScheduledAt: at.UTC()}
	require.NoError(t, db.Create(reminder).Error)
	return reminder
}

func reloadReminder(t *testing.T, db *gorm.DB, id string) models.Reminder {
	t.Helper()
	var reminder models.Reminder
	require.NoError(t, db.First(&reminder, "id = ?", id).Error)
	return reminder
}
