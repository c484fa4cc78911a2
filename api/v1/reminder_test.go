package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/estatehub-api/dto"
	"github.com/estatehub-api/lib/notify"
	"github.com/estatehub-api/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestLead(t *testing.T, srv *testServer) *models.Lead {
	t.Helper()
	lead := &models.Lead{Name: "Asha", Phone: "+919876543210", Purpose: "Buy"}
	require.NoError(t, srv.db.Create(lead).Error)
	return lead
}

func TestReminders_ScheduleRequiresAdmin(t *testing.T) {
	srv := newTestServer(t, serverOptions{})
	lead := createTestLead(t, srv)
	body := dto.CreateReminderRequest{LeadID: lead.ID, Preset: "tomorrow_morning"}

	w := srv.do(t, http.MethodPost, "/api/v1/reminders", body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = srv.do(t, http.MethodPost, "/api/v1/reminders", body, srv.asAdmin(t))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.ReminderScheduledResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Reminder)
	assert.Equal(t, lead.ID, resp.Reminder.LeadID)
	assert.False(t, resp.Reminder.Sent)
	assert.Contains(t, resp.FormattedTime, "9:30 AM IST")

	w = srv.do(t, http.MethodGet, "/api/v1/reminders?leadId="+lead.ID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var lookup dto.ReminderLookupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lookup))
	require.NotNil(t, lookup.Reminder)
	assert.Equal(t, resp.Reminder.ID, lookup.Reminder.ID)

	w = srv.do(t, http.MethodDelete, "/api/v1/reminders/"+resp.Reminder.ID, nil, srv.asAdmin(t))
	assert.Equal(t, http.StatusOK, w.Code)
	w = srv.do(t, http.MethodDelete, "/api/v1/reminders/"+resp.Reminder.ID, nil, srv.asAdmin(t))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReminders_ScheduleErrors(t *testing.T) {
	srv := newTestServer(t, serverOptions{})
	lead := createTestLead(t, srv)

	w := srv.do(t, http.MethodPost, "/api/v1/reminders",
		dto.CreateReminderRequest{LeadID: lead.ID, Preset: "someday"}, srv.asAdmin(t))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "preset", env.Error.Field)

	w = srv.do(t, http.MethodPost, "/api/v1/reminders",
		dto.CreateReminderRequest{LeadID: uuid.NewString(), Preset: "in_2_days"}, srv.asAdmin(t))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, http.MethodPost, "/api/v1/reminders", map[string]string{"preset": "in_2_days"}, srv.asAdmin(t))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env = decodeEnvelope(t, w)
	assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)
	assert.Equal(t, "leadId", env.Error.Field)
}

func TestReminders_LookupWithoutReminder(t *testing.T) {
	srv := newTestServer(t, serverOptions{})
	lead := createTestLead(t, srv)

	w := srv.do(t, http.MethodGet, "/api/v1/reminders?leadId="+lead.ID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"reminder":null}`, w.Body.String())

	w = srv.do(t, http.MethodGet, "/api/v1/reminders", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/reminders/presets", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"value":"in_1_week"`)
}

func TestCron_Authentication(t *testing.T) {
	srv := newTestServer(t, serverOptions{remindersEnabled: true})

	w := srv.do(t, http.MethodGet, "/api/v1/cron/send-reminders", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/cron/send-reminders", nil,
		map[string]string{"Authorization": "Bearer wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/cron/send-reminders", nil,
		map[string]string{"Authorization": "Bearer " + testCronSecret})
	assert.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/cron/send-reminders", nil,
		map[string]string{testCronHeader: "true"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCron_DispatchesDueReminders(t *testing.T) {
	srv := newTestServer(t, serverOptions{remindersEnabled: true})
	lead := createTestLead(t, srv)
	require.NoError(t, srv.db.Create(&models.Reminder{LeadID: lead.ID, ScheduledAt: time.Now().UTC().Add(-time.Minute)}).Error)

	w := srv.do(t, http.MethodGet, "/api/v1/cron/send-reminders", nil, map[string]string{testCronHeader: "true"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.DispatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, dto.DispatchSummary{Processed: 1, Sent: 1}, resp.Summary)
	assert.Equal(t, 1, srv.sender.sent)
}

func TestCron_Disabled(t *testing.T) {
	srv := newTestServer(t, serverOptions{remindersEnabled: false})

	w := srv.do(t, http.MethodGet, "/api/v1/cron/send-reminders", nil, map[string]string{testCronHeader: "true"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "disabled")
	assert.Contains(t, w.Body.String(), `"processed":0`)

	// switched off wins over missing credentials
	sender := &stubSender{configErr: fmt.Errorf("%w: missing TWILIO_AUTH_TOKEN", notify.ErrNotConfigured)}
	srv = newTestServer(t, serverOptions{remindersEnabled: false, sender: sender})
	w = srv.do(t, http.MethodGet, "/api/v1/cron/send-reminders", nil, map[string]string{testCronHeader: "true"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "disabled")
	assert.NotContains(t, w.Body.String(), `"disabled":`)
}

func TestCron_Unconfigured(t *testing.T) {
	sender := &stubSender{configErr: fmt.Errorf("%w: missing TWILIO_AUTH_TOKEN", notify.ErrNotConfigured)}
	srv := newTestServer(t, serverOptions{remindersEnabled: true, sender: sender})

	w := srv.do(t, http.MethodGet, "/api/v1/cron/send-reminders", nil, map[string]string{testCronHeader: "true"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrorCodeConfigurationError, env.Error.Code)
	assert.Contains(t, env.Error.Message, "TWILIO_AUTH_TOKEN")
}
