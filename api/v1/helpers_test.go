package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/estatehub-api/database"
	"github.com/estatehub-api/dto"
	"github.com/estatehub-api/lib/notify"
	"github.com/estatehub-api/lib/storage"
	"github.com/estatehub-api/models"
	"github.com/estatehub-api/repositories"
	"github.com/estatehub-api/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testJWTSecret  = "api-test-secret"
	testCronSecret = "cron-test-secret"
	testCronHeader = "X-Vercel-Cron"
)

type stubSender struct {
	configErr error
	sent      int
}

func (s *stubSender) Validate() error { return s.configErr }

func (s *stubSender) SendLeadReminder(ctx context.Context, msg notify.LeadReminder) (string, error) {
	s.sent++
	return "SM1", nil
}

type serverOptions struct {
	remindersEnabled bool
	sender           *stubSender
}

type testServer struct {
	router     *gin.Engine
	db         *gorm.DB
	auth       *services.AuthService
	sender     *stubSender
	uploadRoot string
}

func newTestServer(t *testing.T, opts serverOptions) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidators())

	db, err := database.Open("sqlite://file::memory:", "silent")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close(db) })

	root := t.TempDir()
	provider, err := storage.NewLocalProvider(root, "/uploads")
	require.NoError(t, err)
	janitor := storage.NewJanitor(provider)
	t.Cleanup(janitor.Wait)

	sender := opts.sender
	if sender == nil {
		sender = &stubSender{}
	}

	propertyRepo := repositories.NewPropertyRepository(db)
	leadRepo := repositories.NewLeadRepository(db)
	auth := services.NewAuthService(repositories.NewUserRepository(db), testJWTSecret, time.Hour)

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), Dependencies{
		DB:     db,
		Auth:   auth,
		Search: services.NewSearchService(propertyRepo),
		Reminders: services.NewReminderService(repositories.NewReminderRepository(db), leadRepo, sender, services.ReminderOptions{
			Enabled:     opts.remindersEnabled,
			SendTimeout: time.Second,
		}),
		Properties:        services.NewPropertyService(propertyRepo, janitor),
		Leads:             services.NewLeadService(leadRepo, propertyRepo),
		Gallery:           services.NewGalleryService(repositories.NewCategoryRepository(db), repositories.NewGalleryRepository(db), janitor),
		Storage:           provider,
		SessionTTL:        time.Hour,
		CronSecret:        testCronSecret,
		CronTrustedHeader: testCronHeader,
		CronBudget:        5 * time.Second,
		UploadMaxBytes:    1 << 20,
		LeadRatePerMinute: 3,
	})

	return &testServer{router: router, db: db, auth: auth, sender: sender, uploadRoot: root}
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	token, _, err := s.auth.GenerateToken("admin-1", "admin@example.com", string(models.RoleAdmin))
	require.NoError(t, err)
	return token
}

// do sends a request; a non-nil body is encoded as JSON unless it is
// already an io.Reader
func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if _, ok := body.(io.Reader); !ok && body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) asAdmin(t *testing.T) map[string]string {
	return map[string]string{"Authorization": "Bearer " + s.adminToken(t)}
}

type envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Error   *dto.ErrorDetails `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}
