package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/estatehub-api/dto"
	"github.com/estatehub-api/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetString(ContextUserID)})
	})
	r.GET("/protected", handlers...)
	return r
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorCode {
	t.Helper()
	var env dto.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.False(t, env.Success)
	return env.Error.Code
}

func TestRequireAdmin(t *testing.T) {
	auth := services.NewAuthService(nil, "secret", time.Hour)
	r := newRouter(RequireAdmin(auth)...)

	adminToken, _, err := auth.GenerateToken("admin-1", "admin@example.com", "admin")
	require.NoError(t, err)
	userToken, _, err := auth.GenerateToken("user-1", "user@example.com", "user")
	require.NoError(t, err)

	t.Run("no credentials", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeUnauthorized, errorCode(t, w))
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer nope")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non admin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+userToken)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, dto.ErrorCodeForbidden, errorCode(t, w))
	})

	t.Run("admin via cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: adminToken})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"userId":"admin-1"}`, w.Body.String())
	})

	t.Run("admin via bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAdminMiddleware_WithoutAuth(t *testing.T) {
	r := newRouter(AdminMiddleware())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIPRateLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(3)
	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("10.0.0.1"), "request %d", i)
	}
	assert.False(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.2"), "budgets are per IP")
}

func TestIPRateLimiter_EvictsIdleVisitors(t *testing.T) {
	limiter := NewIPRateLimiter(1)
	limiter.Allow("10.0.0.1")
	limiter.visitors["10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)

	limiter.Allow("10.0.0.2")
	assert.NotContains(t, limiter.visitors, "10.0.0.1")
	assert.Contains(t, limiter.visitors, "10.0.0.2")
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newRouter(RateLimitMiddleware(NewIPRateLimiter(1)))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, dto.ErrorCodeRateLimited, errorCode(t, w))
}
