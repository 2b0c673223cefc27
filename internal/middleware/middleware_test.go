package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"fintrack-be/internal/jwt"
	applog "fintrack-be/internal/log"
	"fintrack-be/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) models.RequestResponse {
	t.Helper()
	var body models.RequestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func newAuthRouter(tokens *jwt.JWTService, mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/me", mw, func(c *gin.Context) {
		caller := CallerFrom(c)
		c.JSON(http.StatusOK, models.RequestResponse{Response: caller})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tokens := jwt.NewJWTService("secret", time.Hour)
	r := newAuthRouter(tokens, AuthMiddleware(tokens))
	id := uuid.New()
	token, err := tokens.GenerateToken(id, "a@b.c", models.RoleAdmin)
	require.NoError(t, err)

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		body := decode(t, w)
		require.NotNil(t, body.ErrorMessage)
		assert.Equal(t, "Unauthorized", body.ErrorMessage.ErrorCode)
		assert.Equal(t, "unauthorized", body.ErrorMessage.Status)
	})

	t.Run("bad token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer nope")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Response models.Caller `json:"response"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, id, body.Response.UserID)
		assert.Equal(t, models.RoleAdmin, body.Response.Role)
	})
}

func TestOptionalAuthFallsBackToAnonymous(t *testing.T) {
	tokens := jwt.NewJWTService("secret", time.Hour)
	r := newAuthRouter(tokens, OptionalAuth(tokens))

	for _, header := range []string{"", "Bearer garbage", "Basic abc"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, header)

		var body struct {
			Response models.Caller `json:"response"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, uuid.Nil, body.Response.UserID)
	}
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, rate.Limit(0.001), 2)
	r := gin.New()
	r.GET("/x", rl.LimitMiddleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for range 3 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterSweep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, rate.Limit(1), 1)
	rl.getVisitor("10.0.0.1")
	rl.sweep(time.Now().Add(time.Minute))
	assert.Len(t, rl.visitors, 1)
	rl.sweep(time.Now().Add(time.Hour))
	assert.Empty(t, rl.visitors)
}

func TestWritesOnly(t *testing.T) {
	blocked := func(c *gin.Context) { c.AbortWithStatus(http.StatusTeapot) }
	r := gin.New()
	r.Use(WritesOnly(blocked))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := applog.New(applog.Config{Format: "json", Output: &buf})

	r := gin.New()
	r.Use(RequestLogger(logger))
	r.GET("/boom", func(c *gin.Context) {
		assert.NotSame(t, logger, applog.FromContext(c.Request.Context()))
		c.Status(http.StatusInternalServerError)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(requestIDHeader, "req-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-1", w.Header().Get(requestIDHeader))
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "req-1", rec[applog.FieldRequestID])
	assert.Equal(t, applog.ComponentHTTP, rec[applog.FieldComponent])
	assert.EqualValues(t, http.StatusInternalServerError, rec[applog.FieldStatusCode])
}
