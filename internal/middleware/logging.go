package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	applog "fintrack-be/internal/log"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger puts a request-scoped logger on the request context and logs each
// request's completion at a level matching its status
func RequestLogger(logger *applog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		reqLogger := logger.With(applog.FieldRequestID, requestID)
		ctx := applog.WithContext(c.Request.Context(), reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		fields := applog.NewFields().
			WithHTTPRequest(c.Request.Method, c.FullPath(), c.Request.URL.RawQuery, c.Request.UserAgent()).
			WithHTTPResponse(status, time.Since(start).Milliseconds())
		fields[applog.FieldClientIP] = c.ClientIP()
		if len(c.Errors) > 0 {
			fields[applog.FieldError] = c.Errors.String()
		}

		reqLogger.WithComponent(applog.ComponentHTTP).Log(ctx, level, "HTTP request completed", fields.ToSlice()...)
	}
}
