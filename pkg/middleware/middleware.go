package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shareit-rentals/service-booking/pkg/response"
	"go.uber.org/zap"
)

const (
	// RequestIDHeader carries the request correlation id.
	RequestIDHeader = "X-Request-ID"
	// CallerIDHeader identifies the acting user. It is trusted as-is.
	CallerIDHeader = "X-Sharer-User-Id"

	requestIDKey = "request_id"
	callerIDKey  = "caller_id"
)

// RecoveryMiddleware turns panics into a logged 500 response.
func RecoveryMiddleware(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(requestIDKey)),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{
			Status:  http.StatusInternalServerError,
			Error:   http.StatusText(http.StatusInternalServerError),
			Message: "An unexpected error has occurred",
		})
	})
}

// LoggerMiddleware writes one access log line per request.
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(requestIDKey)),
		}
		if callerID, ok := GetCallerID(c); ok {
			fields = append(fields, zap.String("caller_id", callerID.String()))
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("request failed", append(fields, zap.String("errors", c.Errors.String()))...)
		case len(c.Errors) > 0:
			log.Warn("request rejected", append(fields, zap.String("errors", c.Errors.String()))...)
		default:
			log.Info("request handled", fields...)
		}
	}
}

// RequestIDMiddleware propagates or assigns a request id.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// CallerIDMiddleware requires a valid caller id header on every request.
func CallerIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(CallerIDHeader)
		if raw == "" {
			response.BadRequest(c, "Required request header '"+CallerIDHeader+"' is not present")
			return
		}
		callerID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid request header '"+CallerIDHeader+"': "+raw)
			return
		}
		c.Set(callerIDKey, callerID)
		c.Next()
	}
}

// GetCallerID returns the caller id stored by CallerIDMiddleware.
func GetCallerID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(callerIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
