package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shareit-rentals/service-booking/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RecoveryMiddleware(zap.NewNop()))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware(zap.NewNop()))

	g := r.Group("/", middleware.CallerIDMiddleware())
	g.GET("/whoami", func(c *gin.Context) {
		id, _ := middleware.GetCallerID(c)
		c.String(http.StatusOK, id.String())
	})
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func TestCallerIDMiddleware(t *testing.T) {
	r := newRouter()
	caller := uuid.New()

	t.Run("valid header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(middleware.CallerIDHeader, caller.String())
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, caller.String(), w.Body.String())
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), middleware.CallerIDHeader)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(middleware.CallerIDHeader, "42")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRequestIDIsPropagated(t *testing.T) {
	r := newRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	req.Header.Set(middleware.CallerIDHeader, uuid.NewString())
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(middleware.RequestIDHeader))
}

func TestRecoveryMiddleware(t *testing.T) {
	r := newRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/panic", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "An unexpected error has occurred")
}
