package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"go-portfolio-backend/internal/delivery/http/middleware"
)

func limitedRouter(limit int, prefix string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := middleware.RateLimitConfig{
		Limit:     limit,
		Window:    time.Minute,
		KeyPrefix: prefix,
		KeyFunc:   func(*gin.Context) string { return "fixed" },
	}
	r.POST("/limited", middleware.RateLimitMiddleware(cfg), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("Allows requests under the limit and sets headers", func(t *testing.T) {
		router := limitedRouter(2, "rl:test-under:")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/limited", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("Rejects requests over the limit with Retry-After", func(t *testing.T) {
		router := limitedRouter(1, "rl:test-over:")

		first := httptest.NewRecorder()
		router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/limited", nil))
		assert.Equal(t, http.StatusOK, first.Code)

		second := httptest.NewRecorder()
		router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/limited", nil))
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
		assert.NotEmpty(t, second.Header().Get("Retry-After"))
		assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))
	})
}
