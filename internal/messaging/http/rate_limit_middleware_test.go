package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRateLimitedRouter(rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(KDFRateLimitMiddleware(rps, burst, testLogger()))
	router.POST("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

func TestKDFRateLimitMiddleware_AllowsRequestsWithinLimit(t *testing.T) {
	router := newRateLimitedRouter(10.0, 20)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/test", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestKDFRateLimitMiddleware_BlocksRequestsExceedingLimit(t *testing.T) {
	router := newRateLimitedRouter(1.0, 2)

	// Consume the burst capacity.
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/test", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
}

func TestKDFRateLimitMiddleware_SeparateLimitsPerClientIP(t *testing.T) {
	router := newRateLimitedRouter(0.5, 1)

	// First caller consumes its burst.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/test", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// A different caller still has its own budget.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/test", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestKDFRateLimitMiddleware_RecoveryAfterWait(t *testing.T) {
	router := newRateLimitedRouter(20.0, 1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/test", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// At 20 rps a token is replenished after 50ms.
	time.Sleep(100 * time.Millisecond)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/test", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiterStore_GetLimiter_ReusesEntry(t *testing.T) {
	store := &rateLimiterStore{rps: 1.0, burst: 1}

	first := store.getLimiter("10.0.0.1")
	second := store.getLimiter("10.0.0.1")
	other := store.getLimiter("10.0.0.2")

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
}
