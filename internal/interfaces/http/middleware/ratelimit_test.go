package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"candlepin/internal/infrastructure/ratelimit"
	"candlepin/internal/shared/constants"
	"candlepin/internal/shared/logger"
)

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string, ratelimit.Limits) (bool, error) {
	return false, assert.AnError
}

func (failingLimiter) Reset(context.Context, string) error { return nil }

func newLimitedEngine(limiter ratelimit.RateLimiter, limits ratelimit.Limits) *gin.Engine {
	rl := NewRateLimiter(limiter, "checkin", limits, logger.NewNopLogger())
	r := gin.New()
	r.POST("/hypervisors/:owner", func(c *gin.Context) {
		if p := c.GetHeader("X-Test-Principal"); p != "" {
			c.Set(constants.ContextKeyPrincipal, p)
		}
		c.Next()
	}, rl.Limit(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func post(r *gin.Engine, principal string) int {
	req := httptest.NewRequest(http.MethodPost, "/hypervisors/acme", nil)
	if principal != "" {
		req.Header.Set("X-Test-Principal", principal)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter_PerPrincipal(t *testing.T) {
	r := newLimitedEngine(ratelimit.NewMemoryRateLimiter(), ratelimit.Limits{PerMinute: 2})

	assert.Equal(t, http.StatusOK, post(r, "virt-who-1"))
	assert.Equal(t, http.StatusOK, post(r, "virt-who-1"))
	assert.Equal(t, http.StatusTooManyRequests, post(r, "virt-who-1"))

	assert.Equal(t, http.StatusOK, post(r, "virt-who-2"), "limits are tracked per principal")
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	r := newLimitedEngine(failingLimiter{}, ratelimit.Limits{PerMinute: 1})

	assert.Equal(t, http.StatusOK, post(r, "virt-who"))
	assert.Equal(t, http.StatusOK, post(r, "virt-who"))
}
