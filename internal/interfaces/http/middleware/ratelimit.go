package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"candlepin/internal/infrastructure/ratelimit"
	"candlepin/internal/shared/errors"
	"candlepin/internal/shared/logger"
	"candlepin/internal/shared/utils"
)

// RateLimiter limits requests per principal, falling back to the client IP
// for unauthenticated calls.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	limits  ratelimit.Limits
	scope   string
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.RateLimiter, scope string, limits ratelimit.Limits, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		limits:  limits,
		scope:   scope,
		logger:  logger,
	}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := Principal(c)
		if subject == "" {
			subject = "ip:" + c.ClientIP()
		}

		allowed, err := rl.limiter.Allow(c.Request.Context(), rl.scope+":"+subject, rl.limits)
		if err != nil {
			// An unavailable limiter store must not block check-ins.
			rl.logger.Warnw("rate limiter unavailable", "scope", rl.scope, "error", err)
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, errors.ErrorTypeTooManyRequests,
				"rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
