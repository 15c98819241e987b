package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"candlepin/internal/infrastructure/auth"
	"candlepin/internal/shared/constants"
	"candlepin/internal/shared/errors"
	"candlepin/internal/shared/logger"
	"candlepin/internal/shared/utils"
)

type tokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	verifier tokenVerifier
	logger   logger.Interface
}

func NewAuthMiddleware(verifier tokenVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

// RequireAuth stores the bearer token's principal under
// constants.ContextKeyPrincipal.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, errors.ErrorTypeUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, errors.ErrorTypeUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.verifier.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, errors.ErrorTypeUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyPrincipal, claims.Principal())
		c.Next()
	}
}

// Principal returns the authenticated principal or "".
func Principal(c *gin.Context) string {
	return c.GetString(constants.ContextKeyPrincipal)
}
