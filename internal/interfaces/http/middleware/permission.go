package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"candlepin/internal/domain/consumer"
	"candlepin/internal/domain/entitlement"
	"candlepin/internal/domain/owner"
	"candlepin/internal/domain/permission"
	"candlepin/internal/shared/errors"
	"candlepin/internal/shared/logger"
	"candlepin/internal/shared/utils"
)

// OwnerKeyResolver finds the owner a request acts on.
type OwnerKeyResolver func(c *gin.Context) (string, error)

type PermissionMiddleware struct {
	enforcer permission.PermissionEnforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer permission.PermissionEnforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

// RequireOwnerAccess rejects the request unless the principal holds access
// on the owner returned by resolve. Resolver errors are reported as is, so
// an unknown consumer is still a 404.
func (m *PermissionMiddleware) RequireOwnerAccess(access permission.Access, resolve OwnerKeyResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := Principal(c)
		if principal == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, errors.ErrorTypeUnauthorized, "principal not authenticated")
			c.Abort()
			return
		}

		ownerKey, err := resolve(c)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		allowed, err := m.enforcer.Enforce(principal, ownerKey, access)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "principal", principal, "owner", ownerKey)
			utils.ErrorResponse(c, http.StatusInternalServerError, errors.ErrorTypeInternal, "permission check failed")
			c.Abort()
			return
		}
		if !allowed {
			m.logger.Warnw("permission denied", "principal", principal, "owner", ownerKey, "access", access)
			utils.ErrorResponse(c, http.StatusForbidden, errors.ErrorTypeForbidden,
				fmt.Sprintf("principal %q lacks %s access to owner %q", principal, access, ownerKey))
			c.Abort()
			return
		}

		c.Next()
	}
}

// AnyOwner resolves to the wildcard owner, which only admins hold.
func AnyOwner(*gin.Context) (string, error) {
	return permission.AnyOwner, nil
}

// OwnerFromParam reads the owner key from a path parameter.
func OwnerFromParam(name string) OwnerKeyResolver {
	return func(c *gin.Context) (string, error) {
		key := c.Param(name)
		if key == "" {
			return "", errors.NewValidationError("owner key is required")
		}
		return key, nil
	}
}

// OwnerResolver maps consumers and entitlements to their owner key.
type OwnerResolver struct {
	ownerRepo       owner.Repository
	consumerRepo    consumer.Repository
	entitlementRepo entitlement.Repository
}

func NewOwnerResolver(ownerRepo owner.Repository, consumerRepo consumer.Repository, entitlementRepo entitlement.Repository) *OwnerResolver {
	return &OwnerResolver{
		ownerRepo:       ownerRepo,
		consumerRepo:    consumerRepo,
		entitlementRepo: entitlementRepo,
	}
}

// FromConsumerParam resolves the owner of the consumer named by a path
// parameter holding its uuid.
func (r *OwnerResolver) FromConsumerParam(name string) OwnerKeyResolver {
	return func(c *gin.Context) (string, error) {
		cons, err := r.consumerRepo.GetByUUID(c.Request.Context(), c.Param(name))
		if err != nil {
			return "", err
		}
		return r.ownerKey(c, cons.OwnerID())
	}
}

// FromEntitlementParam resolves the owner of the entitlement's consumer.
func (r *OwnerResolver) FromEntitlementParam(name string) OwnerKeyResolver {
	return func(c *gin.Context) (string, error) {
		id, err := strconv.ParseUint(c.Param(name), 10, 64)
		if err != nil || id == 0 {
			return "", errors.NewValidationError("invalid entitlement id")
		}
		ent, err := r.entitlementRepo.GetByID(c.Request.Context(), uint(id))
		if err != nil {
			return "", err
		}
		cons, err := r.consumerRepo.GetByID(c.Request.Context(), ent.ConsumerID())
		if err != nil {
			return "", err
		}
		return r.ownerKey(c, cons.OwnerID())
	}
}

func (r *OwnerResolver) ownerKey(c *gin.Context, ownerID uint) (string, error) {
	o, err := r.ownerRepo.GetByID(c.Request.Context(), ownerID)
	if err != nil {
		return "", err
	}
	return o.Key(), nil
}
