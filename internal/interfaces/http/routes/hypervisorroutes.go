package routes

import (
	"github.com/gin-gonic/gin"

	"candlepin/internal/domain/permission"
	"candlepin/internal/interfaces/http/handlers"
	"candlepin/internal/interfaces/http/middleware"
)

// HypervisorRouteConfig holds dependencies for hypervisor check-in routes.
// RateLimiter is optional.
type HypervisorRouteConfig struct {
	HypervisorHandler    *handlers.HypervisorHandler
	PermissionMiddleware *middleware.PermissionMiddleware
	RateLimiter          *middleware.RateLimiter
}

// SetupHypervisorRoutes configures the check-in route. Reporting requires
// READ on the owner; creating a host additionally needs ALL, which the
// check-in verifies per host so one refused host does not reject the report.
func SetupHypervisorRoutes(api *gin.RouterGroup, cfg *HypervisorRouteConfig) {
	chain := []gin.HandlerFunc{
		cfg.PermissionMiddleware.RequireOwnerAccess(permission.AccessRead, middleware.OwnerFromParam("owner")),
	}
	if cfg.RateLimiter != nil {
		chain = append(chain, cfg.RateLimiter.Limit())
	}
	chain = append(chain, cfg.HypervisorHandler.CheckIn)

	api.POST("/hypervisors/:owner", chain...)
}
