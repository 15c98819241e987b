package http

import (
	"github.com/gin-gonic/gin"

	"candlepin/internal/interfaces/http/middleware"
	"candlepin/internal/interfaces/http/routes"
	"candlepin/internal/shared/constants"
)

// Router registers the HTTP surface on the container's engine.
type Router struct {
	c *Container
}

func NewRouter(c *Container) *Router {
	return &Router{c: c}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	c := r.c
	engine := c.engine

	engine.Use(middleware.Recovery(c.log))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CustomLogger(c.log))
	engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	engine.Use(middleware.SecurityHeaders())

	engine.GET("/health", c.hdlrs.healthHandler.Health)
	if c.cfg.Metrics.Enabled {
		engine.GET(c.cfg.Metrics.Path, gin.WrapH(c.metrics.Handler()))
	}

	api := engine.Group(constants.APIPrefix)
	api.Use(c.authMiddleware.RequireAuth())

	routes.SetupOwnerRoutes(api, &routes.OwnerRouteConfig{
		OwnerHandler:         c.hdlrs.ownerHandler,
		PoolHandler:          c.hdlrs.poolHandler,
		ConsumerHandler:      c.hdlrs.consumerHandler,
		PermissionMiddleware: c.permissionMiddleware,
	})

	routes.SetupConsumerRoutes(api, &routes.ConsumerRouteConfig{
		ConsumerHandler:      c.hdlrs.consumerHandler,
		EntitlementHandler:   c.hdlrs.entitlementHandler,
		ComplianceHandler:    c.hdlrs.complianceHandler,
		PermissionMiddleware: c.permissionMiddleware,
		OwnerResolver:        c.ownerResolver,
	})

	routes.SetupHypervisorRoutes(api, &routes.HypervisorRouteConfig{
		HypervisorHandler:    c.hdlrs.hypervisorHandler,
		PermissionMiddleware: c.permissionMiddleware,
		RateLimiter:          c.checkinLimiter,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.c.engine
}
