package routes

import (
	"github.com/gin-gonic/gin"

	"candlepin/internal/domain/permission"
	"candlepin/internal/interfaces/http/handlers"
	"candlepin/internal/interfaces/http/middleware"
)

// ConsumerRouteConfig holds dependencies for consumer scoped routes.
type ConsumerRouteConfig struct {
	ConsumerHandler      *handlers.ConsumerHandler
	EntitlementHandler   *handlers.EntitlementHandler
	ComplianceHandler    *handlers.ComplianceHandler
	PermissionMiddleware *middleware.PermissionMiddleware
	OwnerResolver        *middleware.OwnerResolver
}

// SetupConsumerRoutes configures consumer, entitlement and compliance
// routes. Access is checked against the consumer's owner.
func SetupConsumerRoutes(api *gin.RouterGroup, cfg *ConsumerRouteConfig) {
	perm := cfg.PermissionMiddleware
	byConsumer := cfg.OwnerResolver.FromConsumerParam("uuid")
	read := perm.RequireOwnerAccess(permission.AccessRead, byConsumer)
	write := perm.RequireOwnerAccess(permission.AccessAll, byConsumer)

	consumers := api.Group("/consumers/:uuid")
	{
		consumers.GET("", read, cfg.ConsumerHandler.GetConsumer)
		consumers.PUT("", write, cfg.ConsumerHandler.UpdateConsumer)

		consumers.PUT("/guestids/:guestId", write, cfg.ConsumerHandler.PutGuest)
		consumers.DELETE("/guestids/:guestId", write, cfg.ConsumerHandler.DeleteGuest)

		consumers.POST("/entitlements", write, cfg.EntitlementHandler.Bind)
		consumers.GET("/entitlements", read, cfg.EntitlementHandler.ListEntitlements)

		consumers.GET("/compliance", read, cfg.ComplianceHandler.GetCompliance)
		consumers.GET("/purpose_compliance", read, cfg.ComplianceHandler.GetPurposeCompliance)

		consumers.PUT("/content_overrides", write, cfg.ConsumerHandler.AddContentOverrides)
		consumers.DELETE("/content_overrides", write, cfg.ConsumerHandler.DeleteContentOverrides)
		consumers.GET("/content_overrides", read, cfg.ConsumerHandler.ListContentOverrides)
	}

	api.DELETE("/entitlements/:id",
		perm.RequireOwnerAccess(permission.AccessAll, cfg.OwnerResolver.FromEntitlementParam("id")),
		cfg.EntitlementHandler.Revoke,
	)
}
