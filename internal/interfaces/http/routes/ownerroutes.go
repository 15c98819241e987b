package routes

import (
	"github.com/gin-gonic/gin"

	"candlepin/internal/domain/permission"
	"candlepin/internal/interfaces/http/handlers"
	"candlepin/internal/interfaces/http/middleware"
)

// OwnerRouteConfig holds dependencies for owner routes.
type OwnerRouteConfig struct {
	OwnerHandler         *handlers.OwnerHandler
	PoolHandler          *handlers.PoolHandler
	ConsumerHandler      *handlers.ConsumerHandler
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupOwnerRoutes configures owner, catalogue and registration routes.
// The group must already require authentication.
func SetupOwnerRoutes(api *gin.RouterGroup, cfg *OwnerRouteConfig) {
	perm := cfg.PermissionMiddleware
	byKey := middleware.OwnerFromParam("key")

	owners := api.Group("/owners")
	{
		// Only admins hold access on the wildcard owner.
		owners.POST("", perm.RequireOwnerAccess(permission.AccessAll, middleware.AnyOwner), cfg.OwnerHandler.CreateOwner)

		owners.GET("/:key", perm.RequireOwnerAccess(permission.AccessRead, byKey), cfg.OwnerHandler.GetOwner)
		owners.PUT("/:key/content-access", perm.RequireOwnerAccess(permission.AccessAll, byKey), cfg.OwnerHandler.UpdateContentAccess)
		owners.POST("/:key/claim", perm.RequireOwnerAccess(permission.AccessAll, byKey), cfg.OwnerHandler.ClaimOwner)

		owners.POST("/:key/products", perm.RequireOwnerAccess(permission.AccessAll, byKey), cfg.PoolHandler.CreateProduct)
		owners.POST("/:key/pools", perm.RequireOwnerAccess(permission.AccessAll, byKey), cfg.PoolHandler.CreatePool)
		owners.GET("/:key/pools", perm.RequireOwnerAccess(permission.AccessRead, byKey), cfg.PoolHandler.ListPools)

		owners.POST("/:key/consumers", perm.RequireOwnerAccess(permission.AccessAll, byKey), cfg.ConsumerHandler.RegisterConsumer)
	}
}
