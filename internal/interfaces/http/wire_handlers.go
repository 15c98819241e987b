package http

import (
	"context"

	"gorm.io/gorm"

	"candlepin/internal/interfaces/http/handlers"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	ownerHandler       *handlers.OwnerHandler
	poolHandler        *handlers.PoolHandler
	consumerHandler    *handlers.ConsumerHandler
	entitlementHandler *handlers.EntitlementHandler
	complianceHandler  *handlers.ComplianceHandler
	hypervisorHandler  *handlers.HypervisorHandler
	healthHandler      *handlers.HealthHandler
}

func (c *Container) newHandlers() *allHandlers {
	u := c.ucs
	log := c.log

	return &allHandlers{
		ownerHandler: handlers.NewOwnerHandler(u.createOwnerUC, u.getOwnerUC, u.updateContentAccessUC, u.claimOwnerUC, log),
		poolHandler:  handlers.NewPoolHandler(u.createProductUC, u.createPoolUC, u.listPoolsUC, log),
		consumerHandler: handlers.NewConsumerHandler(
			u.registerConsumerUC,
			u.getConsumerUC,
			u.updateConsumerUC,
			u.putGuestUC,
			u.deleteGuestUC,
			u.contentOverridesUC,
			log,
		),
		entitlementHandler: handlers.NewEntitlementHandler(u.bindPoolUC, u.listEntitlementsUC, u.revokeEntitlementUC, log),
		complianceHandler:  handlers.NewComplianceHandler(u.getComplianceUC, u.getPurposeComplianceUC, log),
		hypervisorHandler:  handlers.NewHypervisorHandler(u.checkInUC, log),
		healthHandler:      handlers.NewHealthHandler(gormPinger{db: c.db}),
	}
}

// gormPinger pings the connection pool behind a gorm handle.
type gormPinger struct {
	db *gorm.DB
}

func (p gormPinger) PingContext(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
