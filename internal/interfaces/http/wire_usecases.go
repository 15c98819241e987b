package http

import (
	complianceUsecases "candlepin/internal/application/compliance/usecases"
	consumerUsecases "candlepin/internal/application/consumer/usecases"
	entitlementUsecases "candlepin/internal/application/entitlement/usecases"
	hypervisorUsecases "candlepin/internal/application/hypervisor/usecases"
	ownerUsecases "candlepin/internal/application/owner/usecases"
	poolUsecases "candlepin/internal/application/pool/usecases"
	"candlepin/internal/domain/owner"
	"candlepin/internal/shared/logger"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Owner
	createOwnerUC         *ownerUsecases.CreateOwnerUseCase
	getOwnerUC            *ownerUsecases.GetOwnerUseCase
	updateContentAccessUC *ownerUsecases.UpdateContentAccessUseCase
	claimOwnerUC          *ownerUsecases.ClaimOwnerUseCase

	// Catalogue
	createProductUC *poolUsecases.CreateProductUseCase
	createPoolUC    *poolUsecases.CreatePoolUseCase
	listPoolsUC     *poolUsecases.ListPoolsUseCase

	// Consumer
	registerConsumerUC *consumerUsecases.RegisterConsumerUseCase
	getConsumerUC      *consumerUsecases.GetConsumerUseCase
	updateConsumerUC   *consumerUsecases.UpdateConsumerUseCase
	putGuestUC         *consumerUsecases.PutGuestUseCase
	deleteGuestUC      *consumerUsecases.DeleteGuestUseCase
	contentOverridesUC *consumerUsecases.ContentOverridesUseCase

	// Entitlement
	bindPoolUC           *entitlementUsecases.BindPoolUseCase
	listEntitlementsUC   *entitlementUsecases.ListEntitlementsUseCase
	revokeEntitlementUC  *entitlementUsecases.RevokeEntitlementUseCase
	expireEntitlementsUC *entitlementUsecases.ExpireEntitlementsUseCase

	// Compliance
	getComplianceUC         *complianceUsecases.GetComplianceUseCase
	getPurposeComplianceUC  *complianceUsecases.GetPurposeComplianceUseCase
	guestMigrationRefresher *complianceUsecases.GuestMigrationRefresher

	// Hypervisor
	checkInUC *hypervisorUsecases.CheckInUseCase
}

func (c *Container) newUseCases() *allUseCases {
	r := c.repos
	log := c.log
	ucs := &allUseCases{}

	defaultMode, err := owner.ParseContentAccessMode(c.cfg.ContentAccess.DefaultMode)
	if err != nil {
		log.Warnw("invalid default content access mode, using entitlement",
			"mode", c.cfg.ContentAccess.DefaultMode, "error", err)
		defaultMode = owner.ContentAccessEntitlement
	}

	ucs.createOwnerUC = ownerUsecases.NewCreateOwnerUseCase(r.ownerRepo, c.enforcer, defaultMode, logger.WithComponent("owner"))
	ucs.getOwnerUC = ownerUsecases.NewGetOwnerUseCase(r.ownerRepo, log)
	ucs.updateContentAccessUC = ownerUsecases.NewUpdateContentAccessUseCase(r.ownerRepo, logger.WithComponent("owner"))
	ucs.claimOwnerUC = ownerUsecases.NewClaimOwnerUseCase(r.ownerRepo, r.consumerRepo, r.txMgr, logger.WithComponent("owner"))

	ucs.createProductUC = poolUsecases.NewCreateProductUseCase(r.ownerRepo, r.productRepo, log)
	ucs.createPoolUC = poolUsecases.NewCreatePoolUseCase(r.ownerRepo, r.productRepo, r.poolRepo, log)
	ucs.listPoolsUC = poolUsecases.NewListPoolsUseCase(r.ownerRepo, r.poolRepo, log)

	consumerLog := logger.WithComponent("consumer")
	ucs.registerConsumerUC = consumerUsecases.NewRegisterConsumerUseCase(r.ownerRepo, r.consumerRepo, r.txMgr, c.publisher, consumerLog)
	ucs.getConsumerUC = consumerUsecases.NewGetConsumerUseCase(r.consumerRepo, consumerLog)
	ucs.updateConsumerUC = consumerUsecases.NewUpdateConsumerUseCase(r.consumerRepo, r.txMgr, c.publisher, consumerLog)
	ucs.putGuestUC = consumerUsecases.NewPutGuestUseCase(r.consumerRepo, r.txMgr, c.publisher, consumerLog)
	ucs.deleteGuestUC = consumerUsecases.NewDeleteGuestUseCase(r.consumerRepo, r.txMgr, consumerLog)
	ucs.contentOverridesUC = consumerUsecases.NewContentOverridesUseCase(r.consumerRepo, r.contentOverrideRepo, consumerLog)

	entitlementLog := logger.WithComponent("entitlement")
	ucs.bindPoolUC = entitlementUsecases.NewBindPoolUseCase(r.consumerRepo, r.poolRepo, r.entitlementRepo, r.txMgr, c.metrics, entitlementLog)
	ucs.listEntitlementsUC = entitlementUsecases.NewListEntitlementsUseCase(r.consumerRepo, r.poolRepo, r.entitlementRepo, entitlementLog)
	ucs.revokeEntitlementUC = entitlementUsecases.NewRevokeEntitlementUseCase(r.poolRepo, r.entitlementRepo, r.txMgr, entitlementLog)
	ucs.expireEntitlementsUC = entitlementUsecases.NewExpireEntitlementsUseCase(r.entitlementRepo, ucs.revokeEntitlementUC, entitlementLog)

	complianceLog := logger.WithComponent("compliance")
	loader := complianceUsecases.NewEntitlementViewLoader(r.entitlementRepo, r.poolRepo, r.productRepo)
	ucs.getComplianceUC = complianceUsecases.NewGetComplianceUseCase(r.ownerRepo, r.consumerRepo, loader, c.publisher, complianceLog)
	ucs.getPurposeComplianceUC = complianceUsecases.NewGetPurposeComplianceUseCase(r.ownerRepo, r.consumerRepo, loader, complianceLog)
	ucs.guestMigrationRefresher = complianceUsecases.NewGuestMigrationRefresher(ucs.getComplianceUC, complianceLog)

	ucs.checkInUC = hypervisorUsecases.NewCheckInUseCase(r.ownerRepo, r.consumerRepo, c.enforcer, r.txMgr, c.publisher, c.metrics, logger.WithComponent("hypervisor"))

	return ucs
}
