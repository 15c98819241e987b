package http

import (
	"gorm.io/gorm"

	"candlepin/internal/domain/consumer"
	"candlepin/internal/domain/entitlement"
	"candlepin/internal/domain/owner"
	"candlepin/internal/domain/pool"
	"candlepin/internal/domain/product"
	"candlepin/internal/infrastructure/repository"
	"candlepin/internal/shared/db"
	"candlepin/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	ownerRepo           owner.Repository
	productRepo         product.Repository
	poolRepo            pool.Repository
	consumerRepo        consumer.Repository
	contentOverrideRepo consumer.ContentOverrideRepository
	entitlementRepo     entitlement.Repository
	txMgr               db.Transactor
}

func newRepositories(gdb *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		ownerRepo:           repository.NewOwnerRepository(gdb, log),
		productRepo:         repository.NewProductRepository(gdb, log),
		poolRepo:            repository.NewPoolRepository(gdb, log),
		consumerRepo:        repository.NewConsumerRepository(gdb, log),
		contentOverrideRepo: repository.NewContentOverrideRepository(gdb, log),
		entitlementRepo:     repository.NewEntitlementRepository(gdb, log),
		txMgr:               db.NewTransactionManager(gdb),
	}
}
