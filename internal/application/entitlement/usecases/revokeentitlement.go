package usecases

import (
	"context"
	"fmt"

	"candlepin/internal/domain/entitlement"
	"candlepin/internal/domain/pool"
	"candlepin/internal/shared/db"
	apperrors "candlepin/internal/shared/errors"
	"candlepin/internal/shared/logger"
)

// RevokeEntitlementUseCase deletes an entitlement and returns its quantity
// to the pool.
type RevokeEntitlementUseCase struct {
	poolRepo        pool.Repository
	entitlementRepo entitlement.Repository
	txMgr           db.Transactor
	logger          logger.Interface
}

func NewRevokeEntitlementUseCase(
	poolRepo pool.Repository,
	entitlementRepo entitlement.Repository,
	txMgr db.Transactor,
	logger logger.Interface,
) *RevokeEntitlementUseCase {
	return &RevokeEntitlementUseCase{
		poolRepo:        poolRepo,
		entitlementRepo: entitlementRepo,
		txMgr:           txMgr,
		logger:          logger,
	}
}

func (uc *RevokeEntitlementUseCase) Execute(ctx context.Context, entitlementID uint) error {
	ent, err := uc.entitlementRepo.GetByID(ctx, entitlementID)
	if err != nil {
		return err
	}

	err = runWithPoolRetry(ctx, uc.txMgr, uc.logger, ent.PoolID(), func(txCtx context.Context) error {
		p, err := uc.poolRepo.GetForUpdate(txCtx, ent.PoolID())
		if err != nil {
			// A missing pool has no capacity left to restore.
			if apperrors.IsNotFoundError(err) {
				return uc.entitlementRepo.Delete(txCtx, ent.ID())
			}
			return err
		}

		p.Release(ent.Quantity())
		if err := uc.poolRepo.SaveConsumption(txCtx, p); err != nil {
			return err
		}
		return uc.entitlementRepo.Delete(txCtx, ent.ID())
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		uc.logger.Errorw("failed to revoke entitlement", "entitlement_id", entitlementID, "error", err)
		return fmt.Errorf("failed to revoke entitlement: %w", err)
	}

	uc.logger.Infow("entitlement revoked",
		"entitlement_id", ent.ID(),
		"pool_id", ent.PoolID(),
		"quantity", ent.Quantity(),
	)
	return nil
}
