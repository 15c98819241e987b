package usecases

import (
	"context"
	"fmt"
	"time"

	"candlepin/internal/application/entitlement/dto"
	"candlepin/internal/domain/entitlement"
	"candlepin/internal/shared/logger"
)

const expireBatchSize = 500

// ExpireEntitlementsUseCase revokes entitlements whose pool has ended.
type ExpireEntitlementsUseCase struct {
	entitlementRepo entitlement.Repository
	revoke          *RevokeEntitlementUseCase
	logger          logger.Interface
}

func NewExpireEntitlementsUseCase(
	entitlementRepo entitlement.Repository,
	revoke *RevokeEntitlementUseCase,
	logger logger.Interface,
) *ExpireEntitlementsUseCase {
	return &ExpireEntitlementsUseCase{
		entitlementRepo: entitlementRepo,
		revoke:          revoke,
		logger:          logger,
	}
}

// Execute revokes up to one batch of expired entitlements. A failure on one
// entitlement is reported and does not stop the sweep.
func (uc *ExpireEntitlementsUseCase) Execute(ctx context.Context, now time.Time) (*dto.ExpireResult, error) {
	expired, err := uc.entitlementRepo.ListExpired(ctx, now.UTC(), expireBatchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list expired entitlements: %w", err)
	}

	result := &dto.ExpireResult{}
	for _, e := range expired {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := uc.revoke.Execute(ctx, e.ID()); err != nil {
			uc.logger.Warnw("failed to expire entitlement", "entitlement_id", e.ID(), "error", err)
			result.Failed = append(result.Failed, fmt.Sprintf("%d: %s", e.ID(), err.Error()))
			continue
		}
		result.Revoked++
	}

	if result.Revoked > 0 || len(result.Failed) > 0 {
		uc.logger.Infow("expired entitlements processed", "revoked", result.Revoked, "failed", len(result.Failed))
	}
	return result, nil
}
