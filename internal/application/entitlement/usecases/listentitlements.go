package usecases

import (
	"context"
	"fmt"

	"candlepin/internal/application/entitlement/dto"
	"candlepin/internal/domain/consumer"
	"candlepin/internal/domain/entitlement"
	"candlepin/internal/domain/pool"
	"candlepin/internal/shared/logger"
)

type ListEntitlementsUseCase struct {
	consumerRepo    consumer.Repository
	poolRepo        pool.Repository
	entitlementRepo entitlement.Repository
	logger          logger.Interface
}

func NewListEntitlementsUseCase(
	consumerRepo consumer.Repository,
	poolRepo pool.Repository,
	entitlementRepo entitlement.Repository,
	logger logger.Interface,
) *ListEntitlementsUseCase {
	return &ListEntitlementsUseCase{
		consumerRepo:    consumerRepo,
		poolRepo:        poolRepo,
		entitlementRepo: entitlementRepo,
		logger:          logger,
	}
}

func (uc *ListEntitlementsUseCase) Execute(ctx context.Context, consumerUUID string) ([]*dto.EntitlementResponse, error) {
	c, err := uc.consumerRepo.GetByUUID(ctx, consumerUUID)
	if err != nil {
		return nil, err
	}

	ents, err := uc.entitlementRepo.ListByConsumer(ctx, c.ID())
	if err != nil {
		uc.logger.Errorw("failed to list entitlements", "consumer_uuid", consumerUUID, "error", err)
		return nil, fmt.Errorf("failed to list entitlements: %w", err)
	}

	poolIDs := make([]uint, 0, len(ents))
	for _, e := range ents {
		poolIDs = append(poolIDs, e.PoolID())
	}
	pools, err := uc.poolRepo.GetByIDs(ctx, poolIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load entitlement pools: %w", err)
	}
	byID := make(map[uint]*pool.Pool, len(pools))
	for _, p := range pools {
		byID[p.ID()] = p
	}

	out := make([]*dto.EntitlementResponse, 0, len(ents))
	for _, e := range ents {
		out = append(out, dto.ToEntitlementResponse(e, c.UUID(), byID[e.PoolID()]))
	}
	return out, nil
}
