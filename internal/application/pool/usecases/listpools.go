package usecases

import (
	"context"
	"fmt"
	"time"

	"candlepin/internal/application/pool/dto"
	"candlepin/internal/domain/owner"
	"candlepin/internal/domain/pool"
	"candlepin/internal/shared/logger"
)

type ListPoolsQuery struct {
	OwnerKey string
	// ActiveOn restricts the result to pools valid at that instant.
	ActiveOn *time.Time
}

type ListPoolsUseCase struct {
	ownerRepo owner.Repository
	poolRepo  pool.Repository
	logger    logger.Interface
}

func NewListPoolsUseCase(ownerRepo owner.Repository, poolRepo pool.Repository, logger logger.Interface) *ListPoolsUseCase {
	return &ListPoolsUseCase{
		ownerRepo: ownerRepo,
		poolRepo:  poolRepo,
		logger:    logger,
	}
}

func (uc *ListPoolsUseCase) Execute(ctx context.Context, query ListPoolsQuery) ([]*dto.PoolResponse, error) {
	o, err := uc.ownerRepo.GetByKey(ctx, query.OwnerKey)
	if err != nil {
		return nil, err
	}

	pools, err := uc.poolRepo.ListByOwner(ctx, o.ID(), query.ActiveOn)
	if err != nil {
		return nil, fmt.Errorf("failed to list pools: %w", err)
	}

	return dto.ToPoolResponses(pools), nil
}
