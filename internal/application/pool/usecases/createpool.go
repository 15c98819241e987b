package usecases

import (
	"context"
	"fmt"
	"time"

	"candlepin/internal/application/pool/dto"
	"candlepin/internal/domain/owner"
	"candlepin/internal/domain/pool"
	"candlepin/internal/domain/product"
	"candlepin/internal/shared/logger"
)

type CreatePoolCommand struct {
	OwnerKey           string
	ProductID          string
	ProvidedProductIDs []string
	Quantity           int64
	StartDate          time.Time
	EndDate            time.Time
}

type CreatePoolUseCase struct {
	ownerRepo   owner.Repository
	productRepo product.Repository
	poolRepo    pool.Repository
	logger      logger.Interface
}

func NewCreatePoolUseCase(
	ownerRepo owner.Repository,
	productRepo product.Repository,
	poolRepo pool.Repository,
	logger logger.Interface,
) *CreatePoolUseCase {
	return &CreatePoolUseCase{
		ownerRepo:   ownerRepo,
		productRepo: productRepo,
		poolRepo:    poolRepo,
		logger:      logger,
	}
}

// Execute creates a pool for a product already in the owner's catalogue.
// A negative quantity creates an unlimited pool.
func (uc *CreatePoolUseCase) Execute(ctx context.Context, cmd CreatePoolCommand) (*dto.PoolResponse, error) {
	o, err := uc.ownerRepo.GetByKey(ctx, cmd.OwnerKey)
	if err != nil {
		return nil, err
	}

	if _, err := uc.productRepo.GetByID(ctx, o.ID(), cmd.ProductID); err != nil {
		return nil, err
	}

	p, err := pool.NewPool(o.ID(), cmd.ProductID, cmd.ProvidedProductIDs, cmd.Quantity, cmd.StartDate, cmd.EndDate)
	if err != nil {
		return nil, err
	}

	if err := uc.poolRepo.Create(ctx, p); err != nil {
		uc.logger.Errorw("failed to create pool", "owner", cmd.OwnerKey, "product_id", cmd.ProductID, "error", err)
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	return dto.ToPoolResponse(p), nil
}
