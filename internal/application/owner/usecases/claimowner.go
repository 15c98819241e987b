package usecases

import (
	"context"
	"fmt"

	"candlepin/internal/application/owner/dto"
	"candlepin/internal/domain/consumer"
	"candlepin/internal/domain/owner"
	"candlepin/internal/shared/db"
	"candlepin/internal/shared/logger"
)

type ClaimOwnerCommand struct {
	OwnerKey    string
	ClaimantKey string
}

// ClaimOwnerUseCase hands an anonymous owner and its consumers over to a
// regular owner.
type ClaimOwnerUseCase struct {
	ownerRepo    owner.Repository
	consumerRepo consumer.Repository
	txMgr        db.Transactor
	logger       logger.Interface
}

func NewClaimOwnerUseCase(
	ownerRepo owner.Repository,
	consumerRepo consumer.Repository,
	txMgr db.Transactor,
	logger logger.Interface,
) *ClaimOwnerUseCase {
	return &ClaimOwnerUseCase{
		ownerRepo:    ownerRepo,
		consumerRepo: consumerRepo,
		txMgr:        txMgr,
		logger:       logger,
	}
}

// Execute claims the owner. Repeating a claim with the same claimant
// succeeds without moving anything again.
func (uc *ClaimOwnerUseCase) Execute(ctx context.Context, cmd ClaimOwnerCommand) (*dto.ClaimOwnerResponse, error) {
	var (
		anonymous *owner.Owner
		moved     int64
	)

	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		anonymous, err = uc.ownerRepo.GetByKey(txCtx, cmd.OwnerKey)
		if err != nil {
			return err
		}
		claimant, err := uc.ownerRepo.GetByKey(txCtx, cmd.ClaimantKey)
		if err != nil {
			return err
		}

		alreadyClaimed := anonymous.Claimed()
		if err := anonymous.ClaimBy(claimant); err != nil {
			return err
		}
		if alreadyClaimed {
			return nil
		}

		if err := uc.ownerRepo.Update(txCtx, anonymous); err != nil {
			return fmt.Errorf("failed to update claimed owner: %w", err)
		}
		moved, err = uc.consumerRepo.ReassignOwner(txCtx, anonymous.ID(), claimant.ID())
		return err
	})
	if err != nil {
		uc.logger.Warnw("owner claim failed", "owner", cmd.OwnerKey, "claimant", cmd.ClaimantKey, "error", err)
		return nil, err
	}

	uc.logger.Infow("owner claimed",
		"owner", cmd.OwnerKey,
		"claimant", cmd.ClaimantKey,
		"moved_consumers", moved,
	)
	return &dto.ClaimOwnerResponse{
		Owner:          dto.ToOwnerResponse(anonymous),
		MovedConsumers: moved,
	}, nil
}
