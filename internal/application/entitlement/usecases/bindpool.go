package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"candlepin/internal/application/entitlement/dto"
	"candlepin/internal/domain/consumer"
	"candlepin/internal/domain/entitlement"
	"candlepin/internal/domain/pool"
	"candlepin/internal/shared/db"
	apperrors "candlepin/internal/shared/errors"
	"candlepin/internal/shared/logger"
)

type BindPoolCommand struct {
	ConsumerUUID string
	PoolID       uint
	Quantity     int64
}

// BindPoolUseCase consumes pool capacity and creates one entitlement in a
// single transaction. Binds on the same pool are serialized by a row lock
// plus a versioned update; a lost race is retried once.
type BindPoolUseCase struct {
	consumerRepo    consumer.Repository
	poolRepo        pool.Repository
	entitlementRepo entitlement.Repository
	txMgr           db.Transactor
	observer        BindObserver
	logger          logger.Interface
	now             func() time.Time
}

func NewBindPoolUseCase(
	consumerRepo consumer.Repository,
	poolRepo pool.Repository,
	entitlementRepo entitlement.Repository,
	txMgr db.Transactor,
	observer BindObserver,
	logger logger.Interface,
) *BindPoolUseCase {
	if observer == nil {
		observer = nopBindObserver{}
	}
	return &BindPoolUseCase{
		consumerRepo:    consumerRepo,
		poolRepo:        poolRepo,
		entitlementRepo: entitlementRepo,
		txMgr:           txMgr,
		observer:        observer,
		logger:          logger,
		now:             time.Now,
	}
}

func (uc *BindPoolUseCase) Execute(ctx context.Context, cmd BindPoolCommand) (*dto.EntitlementResponse, error) {
	if cmd.Quantity < 1 {
		return nil, apperrors.NewValidationError("quantity must be at least 1")
	}
	if cmd.PoolID == 0 {
		return nil, apperrors.NewValidationError("pool id is required")
	}

	c, err := uc.consumerRepo.GetByUUID(ctx, cmd.ConsumerUUID)
	if err != nil {
		return nil, err
	}

	var (
		bound *entitlement.Entitlement
		p     *pool.Pool
	)
	err = runWithPoolRetry(ctx, uc.txMgr, uc.logger, cmd.PoolID, func(txCtx context.Context) error {
		var err error
		p, err = uc.poolRepo.GetForUpdate(txCtx, cmd.PoolID)
		if err != nil {
			return err
		}
		// Pools of other owners are invisible to the consumer.
		if p.OwnerID() != c.OwnerID() {
			return pool.ErrPoolNotFound(cmd.PoolID)
		}

		if err := p.Consume(cmd.Quantity, uc.now().UTC()); err != nil {
			return err
		}
		if err := uc.poolRepo.SaveConsumption(txCtx, p); err != nil {
			return err
		}

		bound, err = entitlement.NewEntitlement(c.ID(), p.ID(), cmd.Quantity)
		if err != nil {
			return err
		}
		return uc.entitlementRepo.Create(txCtx, bound)
	})

	switch {
	case err == nil:
	case errors.Is(err, pool.ErrVersionConflict):
		uc.observer.ObserveBind(BindOutcomeConflict)
		uc.logger.Warnw("bind abandoned after retry", "pool_id", cmd.PoolID, "consumer_uuid", cmd.ConsumerUUID)
		return nil, apperrors.NewForbiddenError(
			"pool is being consumed concurrently; no entitlement was granted",
			fmt.Sprintf("pool_id=%d", cmd.PoolID),
		)
	case apperrors.IsForbiddenError(err) || apperrors.IsValidationError(err) || apperrors.IsNotFoundError(err):
		uc.observer.ObserveBind(BindOutcomeRejected)
		uc.logger.Infow("bind rejected", "pool_id", cmd.PoolID, "consumer_uuid", cmd.ConsumerUUID, "reason", err)
		return nil, err
	default:
		uc.observer.ObserveBind(BindOutcomeError)
		uc.logger.Errorw("bind failed", "pool_id", cmd.PoolID, "consumer_uuid", cmd.ConsumerUUID, "error", err)
		return nil, fmt.Errorf("failed to bind pool: %w", err)
	}

	uc.observer.ObserveBind(BindOutcomeSuccess)
	uc.logger.Infow("pool bound",
		"entitlement_id", bound.ID(),
		"pool_id", p.ID(),
		"consumer_uuid", c.UUID(),
		"quantity", cmd.Quantity,
		"consumed", p.Consumed(),
	)

	return dto.ToEntitlementResponse(bound, c.UUID(), p), nil
}
