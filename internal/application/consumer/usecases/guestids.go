package usecases

import (
	"context"
	"time"

	"candlepin/internal/application/consumer/dto"
	"candlepin/internal/domain/consumer"
	"candlepin/internal/domain/shared/events"
	"candlepin/internal/shared/db"
	"candlepin/internal/shared/logger"
)

type PutGuestCommand struct {
	ConsumerUUID string
	GuestID      string
	Attributes   map[string]string
}

// PutGuestUseCase adds one guest to a host or replaces its attributes. A
// guest held by another host of the same owner moves to this one.
type PutGuestUseCase struct {
	consumerRepo consumer.Repository
	guests       *consumer.GuestMigrationService
	txMgr        db.Transactor
	publisher    events.EventPublisher
	logger       logger.Interface
	now          func() time.Time
}

func NewPutGuestUseCase(
	consumerRepo consumer.Repository,
	txMgr db.Transactor,
	publisher events.EventPublisher,
	logger logger.Interface,
) *PutGuestUseCase {
	return &PutGuestUseCase{
		consumerRepo: consumerRepo,
		guests:       consumer.NewGuestMigrationService(consumerRepo),
		txMgr:        txMgr,
		publisher:    publisher,
		logger:       logger,
		now:          time.Now,
	}
}

func (uc *PutGuestUseCase) Execute(ctx context.Context, cmd PutGuestCommand) (*dto.ConsumerResponse, error) {
	var (
		host     *consumer.Consumer
		migrated []events.DomainEvent
	)

	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		host, err = uc.consumerRepo.GetByUUID(txCtx, cmd.ConsumerUUID)
		if err != nil {
			return err
		}

		var changed bool
		changed, migrated, err = uc.guests.AttachGuest(txCtx, host, consumer.NewGuestID(cmd.GuestID, cmd.Attributes), uc.now())
		if err != nil || !changed {
			return err
		}
		if err := uc.consumerRepo.Update(txCtx, host); err != nil {
			return wrapUpdateErr(cmd.ConsumerUUID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishAfterCommit(uc.publisher, uc.logger, migrated)
	return dto.ToConsumerResponse(host), nil
}

type DeleteGuestCommand struct {
	ConsumerUUID string
	GuestID      string
}

type DeleteGuestUseCase struct {
	consumerRepo consumer.Repository
	txMgr        db.Transactor
	logger       logger.Interface
	now          func() time.Time
}

func NewDeleteGuestUseCase(consumerRepo consumer.Repository, txMgr db.Transactor, logger logger.Interface) *DeleteGuestUseCase {
	return &DeleteGuestUseCase{
		consumerRepo: consumerRepo,
		txMgr:        txMgr,
		logger:       logger,
		now:          time.Now,
	}
}

func (uc *DeleteGuestUseCase) Execute(ctx context.Context, cmd DeleteGuestCommand) error {
	return uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		host, err := uc.consumerRepo.GetByUUID(txCtx, cmd.ConsumerUUID)
		if err != nil {
			return err
		}
		if !host.RemoveGuest(cmd.GuestID, uc.now()) {
			return consumer.ErrGuestNotFound(cmd.ConsumerUUID, cmd.GuestID)
		}
		if err := uc.consumerRepo.Update(txCtx, host); err != nil {
			return wrapUpdateErr(cmd.ConsumerUUID, err)
		}
		uc.logger.Infow("guest removed from host", "uuid", cmd.ConsumerUUID, "guest_id", cmd.GuestID)
		return nil
	})
}
