package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"candlepin/internal/application/consumer/dto"
	"candlepin/internal/domain/consumer"
	"candlepin/internal/domain/owner"
	"candlepin/internal/domain/shared/events"
	"candlepin/internal/shared/db"
	"candlepin/internal/shared/logger"
	"candlepin/internal/shared/utils"
)

type RegisterConsumerCommand struct {
	OwnerKey string
	// UUID is generated when empty.
	UUID              string
	Name              string
	Type              string
	InstalledProducts []consumer.InstalledProduct
	Facts             map[string]string
	SystemPurpose     *consumer.SystemPurpose
	GuestIDs          []consumer.GuestID
}

type RegisterConsumerUseCase struct {
	ownerRepo    owner.Repository
	consumerRepo consumer.Repository
	guests       *consumer.GuestMigrationService
	txMgr        db.Transactor
	publisher    events.EventPublisher
	logger       logger.Interface
	now          func() time.Time
}

func NewRegisterConsumerUseCase(
	ownerRepo owner.Repository,
	consumerRepo consumer.Repository,
	txMgr db.Transactor,
	publisher events.EventPublisher,
	logger logger.Interface,
) *RegisterConsumerUseCase {
	return &RegisterConsumerUseCase{
		ownerRepo:    ownerRepo,
		consumerRepo: consumerRepo,
		guests:       consumer.NewGuestMigrationService(consumerRepo),
		txMgr:        txMgr,
		publisher:    publisher,
		logger:       logger,
		now:          time.Now,
	}
}

func (uc *RegisterConsumerUseCase) Execute(ctx context.Context, cmd RegisterConsumerCommand) (*dto.ConsumerResponse, error) {
	consumerType, err := consumer.ParseType(cmd.Type)
	if err != nil {
		return nil, err
	}
	id := cmd.UUID
	if id == "" {
		id = uuid.NewString()
	}

	var (
		c        *consumer.Consumer
		migrated []events.DomainEvent
	)
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		o, err := uc.ownerRepo.GetByKey(txCtx, cmd.OwnerKey)
		if err != nil {
			return err
		}

		c, err = consumer.NewConsumer(id, utils.SanitizeText(cmd.Name), o.ID(), consumerType)
		if err != nil {
			return err
		}

		now := uc.now()
		c.SetInstalledProducts(cmd.InstalledProducts, now)
		c.SetFacts(cmd.Facts, now)
		if cmd.SystemPurpose != nil {
			c.SetSystemPurpose(*cmd.SystemPurpose, now)
		}
		c.CheckIn(now)

		if _, migrated, err = uc.guests.ReplaceGuests(txCtx, c, cmd.GuestIDs, now); err != nil {
			return err
		}
		return uc.consumerRepo.Create(txCtx, c)
	})
	if err != nil {
		uc.logger.Warnw("consumer registration failed", "owner", cmd.OwnerKey, "uuid", id, "error", err)
		return nil, err
	}

	publishAfterCommit(uc.publisher, uc.logger, migrated)

	uc.logger.Infow("consumer registered",
		"uuid", c.UUID(),
		"owner", cmd.OwnerKey,
		"type", c.Type(),
		"guests", len(c.GuestIDs()),
		"migrated_guests", len(migrated),
	)
	return dto.ToConsumerResponse(c), nil
}

// GetConsumerUseCase loads a consumer by uuid.
type GetConsumerUseCase struct {
	consumerRepo consumer.Repository
	logger       logger.Interface
}

func NewGetConsumerUseCase(consumerRepo consumer.Repository, logger logger.Interface) *GetConsumerUseCase {
	return &GetConsumerUseCase{consumerRepo: consumerRepo, logger: logger}
}

func (uc *GetConsumerUseCase) Execute(ctx context.Context, consumerUUID string) (*dto.ConsumerResponse, error) {
	c, err := uc.consumerRepo.GetByUUID(ctx, consumerUUID)
	if err != nil {
		return nil, err
	}
	return dto.ToConsumerResponse(c), nil
}

func wrapUpdateErr(consumerUUID string, err error) error {
	return fmt.Errorf("failed to update consumer %s: %w", consumerUUID, err)
}
