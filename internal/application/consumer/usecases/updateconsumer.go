package usecases

import (
	"context"
	"time"

	"candlepin/internal/application/consumer/dto"
	"candlepin/internal/domain/consumer"
	"candlepin/internal/domain/shared/events"
	"candlepin/internal/shared/db"
	"candlepin/internal/shared/logger"
	"candlepin/internal/shared/utils"
)

// UpdateConsumerCommand changes only the sections that are set. A nil
// Facts map leaves facts untouched; an empty one clears them.
type UpdateConsumerCommand struct {
	UUID              string
	Name              *string
	InstalledProducts *[]consumer.InstalledProduct
	Facts             map[string]string
	SystemPurpose     *consumer.SystemPurpose
	GuestIDs          *[]consumer.GuestID
}

type UpdateConsumerUseCase struct {
	consumerRepo consumer.Repository
	guests       *consumer.GuestMigrationService
	txMgr        db.Transactor
	publisher    events.EventPublisher
	logger       logger.Interface
	now          func() time.Time
}

func NewUpdateConsumerUseCase(
	consumerRepo consumer.Repository,
	txMgr db.Transactor,
	publisher events.EventPublisher,
	logger logger.Interface,
) *UpdateConsumerUseCase {
	return &UpdateConsumerUseCase{
		consumerRepo: consumerRepo,
		guests:       consumer.NewGuestMigrationService(consumerRepo),
		txMgr:        txMgr,
		publisher:    publisher,
		logger:       logger,
		now:          time.Now,
	}
}

func (uc *UpdateConsumerUseCase) Execute(ctx context.Context, cmd UpdateConsumerCommand) (*dto.ConsumerResponse, error) {
	var (
		c        *consumer.Consumer
		changed  bool
		migrated []events.DomainEvent
	)

	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		c, err = uc.consumerRepo.GetByUUID(txCtx, cmd.UUID)
		if err != nil {
			return err
		}

		now := uc.now()
		if cmd.Name != nil {
			renamed, err := c.SetName(utils.SanitizeText(*cmd.Name), now)
			if err != nil {
				return err
			}
			changed = changed || renamed
		}
		if cmd.InstalledProducts != nil {
			changed = c.SetInstalledProducts(*cmd.InstalledProducts, now) || changed
		}
		if cmd.Facts != nil {
			changed = c.SetFacts(cmd.Facts, now) || changed
		}
		if cmd.SystemPurpose != nil {
			changed = c.SetSystemPurpose(*cmd.SystemPurpose, now) || changed
		}
		if cmd.GuestIDs != nil {
			var guestsChanged bool
			guestsChanged, migrated, err = uc.guests.ReplaceGuests(txCtx, c, *cmd.GuestIDs, now)
			if err != nil {
				return err
			}
			changed = guestsChanged || changed
		}

		c.CheckIn(now)
		if err := uc.consumerRepo.Update(txCtx, c); err != nil {
			return wrapUpdateErr(cmd.UUID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishAfterCommit(uc.publisher, uc.logger, migrated)

	if changed {
		uc.logger.Infow("consumer updated", "uuid", c.UUID(), "migrated_guests", len(migrated))
	}
	return dto.ToConsumerResponse(c), nil
}
