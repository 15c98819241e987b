package usecases

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"candlepin/internal/application/hypervisor/dto"
	"candlepin/internal/domain/consumer"
	"candlepin/internal/domain/owner"
	"candlepin/internal/domain/permission"
	"candlepin/internal/domain/shared/events"
	"candlepin/internal/shared/db"
	apperrors "candlepin/internal/shared/errors"
	"candlepin/internal/shared/logger"
)

// defaultHostFacts are set on host consumers created by a check-in.
var defaultHostFacts = map[string]string{"uname.machine": "x86_64"}

type CheckInCommand struct {
	OwnerKey  string
	Principal string
	// Hosts maps hypervisor ids to the guest ids they report.
	Hosts map[string][]string
	// CreateMissing registers unknown hosts instead of failing them.
	CreateMissing bool
}

type hostOutcome struct {
	kind     string
	host     *consumer.Consumer
	migrated []events.DomainEvent
}

// CheckInUseCase reconciles a hypervisor report with the registered host
// consumers. Every host runs in its own transaction; a failing host is
// reported and never affects the others.
type CheckInUseCase struct {
	ownerRepo    owner.Repository
	consumerRepo consumer.Repository
	guests       *consumer.GuestMigrationService
	enforcer     permission.PermissionEnforcer
	txMgr        db.Transactor
	publisher    events.EventPublisher
	observer     CheckinObserver
	logger       logger.Interface
	now          func() time.Time
}

func NewCheckInUseCase(
	ownerRepo owner.Repository,
	consumerRepo consumer.Repository,
	enforcer permission.PermissionEnforcer,
	txMgr db.Transactor,
	publisher events.EventPublisher,
	observer CheckinObserver,
	logger logger.Interface,
) *CheckInUseCase {
	if observer == nil {
		observer = nopCheckinObserver{}
	}
	return &CheckInUseCase{
		ownerRepo:    ownerRepo,
		consumerRepo: consumerRepo,
		guests:       consumer.NewGuestMigrationService(consumerRepo),
		enforcer:     enforcer,
		txMgr:        txMgr,
		publisher:    publisher,
		observer:     observer,
		logger:       logger,
		now:          time.Now,
	}
}

func (uc *CheckInUseCase) Execute(ctx context.Context, cmd CheckInCommand) (*dto.CheckInResult, error) {
	if cmd.Hosts == nil {
		return nil, apperrors.NewBadRequestError("host to guest mapping was not provided for hypervisor check-in")
	}

	// Reporting on existing hosts needs READ; creating a host needs ALL and
	// is checked per host.
	allowed, err := uc.enforcer.Enforce(cmd.Principal, cmd.OwnerKey, permission.AccessRead)
	if err != nil {
		return nil, fmt.Errorf("failed to check owner access: %w", err)
	}
	if !allowed {
		return nil, apperrors.NewForbiddenError(
			fmt.Sprintf("principal %q may not report hypervisors in org %q", cmd.Principal, cmd.OwnerKey),
		)
	}

	hostIDs := make([]string, 0, len(cmd.Hosts))
	for id := range cmd.Hosts {
		if strings.TrimSpace(id) == "" {
			uc.logger.Warnw("ignoring empty hypervisor id", "owner", cmd.OwnerKey)
			continue
		}
		hostIDs = append(hostIDs, id)
	}
	sort.Strings(hostIDs)

	result := &dto.CheckInResult{
		Created:   []dto.HostResponse{},
		Updated:   []dto.HostResponse{},
		Unchanged: []dto.HostResponse{},
		Failed:    []string{},
	}

	for _, hostID := range hostIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		outcome, err := uc.checkInHost(ctx, cmd, hostID, cmd.Hosts[hostID])
		if err != nil {
			uc.observer.ObserveHostCheckin(HostOutcomeFailed)
			uc.logger.Warnw("hypervisor host check-in failed", "owner", cmd.OwnerKey, "host", hostID, "error", err)
			result.Failed = append(result.Failed, fmt.Sprintf("%s: %s", hostID, failureMessage(err)))
			continue
		}

		uc.observer.ObserveHostCheckin(outcome.kind)
		resp := toHostResponse(outcome.host)
		switch outcome.kind {
		case HostOutcomeCreated:
			result.Created = append(result.Created, resp)
		case HostOutcomeUpdated:
			result.Updated = append(result.Updated, resp)
		default:
			result.Unchanged = append(result.Unchanged, resp)
		}

		if uc.publisher != nil && len(outcome.migrated) > 0 {
			if err := uc.publisher.PublishAll(outcome.migrated); err != nil {
				uc.logger.Warnw("failed to publish guest migrations", "host", hostID, "error", err)
			}
		}
	}

	uc.logger.Infow("hypervisor check-in processed",
		"owner", cmd.OwnerKey,
		"principal", cmd.Principal,
		"created", len(result.Created),
		"updated", len(result.Updated),
		"unchanged", len(result.Unchanged),
		"failed", len(result.Failed),
	)
	return result, nil
}

func (uc *CheckInUseCase) checkInHost(ctx context.Context, cmd CheckInCommand, hostID string, guestIDs []string) (*hostOutcome, error) {
	out := &hostOutcome{}

	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		o, err := uc.ownerRepo.GetByKey(txCtx, cmd.OwnerKey)
		if err != nil {
			return err
		}

		now := uc.now()
		guests := consumer.GuestIDsFromStrings(guestIDs)

		host, err := uc.consumerRepo.GetByUUID(txCtx, hostID)
		switch {
		case apperrors.IsNotFoundError(err):
			host, out.migrated, err = uc.createHost(txCtx, cmd, o, hostID, guests, now)
			if err != nil {
				return err
			}
			out.kind = HostOutcomeCreated
			out.host = host
			return nil
		case err != nil:
			return err
		}

		if host.OwnerID() != o.ID() {
			return apperrors.NewForbiddenError("hypervisor is registered to a different owner", hostID)
		}

		converted := host.ConvertTo(consumer.TypeHypervisor, now)
		guestsChanged, migrated, err := uc.guests.ReplaceGuests(txCtx, host, guests, now)
		if err != nil {
			return err
		}
		host.CheckIn(now)
		if err := uc.consumerRepo.Update(txCtx, host); err != nil {
			return fmt.Errorf("failed to update host consumer: %w", err)
		}

		out.host = host
		out.migrated = migrated
		out.kind = HostOutcomeUnchanged
		if converted || guestsChanged {
			out.kind = HostOutcomeUpdated
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *CheckInUseCase) createHost(
	ctx context.Context,
	cmd CheckInCommand,
	o *owner.Owner,
	hostID string,
	guests []consumer.GuestID,
	now time.Time,
) (*consumer.Consumer, []events.DomainEvent, error) {
	if !cmd.CreateMissing {
		return nil, nil, apperrors.NewNotFoundError(fmt.Sprintf("unable to find hypervisor in org %q", o.Key()))
	}

	allowed, err := uc.enforcer.Enforce(cmd.Principal, o.Key(), permission.AccessAll)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check owner access: %w", err)
	}
	if !allowed {
		return nil, nil, apperrors.NewForbiddenError(
			fmt.Sprintf("principal %q may not register hypervisors in org %q", cmd.Principal, o.Key()),
		)
	}

	host, err := consumer.NewConsumer(hostID, hostID, o.ID(), consumer.TypeHypervisor)
	if err != nil {
		return nil, nil, err
	}
	host.SetFacts(defaultHostFacts, now)
	_, migrated, err := uc.guests.ReplaceGuests(ctx, host, guests, now)
	if err != nil {
		return nil, nil, err
	}
	host.CheckIn(now)

	if err := uc.consumerRepo.Create(ctx, host); err != nil {
		return nil, nil, err
	}
	return host, migrated, nil
}

// failureMessage keeps the human readable part of application errors.
func failureMessage(err error) string {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return appErr.Message
	}
	return err.Error()
}

func toHostResponse(c *consumer.Consumer) dto.HostResponse {
	return dto.HostResponse{
		UUID:       c.UUID(),
		Name:       c.Name(),
		GuestCount: len(c.GuestIDs()),
	}
}
