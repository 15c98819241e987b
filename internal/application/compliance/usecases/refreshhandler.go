package usecases

import (
	"context"
	"fmt"
	"time"

	"candlepin/internal/domain/consumer"
	"candlepin/internal/domain/shared/events"
	"candlepin/internal/shared/logger"
)

const refreshTimeout = 30 * time.Second

// GuestMigrationRefresher recomputes the compliance of both hosts involved
// in a guest migration so their stored status follows the move.
type GuestMigrationRefresher struct {
	compliance *GetComplianceUseCase
	logger     logger.Interface
}

func NewGuestMigrationRefresher(compliance *GetComplianceUseCase, logger logger.Interface) *GuestMigrationRefresher {
	return &GuestMigrationRefresher{compliance: compliance, logger: logger}
}

func (h *GuestMigrationRefresher) CanHandle(eventType string) bool {
	return eventType == consumer.EventTypeGuestMigrated
}

func (h *GuestMigrationRefresher) Handle(event events.DomainEvent) error {
	migrated, ok := event.(*consumer.GuestMigratedEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T for %s", event, consumer.EventTypeGuestMigrated)
	}

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	var firstErr error
	for _, hostUUID := range []string{migrated.FromHost, migrated.ToHost} {
		if hostUUID == "" {
			continue
		}
		if _, err := h.compliance.Execute(ctx, GetComplianceQuery{ConsumerUUID: hostUUID}); err != nil {
			h.logger.Warnw("failed to refresh host compliance after guest migration",
				"host", hostUUID,
				"guest_id", migrated.GuestID,
				"error", err,
			)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
