package consumer

import (
	"context"
	"fmt"
	"time"

	"candlepin/internal/domain/shared/events"
)

// GuestMigrationService attaches guests to a host and detaches them from
// any other host in the same owner, emitting one event per moved guest.
type GuestMigrationService struct {
	repo Repository
}

func NewGuestMigrationService(repo Repository) *GuestMigrationService {
	return &GuestMigrationService{repo: repo}
}

// ReplaceGuests sets the host's guest list. Previous hosts of newly attached
// guests are updated in place. The host itself is not persisted here.
func (s *GuestMigrationService) ReplaceGuests(ctx context.Context, host *Consumer, guests []GuestID, now time.Time) (bool, []events.DomainEvent, error) {
	previous := make(map[string]bool, len(host.guestIDs))
	for _, g := range host.guestIDs {
		previous[g.ID] = true
	}

	if !host.SetGuestIDs(guests, now) {
		return false, nil, nil
	}

	var attached []string
	for _, g := range host.guestIDs {
		if !previous[g.ID] {
			attached = append(attached, g.ID)
		}
	}

	migrated, err := s.detachFromOtherHosts(ctx, host, attached, now)
	return true, migrated, err
}

// AttachGuest adds or updates a single guest on the host.
func (s *GuestMigrationService) AttachGuest(ctx context.Context, host *Consumer, guest GuestID, now time.Time) (bool, []events.DomainEvent, error) {
	isNew := !host.HasGuest(guest.ID)
	changed, err := host.UpsertGuest(guest, now)
	if err != nil || !changed || !isNew {
		return changed, nil, err
	}

	migrated, err := s.detachFromOtherHosts(ctx, host, []string{guest.ID}, now)
	return true, migrated, err
}

func (s *GuestMigrationService) detachFromOtherHosts(ctx context.Context, host *Consumer, guestIDs []string, now time.Time) ([]events.DomainEvent, error) {
	if len(guestIDs) == 0 {
		return nil, nil
	}

	holders, err := s.repo.FindGuestHosts(ctx, host.OwnerID(), guestIDs, host.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to look up guest hosts: %w", err)
	}

	var migrated []events.DomainEvent
	touched := make(map[uint]*Consumer)
	for _, guestID := range guestIDs {
		from, ok := holders[guestID]
		if !ok {
			continue
		}
		if prev, seen := touched[from.ID()]; seen {
			from = prev
		}
		if from.RemoveGuest(guestID, now) {
			touched[from.ID()] = from
			migrated = append(migrated, NewGuestMigratedEvent(host.OwnerID(), guestID, from.UUID(), host.UUID()))
		}
	}

	for _, from := range touched {
		if err := s.repo.Update(ctx, from); err != nil {
			return nil, fmt.Errorf("failed to detach guests from host %s: %w", from.UUID(), err)
		}
	}

	return migrated, nil
}
