package consumer

import (
	"candlepin/internal/domain/shared/events"
)

const (
	EventTypeGuestMigrated     = "guest.migrated"
	EventTypeComplianceChanged = "consumer.compliance_changed"
)

// GuestMigratedEvent is raised when a guest is attached to a host while
// another host still reported it.
type GuestMigratedEvent struct {
	events.BaseEvent
	OwnerID  uint   `json:"owner_id"`
	GuestID  string `json:"guest_id"`
	FromHost string `json:"from_host"`
	ToHost   string `json:"to_host"`
}

func NewGuestMigratedEvent(ownerID uint, guestID, fromHost, toHost string) *GuestMigratedEvent {
	return &GuestMigratedEvent{
		BaseEvent: events.NewBaseEvent(guestID, EventTypeGuestMigrated),
		OwnerID:   ownerID,
		GuestID:   guestID,
		FromHost:  fromHost,
		ToHost:    toHost,
	}
}

// ComplianceChangedEvent is raised when a consumer's compliance hash moves.
type ComplianceChangedEvent struct {
	events.BaseEvent
	ConsumerUUID string `json:"consumer_uuid"`
	Status       string `json:"status"`
	Hash         string `json:"hash"`
}

func NewComplianceChangedEvent(consumerUUID, status, hash string) *ComplianceChangedEvent {
	return &ComplianceChangedEvent{
		BaseEvent:    events.NewBaseEvent(consumerUUID, EventTypeComplianceChanged),
		ConsumerUUID: consumerUUID,
		Status:       status,
		Hash:         hash,
	}
}
