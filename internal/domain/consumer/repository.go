package consumer

import "context"

type Repository interface {
	Create(ctx context.Context, c *Consumer) error
	Update(ctx context.Context, c *Consumer) error
	GetByID(ctx context.Context, id uint) (*Consumer, error)
	// GetByUUID returns a NotFoundError for unknown uuids.
	GetByUUID(ctx context.Context, uuid string) (*Consumer, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]*Consumer, error)
	// FindGuestHosts maps each guest id to the consumer currently holding it
	// within the owner, ignoring excludeConsumerID.
	FindGuestHosts(ctx context.Context, ownerID uint, guestIDs []string, excludeConsumerID uint) (map[string]*Consumer, error)
	// UpdateComplianceStatus stores the latest compliance status and hash
	// without touching the rest of the consumer.
	UpdateComplianceStatus(ctx context.Context, id uint, status, hash string) error
	// ReassignOwner moves every consumer of fromOwnerID to toOwnerID.
	ReassignOwner(ctx context.Context, fromOwnerID, toOwnerID uint) (int64, error)
}

// ContentOverrideRepository stores per-consumer content overrides keyed by
// (content label, name).
type ContentOverrideRepository interface {
	Upsert(ctx context.Context, consumerID uint, o ContentOverride) error
	Delete(ctx context.Context, consumerID uint, label, name string) (bool, error)
	DeleteAll(ctx context.Context, consumerID uint) error
	List(ctx context.Context, consumerID uint) ([]ContentOverride, error)
}
