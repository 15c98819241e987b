package pool

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, p *Pool) error
	GetByID(ctx context.Context, id uint) (*Pool, error)
	// GetForUpdate reads the pool holding a row lock for the rest of the
	// surrounding transaction where the database supports it.
	GetForUpdate(ctx context.Context, id uint) (*Pool, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*Pool, error)
	ListByOwner(ctx context.Context, ownerID uint, activeOn *time.Time) ([]*Pool, error)
	// SaveConsumption writes the consumed count guarded by the version the
	// pool was read with. ErrVersionConflict is returned when no row matched.
	SaveConsumption(ctx context.Context, p *Pool) error
}
