package entitlement

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, e *Entitlement) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Entitlement, error)
	ListByConsumer(ctx context.Context, consumerID uint) ([]*Entitlement, error)
	CountByPool(ctx context.Context, poolID uint) (int64, error)
	// ListExpired returns entitlements whose pool ended before now.
	ListExpired(ctx context.Context, now time.Time, limit int) ([]*Entitlement, error)
}
