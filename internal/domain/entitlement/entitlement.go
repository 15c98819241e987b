package entitlement

import (
	"fmt"
	"time"

	"candlepin/internal/shared/errors"
)

// Entitlement binds a consumer to quantity units of a pool.
type Entitlement struct {
	id         uint
	consumerID uint
	poolID     uint
	quantity   int64
	createdAt  time.Time
	updatedAt  time.Time
}

func NewEntitlement(consumerID, poolID uint, quantity int64) (*Entitlement, error) {
	if consumerID == 0 {
		return nil, errors.NewValidationError("entitlement consumer is required")
	}
	if poolID == 0 {
		return nil, errors.NewValidationError("entitlement pool is required")
	}
	if quantity < 1 {
		return nil, errors.NewValidationError("quantity must be at least 1")
	}

	now := time.Now().UTC()
	return &Entitlement{
		consumerID: consumerID,
		poolID:     poolID,
		quantity:   quantity,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructEntitlement(id, consumerID, poolID uint, quantity int64, createdAt, updatedAt time.Time) (*Entitlement, error) {
	if id == 0 {
		return nil, fmt.Errorf("entitlement ID cannot be zero")
	}
	return &Entitlement{
		id:         id,
		consumerID: consumerID,
		poolID:     poolID,
		quantity:   quantity,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (e *Entitlement) ID() uint             { return e.id }
func (e *Entitlement) ConsumerID() uint     { return e.consumerID }
func (e *Entitlement) PoolID() uint         { return e.poolID }
func (e *Entitlement) Quantity() int64      { return e.quantity }
func (e *Entitlement) CreatedAt() time.Time { return e.createdAt }
func (e *Entitlement) UpdatedAt() time.Time { return e.updatedAt }

// SetID sets the ID after persistence
func (e *Entitlement) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("entitlement ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("entitlement ID cannot be zero")
	}
	e.id = id
	return nil
}

func ErrEntitlementNotFound(id uint) error {
	return errors.NewNotFoundError("entitlement not found", fmt.Sprintf("entitlement_id=%d", id))
}
