package pool

import (
	"fmt"
	"time"

	"candlepin/internal/shared/errors"
)

// Unlimited is the quantity of a pool without a capacity limit.
const Unlimited int64 = -1

// Pool is a bounded grant of entitlement capacity for a product.
type Pool struct {
	id                 uint
	ownerID            uint
	productID          string
	providedProductIDs []string
	quantity           int64
	consumed           int64
	startDate          time.Time
	endDate            time.Time
	createdAt          time.Time
	updatedAt          time.Time
	version            int
}

// NewPool creates a pool. A negative quantity means unlimited.
func NewPool(ownerID uint, productID string, providedProductIDs []string, quantity int64, start, end time.Time) (*Pool, error) {
	if ownerID == 0 {
		return nil, errors.NewValidationError("pool owner is required")
	}
	if productID == "" {
		return nil, errors.NewValidationError("pool product is required")
	}
	if start.IsZero() || end.IsZero() {
		return nil, errors.NewValidationError("pool start and end dates are required")
	}
	if end.Before(start) {
		return nil, errors.NewValidationError("pool end date must not be before its start date")
	}
	if quantity < 0 {
		quantity = Unlimited
	}

	now := time.Now().UTC()
	return &Pool{
		ownerID:            ownerID,
		productID:          productID,
		providedProductIDs: append([]string(nil), providedProductIDs...),
		quantity:           quantity,
		startDate:          start.UTC(),
		endDate:            end.UTC(),
		createdAt:          now,
		updatedAt:          now,
		version:            1,
	}, nil
}

// PoolReconstructParams carries persisted pool state.
type PoolReconstructParams struct {
	ID                 uint
	OwnerID            uint
	ProductID          string
	ProvidedProductIDs []string
	Quantity           int64
	Consumed           int64
	StartDate          time.Time
	EndDate            time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Version            int
}

func ReconstructPool(p PoolReconstructParams) (*Pool, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("pool ID cannot be zero")
	}
	if p.Consumed < 0 {
		return nil, fmt.Errorf("pool %d has negative consumption %d", p.ID, p.Consumed)
	}
	return &Pool{
		id:                 p.ID,
		ownerID:            p.OwnerID,
		productID:          p.ProductID,
		providedProductIDs: append([]string(nil), p.ProvidedProductIDs...),
		quantity:           p.Quantity,
		consumed:           p.Consumed,
		startDate:          p.StartDate,
		endDate:            p.EndDate,
		createdAt:          p.CreatedAt,
		updatedAt:          p.UpdatedAt,
		version:            p.Version,
	}, nil
}

func (p *Pool) ID() uint                     { return p.id }
func (p *Pool) OwnerID() uint                { return p.ownerID }
func (p *Pool) ProductID() string            { return p.productID }
func (p *Pool) ProvidedProductIDs() []string { return append([]string(nil), p.providedProductIDs...) }
func (p *Pool) Quantity() int64              { return p.quantity }
func (p *Pool) Consumed() int64              { return p.consumed }
func (p *Pool) StartDate() time.Time         { return p.startDate }
func (p *Pool) EndDate() time.Time           { return p.endDate }
func (p *Pool) CreatedAt() time.Time         { return p.createdAt }
func (p *Pool) UpdatedAt() time.Time         { return p.updatedAt }
func (p *Pool) Version() int                 { return p.version }

// SetID sets the ID after persistence
func (p *Pool) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("pool ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("pool ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Pool) IsUnlimited() bool {
	return p.quantity < 0
}

// Available returns the remaining capacity, or -1 for unlimited pools.
func (p *Pool) Available() int64 {
	if p.IsUnlimited() {
		return Unlimited
	}
	return p.quantity - p.consumed
}

// IsActiveOn reports whether t lies within [start, end].
func (p *Pool) IsActiveOn(t time.Time) bool {
	return !t.Before(p.startDate) && !t.After(p.endDate)
}

func (p *Pool) IsExpired(t time.Time) bool {
	return t.After(p.endDate)
}

// Provides reports whether the pool covers productID, either as its own
// product or as a provided product.
func (p *Pool) Provides(productID string) bool {
	if p.productID == productID {
		return true
	}
	for _, id := range p.providedProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// Consume reserves quantity units at time now. It fails with a
// ForbiddenError when now is outside the validity window or when the pool
// lacks capacity, leaving the pool untouched.
func (p *Pool) Consume(quantity int64, now time.Time) error {
	if quantity < 1 {
		return errors.NewValidationError("quantity must be at least 1")
	}
	if !p.IsActiveOn(now) {
		if now.Before(p.startDate) {
			return ErrPoolNotYetActive(p.id, p.startDate)
		}
		return ErrPoolExpired(p.id, p.endDate)
	}
	if !p.IsUnlimited() && p.consumed+quantity > p.quantity {
		return ErrCapacityExceeded(p.id, quantity, p.Available())
	}

	p.consumed += quantity
	p.updatedAt = now.UTC()
	return nil
}

// Release returns quantity units to the pool.
func (p *Pool) Release(quantity int64) {
	p.consumed -= quantity
	if p.consumed < 0 {
		p.consumed = 0
	}
	p.updatedAt = time.Now().UTC()
}

// MarkSaved bumps the version after a successful conditional update.
func (p *Pool) MarkSaved() {
	p.version++
}
