package usecases

import (
	"context"
	"sync"
	"time"

	"candlepin/internal/domain/consumer"
	"candlepin/internal/domain/entitlement"
	"candlepin/internal/domain/owner"
	"candlepin/internal/domain/pool"
	"candlepin/internal/domain/product"
	"candlepin/internal/domain/shared/events"
)

// switchableOwnerRepository returns an owner rebuilt from the current mode
// on every lookup, like a fresh database read.
type switchableOwnerRepository struct {
	owner.Repository
	mu   sync.Mutex
	mode string
}

func (r *switchableOwnerRepository) setMode(mode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mode = mode
}

func (r *switchableOwnerRepository) GetByID(ctx context.Context, id uint) (*owner.Owner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id != 1 {
		return nil, owner.ErrOwnerIDNotFound(id)
	}
	return owner.ReconstructOwner(owner.OwnerReconstructParams{ID: 1, Key: "acme", ContentAccessMode: r.mode})
}

type mockConsumerRepository struct {
	consumer.Repository
	consumers        map[string]*consumer.Consumer
	complianceWrites int
}

func (m *mockConsumerRepository) GetByUUID(ctx context.Context, uuid string) (*consumer.Consumer, error) {
	c, ok := m.consumers[uuid]
	if !ok {
		return nil, consumer.ErrConsumerNotFound(uuid)
	}
	return c, nil
}

func (m *mockConsumerRepository) UpdateComplianceStatus(ctx context.Context, id uint, status, hash string) error {
	m.complianceWrites++
	return nil
}

type mockEntitlementRepository struct {
	entitlement.Repository
	byConsumer map[uint][]*entitlement.Entitlement
}

func (m *mockEntitlementRepository) ListByConsumer(ctx context.Context, consumerID uint) ([]*entitlement.Entitlement, error) {
	return m.byConsumer[consumerID], nil
}

type mockPoolRepository struct {
	pool.Repository
	pools map[uint]*pool.Pool
}

func (m *mockPoolRepository) GetByIDs(ctx context.Context, ids []uint) ([]*pool.Pool, error) {
	var out []*pool.Pool
	for _, id := range ids {
		if p, ok := m.pools[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type mockProductRepository struct {
	product.Repository
	products map[string]*product.Product
}

func (m *mockProductRepository) GetByIDs(ctx context.Context, ownerID uint, ids []string) ([]*product.Product, error) {
	var out []*product.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type recordingPublisher struct {
	events []events.DomainEvent
}

func (p *recordingPublisher) Publish(event events.DomainEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) PublishAll(evts []events.DomainEvent) error {
	p.events = append(p.events, evts...)
	return nil
}

var (
	poolStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	poolEnd   = time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	evalNow   = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
)
