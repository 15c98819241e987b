package usecases

import (
	"context"
	"sync"

	"candlepin/internal/domain/consumer"
	"candlepin/internal/domain/owner"
	"candlepin/internal/domain/permission"
	"candlepin/internal/domain/shared/events"
	"candlepin/internal/shared/errors"
)

type mockOwnerRepository struct {
	owner.Repository
	GetByKeyFunc func(ctx context.Context, key string) (*owner.Owner, error)
}

func (m *mockOwnerRepository) GetByKey(ctx context.Context, key string) (*owner.Owner, error) {
	return m.GetByKeyFunc(ctx, key)
}

// fakeConsumerRepository keeps consumers in memory keyed by uuid.
type fakeConsumerRepository struct {
	consumer.Repository
	mu     sync.Mutex
	byUUID map[string]*consumer.Consumer
	nextID uint
}

func newFakeConsumerRepository() *fakeConsumerRepository {
	return &fakeConsumerRepository{byUUID: make(map[string]*consumer.Consumer)}
}

func (r *fakeConsumerRepository) Create(ctx context.Context, c *consumer.Consumer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	if err := c.SetID(r.nextID); err != nil {
		return err
	}
	r.byUUID[c.UUID()] = c
	return nil
}

func (r *fakeConsumerRepository) Update(ctx context.Context, c *consumer.Consumer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUUID[c.UUID()] = c
	return nil
}

func (r *fakeConsumerRepository) GetByUUID(ctx context.Context, uuid string) (*consumer.Consumer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byUUID[uuid]
	if !ok {
		return nil, consumer.ErrConsumerNotFound(uuid)
	}
	return c, nil
}

func (r *fakeConsumerRepository) FindGuestHosts(ctx context.Context, ownerID uint, guestIDs []string, excludeConsumerID uint) (map[string]*consumer.Consumer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	hosts := make(map[string]*consumer.Consumer)
	for _, c := range r.byUUID {
		if c.OwnerID() != ownerID || c.ID() == excludeConsumerID {
			continue
		}
		for _, id := range guestIDs {
			if c.HasGuest(id) {
				hosts[id] = c
			}
		}
	}
	return hosts, nil
}

// mockEnforcer grants each principal one access level on every owner.
// ALL implies READ.
type mockEnforcer struct {
	permission.PermissionEnforcer
	grants map[string]permission.Access
}

func (m *mockEnforcer) Enforce(principal, ownerKey string, access permission.Access) (bool, error) {
	granted, ok := m.grants[principal]
	return ok && (granted == permission.AccessAll || granted == access), nil
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

type recordingObserver struct {
	outcomes map[string]int
}

func (o *recordingObserver) ObserveHostCheckin(outcome string) {
	if o.outcomes == nil {
		o.outcomes = make(map[string]int)
	}
	o.outcomes[outcome]++
}

type passthroughTransactor struct{}

func (passthroughTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// failingTransactor fails every transaction whose call number is listed.
type failingTransactor struct {
	calls  int
	failOn map[int]bool
}

func (t *failingTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	if t.failOn[t.calls] {
		return errors.NewInternalError("database unavailable")
	}
	return fn(ctx)
}
