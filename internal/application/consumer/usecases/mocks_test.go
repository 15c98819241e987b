package usecases

import (
	"context"
	"sort"
	"sync"

	"candlepin/internal/domain/consumer"
	"candlepin/internal/domain/owner"
	"candlepin/internal/domain/shared/events"
	"candlepin/internal/shared/errors"
)

type mockOwnerRepository struct {
	owner.Repository
	GetByKeyFunc func(ctx context.Context, key string) (*owner.Owner, error)
}

func (m *mockOwnerRepository) GetByKey(ctx context.Context, key string) (*owner.Owner, error) {
	if m.GetByKeyFunc != nil {
		return m.GetByKeyFunc(ctx, key)
	}
	return nil, owner.ErrOwnerNotFound(key)
}

// fakeConsumerRepository keeps consumers in memory and answers guest host
// lookups by scanning every stored host.
type fakeConsumerRepository struct {
	mu      sync.Mutex
	byUUID  map[string]*consumer.Consumer
	nextID  uint
	updated []string
}

func newFakeConsumerRepository() *fakeConsumerRepository {
	return &fakeConsumerRepository{byUUID: make(map[string]*consumer.Consumer)}
}

func (r *fakeConsumerRepository) Create(ctx context.Context, c *consumer.Consumer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byUUID[c.UUID()]; exists {
		return errors.NewConflictError("consumer already exists", c.UUID())
	}
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
	r.updated = append(r.updated, c.UUID())
	r.byUUID[c.UUID()] = c
	return nil
}

func (r *fakeConsumerRepository) GetByID(ctx context.Context, id uint) (*consumer.Consumer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byUUID {
		if c.ID() == id {
			return c, nil
		}
	}
	return nil, errors.NewNotFoundError("consumer not found")
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

func (r *fakeConsumerRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*consumer.Consumer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*consumer.Consumer
	for _, c := range r.byUUID {
		if c.OwnerID() == ownerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
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

func (r *fakeConsumerRepository) UpdateComplianceStatus(ctx context.Context, id uint, status, hash string) error {
	return nil
}

func (r *fakeConsumerRepository) ReassignOwner(ctx context.Context, fromOwnerID, toOwnerID uint) (int64, error) {
	return 0, nil
}

// fakeOverrideRepository stores overrides per consumer keyed by label and
// name.
type fakeOverrideRepository struct {
	overrides map[uint]map[[2]string]consumer.ContentOverride
}

func newFakeOverrideRepository() *fakeOverrideRepository {
	return &fakeOverrideRepository{overrides: make(map[uint]map[[2]string]consumer.ContentOverride)}
}

func (r *fakeOverrideRepository) Upsert(ctx context.Context, consumerID uint, o consumer.ContentOverride) error {
	if r.overrides[consumerID] == nil {
		r.overrides[consumerID] = make(map[[2]string]consumer.ContentOverride)
	}
	r.overrides[consumerID][[2]string{o.ContentLabel, o.Name}] = o
	return nil
}

func (r *fakeOverrideRepository) Delete(ctx context.Context, consumerID uint, label, name string) (bool, error) {
	removed := false
	for key := range r.overrides[consumerID] {
		if key[0] == label && (name == "" || key[1] == name) {
			delete(r.overrides[consumerID], key)
			removed = true
		}
	}
	return removed, nil
}

func (r *fakeOverrideRepository) DeleteAll(ctx context.Context, consumerID uint) error {
	delete(r.overrides, consumerID)
	return nil
}

func (r *fakeOverrideRepository) List(ctx context.Context, consumerID uint) ([]consumer.ContentOverride, error) {
	var out []consumer.ContentOverride
	for _, o := range r.overrides[consumerID] {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ContentLabel != out[j].ContentLabel {
			return out[i].ContentLabel < out[j].ContentLabel
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (p *recordingPublisher) Publish(event events.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) PublishAll(evts []events.DomainEvent) error {
	for _, e := range evts {
		if err := p.Publish(e); err != nil {
			return err
		}
	}
	return nil
}

type passthroughTransactor struct{}

func (passthroughTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
