package usecases

import (
	"context"
	"sync"
	"time"

	"candlepin/internal/domain/consumer"
	"candlepin/internal/domain/entitlement"
	"candlepin/internal/domain/pool"
)

type mockConsumerRepository struct {
	consumer.Repository
	GetByUUIDFunc func(ctx context.Context, uuid string) (*consumer.Consumer, error)
}

func (m *mockConsumerRepository) GetByUUID(ctx context.Context, uuid string) (*consumer.Consumer, error) {
	if m.GetByUUIDFunc != nil {
		return m.GetByUUIDFunc(ctx, uuid)
	}
	return nil, consumer.ErrConsumerNotFound(uuid)
}

// fakePoolRepository keeps pools in memory and enforces the version check
// of SaveConsumption like the database does.
type fakePoolRepository struct {
	mu            sync.Mutex
	pools         map[uint]pool.PoolReconstructParams
	saveCalls     int
	SaveHook      func(call int) error
	GetForUpdates int
}

func newFakePoolRepository(pools ...pool.PoolReconstructParams) *fakePoolRepository {
	r := &fakePoolRepository{pools: make(map[uint]pool.PoolReconstructParams)}
	for _, p := range pools {
		r.pools[p.ID] = p
	}
	return r
}

func (r *fakePoolRepository) Create(ctx context.Context, p *pool.Pool) error { return nil }

func (r *fakePoolRepository) GetByID(ctx context.Context, id uint) (*pool.Pool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	params, ok := r.pools[id]
	if !ok {
		return nil, pool.ErrPoolNotFound(id)
	}
	return pool.ReconstructPool(params)
}

func (r *fakePoolRepository) GetForUpdate(ctx context.Context, id uint) (*pool.Pool, error) {
	r.mu.Lock()
	r.GetForUpdates++
	r.mu.Unlock()
	return r.GetByID(ctx, id)
}

func (r *fakePoolRepository) GetByIDs(ctx context.Context, ids []uint) ([]*pool.Pool, error) {
	var out []*pool.Pool
	for _, id := range ids {
		if p, err := r.GetByID(ctx, id); err == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePoolRepository) ListByOwner(ctx context.Context, ownerID uint, activeOn *time.Time) ([]*pool.Pool, error) {
	return nil, nil
}

func (r *fakePoolRepository) SaveConsumption(ctx context.Context, p *pool.Pool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveCalls++
	if r.SaveHook != nil {
		if err := r.SaveHook(r.saveCalls); err != nil {
			return err
		}
	}
	params := r.pools[p.ID()]
	if params.Version != p.Version() {
		return pool.ErrVersionConflict
	}
	params.Consumed = p.Consumed()
	params.Version++
	r.pools[p.ID()] = params
	p.MarkSaved()
	return nil
}

func (r *fakePoolRepository) consumed(id uint) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pools[id].Consumed
}

type fakeEntitlementRepository struct {
	mu     sync.Mutex
	nextID uint
	ents   map[uint]*entitlement.Entitlement
}

func newFakeEntitlementRepository() *fakeEntitlementRepository {
	return &fakeEntitlementRepository{ents: make(map[uint]*entitlement.Entitlement)}
}

func (r *fakeEntitlementRepository) Create(ctx context.Context, e *entitlement.Entitlement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.ents[r.nextID] = e
	return e.SetID(r.nextID)
}

func (r *fakeEntitlementRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ents[id]; !ok {
		return entitlement.ErrEntitlementNotFound(id)
	}
	delete(r.ents, id)
	return nil
}

func (r *fakeEntitlementRepository) GetByID(ctx context.Context, id uint) (*entitlement.Entitlement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.ents[id]
	if !ok {
		return nil, entitlement.ErrEntitlementNotFound(id)
	}
	return e, nil
}

func (r *fakeEntitlementRepository) ListByConsumer(ctx context.Context, consumerID uint) ([]*entitlement.Entitlement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entitlement.Entitlement
	for id := uint(1); id <= r.nextID; id++ {
		if e, ok := r.ents[id]; ok && e.ConsumerID() == consumerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEntitlementRepository) CountByPool(ctx context.Context, poolID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, e := range r.ents {
		if e.PoolID() == poolID {
			n++
		}
	}
	return n, nil
}

func (r *fakeEntitlementRepository) ListExpired(ctx context.Context, now time.Time, limit int) ([]*entitlement.Entitlement, error) {
	return nil, nil
}

// passthroughTransactor runs fn without a database.
type passthroughTransactor struct {
	calls int
	mu    sync.Mutex
}

func (t *passthroughTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	t.calls++
	t.mu.Unlock()
	return fn(ctx)
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (o *recordingObserver) ObserveBind(outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.outcomes == nil {
		o.outcomes = make(map[string]int)
	}
	o.outcomes[outcome]++
}
