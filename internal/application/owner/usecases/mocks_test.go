package usecases

import (
	"context"
	"sync"

	"candlepin/internal/domain/consumer"
	"candlepin/internal/domain/owner"
	"candlepin/internal/domain/permission"
	"candlepin/internal/shared/errors"
)

// fakeOwnerRepository keeps owners in memory keyed by owner key.
type fakeOwnerRepository struct {
	mu      sync.Mutex
	owners  map[string]*owner.Owner
	nextID  uint
	updates int
}

func newFakeOwnerRepository(owners ...*owner.Owner) *fakeOwnerRepository {
	r := &fakeOwnerRepository{owners: make(map[string]*owner.Owner), nextID: 100}
	for _, o := range owners {
		r.owners[o.Key()] = o
	}
	return r
}

func (r *fakeOwnerRepository) Create(ctx context.Context, o *owner.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.owners[o.Key()]; exists {
		return errors.NewConflictError("owner already exists", o.Key())
	}
	r.nextID++
	if err := o.SetID(r.nextID); err != nil {
		return err
	}
	r.owners[o.Key()] = o
	return nil
}

func (r *fakeOwnerRepository) Update(ctx context.Context, o *owner.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	r.owners[o.Key()] = o
	return nil
}

func (r *fakeOwnerRepository) GetByID(ctx context.Context, id uint) (*owner.Owner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.owners {
		if o.ID() == id {
			return o, nil
		}
	}
	return nil, owner.ErrOwnerIDNotFound(id)
}

func (r *fakeOwnerRepository) GetByKey(ctx context.Context, key string) (*owner.Owner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.owners[key]
	if !ok {
		return nil, owner.ErrOwnerNotFound(key)
	}
	return o, nil
}

type mockConsumerRepository struct {
	consumer.Repository
	ReassignOwnerFunc func(ctx context.Context, fromOwnerID, toOwnerID uint) (int64, error)
}

func (m *mockConsumerRepository) ReassignOwner(ctx context.Context, fromOwnerID, toOwnerID uint) (int64, error) {
	if m.ReassignOwnerFunc != nil {
		return m.ReassignOwnerFunc(ctx, fromOwnerID, toOwnerID)
	}
	return 0, nil
}

type grant struct {
	principal string
	ownerKey  string
	access    permission.Access
}

type mockEnforcer struct {
	permission.PermissionEnforcer
	grants   []grant
	GrantErr error
}

func (m *mockEnforcer) GrantOwnerAccess(principal, ownerKey string, access permission.Access) error {
	if m.GrantErr != nil {
		return m.GrantErr
	}
	m.grants = append(m.grants, grant{principal: principal, ownerKey: ownerKey, access: access})
	return nil
}

type passthroughTransactor struct{}

func (passthroughTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
