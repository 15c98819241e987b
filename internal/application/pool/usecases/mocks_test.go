package usecases

import (
	"context"
	"time"

	"candlepin/internal/domain/owner"
	"candlepin/internal/domain/pool"
	"candlepin/internal/domain/product"
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

type mockProductRepository struct {
	UpsertFunc   func(ctx context.Context, p *product.Product) error
	GetByIDFunc  func(ctx context.Context, ownerID uint, id string) (*product.Product, error)
	GetByIDsFunc func(ctx context.Context, ownerID uint, ids []string) ([]*product.Product, error)
}

func (m *mockProductRepository) Upsert(ctx context.Context, p *product.Product) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, p)
	}
	return nil
}

func (m *mockProductRepository) GetByID(ctx context.Context, ownerID uint, id string) (*product.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ownerID, id)
	}
	return nil, product.ErrProductNotFound(id)
}

func (m *mockProductRepository) GetByIDs(ctx context.Context, ownerID uint, ids []string) ([]*product.Product, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ownerID, ids)
	}
	return nil, nil
}

type mockPoolRepository struct {
	pool.Repository
	CreateFunc      func(ctx context.Context, p *pool.Pool) error
	ListByOwnerFunc func(ctx context.Context, ownerID uint, activeOn *time.Time) ([]*pool.Pool, error)
}

func (m *mockPoolRepository) Create(ctx context.Context, p *pool.Pool) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *mockPoolRepository) ListByOwner(ctx context.Context, ownerID uint, activeOn *time.Time) ([]*pool.Pool, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID, activeOn)
	}
	return nil, nil
}
