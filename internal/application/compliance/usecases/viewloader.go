package usecases

import (
	"context"
	"fmt"

	"candlepin/internal/domain/compliance"
	"candlepin/internal/domain/consumer"
	"candlepin/internal/domain/entitlement"
	"candlepin/internal/domain/pool"
	"candlepin/internal/domain/product"
)

// EntitlementViewLoader joins a consumer's entitlements with their pools
// and the pool products' role attributes.
type EntitlementViewLoader struct {
	entitlementRepo entitlement.Repository
	poolRepo        pool.Repository
	productRepo     product.Repository
}

func NewEntitlementViewLoader(
	entitlementRepo entitlement.Repository,
	poolRepo pool.Repository,
	productRepo product.Repository,
) *EntitlementViewLoader {
	return &EntitlementViewLoader{
		entitlementRepo: entitlementRepo,
		poolRepo:        poolRepo,
		productRepo:     productRepo,
	}
}

func (l *EntitlementViewLoader) Load(ctx context.Context, c *consumer.Consumer) ([]compliance.EntitlementView, error) {
	ents, err := l.entitlementRepo.ListByConsumer(ctx, c.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list entitlements: %w", err)
	}
	if len(ents) == 0 {
		return nil, nil
	}

	poolIDs := make([]uint, 0, len(ents))
	seenPools := make(map[uint]bool, len(ents))
	for _, e := range ents {
		if !seenPools[e.PoolID()] {
			seenPools[e.PoolID()] = true
			poolIDs = append(poolIDs, e.PoolID())
		}
	}
	pools, err := l.poolRepo.GetByIDs(ctx, poolIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load pools: %w", err)
	}
	poolsByID := make(map[uint]*pool.Pool, len(pools))
	productIDs := make([]string, 0, len(pools))
	for _, p := range pools {
		poolsByID[p.ID()] = p
		productIDs = append(productIDs, p.ProductID())
	}

	products, err := l.productRepo.GetByIDs(ctx, c.OwnerID(), productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	roles := make(map[string][]string, len(products))
	for _, p := range products {
		roles[p.ID()] = p.Roles()
	}

	views := make([]compliance.EntitlementView, 0, len(ents))
	for _, e := range ents {
		p, ok := poolsByID[e.PoolID()]
		if !ok {
			// Pool deleted underneath the entitlement; it covers nothing.
			continue
		}
		views = append(views, compliance.EntitlementView{
			EntitlementID:      e.ID(),
			PoolID:             p.ID(),
			ProductID:          p.ProductID(),
			ProvidedProductIDs: p.ProvidedProductIDs(),
			Quantity:           e.Quantity(),
			StartDate:          p.StartDate(),
			EndDate:            p.EndDate(),
			Roles:              roles[p.ProductID()],
		})
	}
	return views, nil
}
