package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candlepin/internal/domain/entitlement"
	"candlepin/internal/shared/errors"
	"candlepin/internal/shared/logger"
)

func TestRevokeEntitlementUseCase_ReleasesCapacity(t *testing.T) {
	f := newBindFixture(t, testPoolParams(1), 1)
	ctx := context.Background()

	resp, err := f.uc.Execute(ctx, BindPoolCommand{ConsumerUUID: "consumer-1", PoolID: 7, Quantity: 1})
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, BindPoolCommand{ConsumerUUID: "consumer-1", PoolID: 7, Quantity: 1})
	require.True(t, errors.IsForbiddenError(err))

	revoke := NewRevokeEntitlementUseCase(f.pools, f.ents, &passthroughTransactor{}, logger.NewNopLogger())
	require.NoError(t, revoke.Execute(ctx, resp.ID))
	assert.Equal(t, int64(0), f.pools.consumed(7))

	_, err = f.uc.Execute(ctx, BindPoolCommand{ConsumerUUID: "consumer-1", PoolID: 7, Quantity: 1})
	assert.NoError(t, err)
}

func TestRevokeEntitlementUseCase_UnknownEntitlement(t *testing.T) {
	revoke := NewRevokeEntitlementUseCase(newFakePoolRepository(), newFakeEntitlementRepository(), &passthroughTransactor{}, logger.NewNopLogger())
	err := revoke.Execute(context.Background(), 404)
	assert.True(t, errors.IsNotFoundError(err))
}

type expiringEntitlementRepository struct {
	*fakeEntitlementRepository
	expired []*entitlement.Entitlement
}

func (r *expiringEntitlementRepository) ListExpired(ctx context.Context, now time.Time, limit int) ([]*entitlement.Entitlement, error) {
	return r.expired, nil
}

func TestExpireEntitlementsUseCase_RevokesExpired(t *testing.T) {
	params := testPoolParams(3)
	params.Consumed = 2
	pools := newFakePoolRepository(params)
	ents := newFakeEntitlementRepository()
	ctx := context.Background()

	e1, err := entitlement.NewEntitlement(42, 7, 2)
	require.NoError(t, err)
	require.NoError(t, ents.Create(ctx, e1))
	ghost, err := entitlement.ReconstructEntitlement(99, 42, 7, 1, testNow, testNow)
	require.NoError(t, err)

	repo := &expiringEntitlementRepository{fakeEntitlementRepository: ents, expired: []*entitlement.Entitlement{e1, ghost}}
	revoke := NewRevokeEntitlementUseCase(pools, repo, &passthroughTransactor{}, logger.NewNopLogger())
	expire := NewExpireEntitlementsUseCase(repo, revoke, logger.NewNopLogger())

	result, err := expire.Execute(ctx, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Revoked)
	require.Len(t, result.Failed, 1)
	assert.Contains(t, result.Failed[0], "99: ")
	assert.Equal(t, int64(0), pools.consumed(7))
}
