package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candlepin/internal/domain/owner"
	"candlepin/internal/domain/permission"
	"candlepin/internal/shared/errors"
	"candlepin/internal/shared/logger"
)

func reconstructOwner(t *testing.T, id uint, key string, anonymous bool) *owner.Owner {
	t.Helper()
	o, err := owner.ReconstructOwner(owner.OwnerReconstructParams{
		ID:                id,
		Key:               key,
		DisplayName:       key,
		ContentAccessMode: "entitlement",
		Anonymous:         anonymous,
	})
	require.NoError(t, err)
	return o
}

func TestCreateOwnerUseCase(t *testing.T) {
	t.Run("applies default mode and grants creator", func(t *testing.T) {
		repo := newFakeOwnerRepository()
		enforcer := &mockEnforcer{}
		uc := NewCreateOwnerUseCase(repo, enforcer, owner.ContentAccessOrgEnvironment, logger.NewNopLogger())

		resp, err := uc.Execute(context.Background(), CreateOwnerCommand{
			Key:         "acme",
			DisplayName: "<b>Acme</b> Corp",
			CreatedBy:   "alice",
		})
		require.NoError(t, err)
		assert.Equal(t, "org_environment", resp.ContentAccessMode)
		assert.Equal(t, "entitlement,org_environment", resp.ContentAccessModeList)
		assert.Equal(t, "Acme Corp", resp.DisplayName)
		require.Len(t, enforcer.grants, 1)
		assert.Equal(t, grant{principal: "alice", ownerKey: "acme", access: permission.AccessAll}, enforcer.grants[0])
	})

	t.Run("default mode outside explicit list falls back to the list", func(t *testing.T) {
		uc := NewCreateOwnerUseCase(newFakeOwnerRepository(), nil, owner.ContentAccessOrgEnvironment, logger.NewNopLogger())

		resp, err := uc.Execute(context.Background(), CreateOwnerCommand{Key: "acme", ContentAccessModeList: "entitlement"})
		require.NoError(t, err)
		assert.Equal(t, "entitlement", resp.ContentAccessMode)
		assert.Equal(t, "entitlement", resp.ContentAccessModeList)
	})

	t.Run("explicit mode outside list", func(t *testing.T) {
		uc := NewCreateOwnerUseCase(newFakeOwnerRepository(), nil, owner.ContentAccessEntitlement, logger.NewNopLogger())

		_, err := uc.Execute(context.Background(), CreateOwnerCommand{
			Key:                   "acme",
			ContentAccessMode:     "org_environment",
			ContentAccessModeList: "entitlement",
		})
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("unknown mode", func(t *testing.T) {
		uc := NewCreateOwnerUseCase(newFakeOwnerRepository(), nil, owner.ContentAccessEntitlement, logger.NewNopLogger())

		_, err := uc.Execute(context.Background(), CreateOwnerCommand{Key: "acme", ContentAccessMode: "golden"})
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("duplicate key", func(t *testing.T) {
		repo := newFakeOwnerRepository(reconstructOwner(t, 1, "acme", false))
		uc := NewCreateOwnerUseCase(repo, nil, owner.ContentAccessEntitlement, logger.NewNopLogger())

		_, err := uc.Execute(context.Background(), CreateOwnerCommand{Key: "acme"})
		assert.True(t, errors.IsConflictError(err))
	})
}

func TestUpdateContentAccessUseCase_TogglesSymmetrically(t *testing.T) {
	repo := newFakeOwnerRepository(reconstructOwner(t, 1, "acme", false))
	uc := NewUpdateContentAccessUseCase(repo, logger.NewNopLogger())
	ctx := context.Background()

	resp, err := uc.Execute(ctx, UpdateContentAccessCommand{OwnerKey: "acme", Mode: "org_environment"})
	require.NoError(t, err)
	assert.Equal(t, "org_environment", resp.ContentAccessMode)

	resp, err = uc.Execute(ctx, UpdateContentAccessCommand{OwnerKey: "acme", Mode: "entitlement"})
	require.NoError(t, err)
	assert.Equal(t, "entitlement", resp.ContentAccessMode)
	assert.Equal(t, 2, repo.updates)

	_, err = uc.Execute(ctx, UpdateContentAccessCommand{OwnerKey: "acme", Mode: "sca"})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(ctx, UpdateContentAccessCommand{OwnerKey: "acme", Mode: "org_environment", ModeList: "entitlement"})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(ctx, UpdateContentAccessCommand{OwnerKey: "missing", Mode: "entitlement"})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestGetOwnerUseCase(t *testing.T) {
	uc := NewGetOwnerUseCase(newFakeOwnerRepository(reconstructOwner(t, 1, "acme", false)), logger.NewNopLogger())

	resp, err := uc.Execute(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, uint(1), resp.ID)

	_, err = uc.Execute(context.Background(), "other")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestClaimOwnerUseCase(t *testing.T) {
	newRepo := func(t *testing.T) *fakeOwnerRepository {
		return newFakeOwnerRepository(
			reconstructOwner(t, 1, "anon", true),
			reconstructOwner(t, 2, "acme", false),
			reconstructOwner(t, 3, "globex", false),
			reconstructOwner(t, 4, "anon2", true),
		)
	}

	t.Run("claims and moves consumers once", func(t *testing.T) {
		reassigned := 0
		consumers := &mockConsumerRepository{
			ReassignOwnerFunc: func(ctx context.Context, from, to uint) (int64, error) {
				reassigned++
				assert.Equal(t, uint(1), from)
				assert.Equal(t, uint(2), to)
				return 3, nil
			},
		}
		uc := NewClaimOwnerUseCase(newRepo(t), consumers, passthroughTransactor{}, logger.NewNopLogger())
		ctx := context.Background()

		resp, err := uc.Execute(ctx, ClaimOwnerCommand{OwnerKey: "anon", ClaimantKey: "acme"})
		require.NoError(t, err)
		assert.True(t, resp.Owner.Claimed)
		assert.Equal(t, "acme", resp.Owner.ClaimantOwner)
		assert.Equal(t, int64(3), resp.MovedConsumers)

		resp, err = uc.Execute(ctx, ClaimOwnerCommand{OwnerKey: "anon", ClaimantKey: "acme"})
		require.NoError(t, err)
		assert.Equal(t, int64(0), resp.MovedConsumers)
		assert.Equal(t, 1, reassigned)
	})

	t.Run("different claimant conflicts", func(t *testing.T) {
		uc := NewClaimOwnerUseCase(newRepo(t), &mockConsumerRepository{}, passthroughTransactor{}, logger.NewNopLogger())
		ctx := context.Background()

		_, err := uc.Execute(ctx, ClaimOwnerCommand{OwnerKey: "anon", ClaimantKey: "acme"})
		require.NoError(t, err)

		_, err = uc.Execute(ctx, ClaimOwnerCommand{OwnerKey: "anon", ClaimantKey: "globex"})
		assert.True(t, errors.IsConflictError(err))
	})

	t.Run("anonymous claimant rejected", func(t *testing.T) {
		uc := NewClaimOwnerUseCase(newRepo(t), &mockConsumerRepository{}, passthroughTransactor{}, logger.NewNopLogger())

		_, err := uc.Execute(context.Background(), ClaimOwnerCommand{OwnerKey: "anon", ClaimantKey: "anon2"})
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("unknown claimant", func(t *testing.T) {
		uc := NewClaimOwnerUseCase(newRepo(t), &mockConsumerRepository{}, passthroughTransactor{}, logger.NewNopLogger())

		_, err := uc.Execute(context.Background(), ClaimOwnerCommand{OwnerKey: "anon", ClaimantKey: "nobody"})
		assert.True(t, errors.IsNotFoundError(err))
	})
}
