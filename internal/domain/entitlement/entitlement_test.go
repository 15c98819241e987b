package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candlepin/internal/shared/errors"
)

func TestNewEntitlement(t *testing.T) {
	e, err := NewEntitlement(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, uint(1), e.ConsumerID())
	assert.Equal(t, uint(2), e.PoolID())
	assert.Equal(t, int64(3), e.Quantity())

	require.NoError(t, e.SetID(9))
	assert.Error(t, e.SetID(10))
}

func TestNewEntitlement_Validation(t *testing.T) {
	tests := []struct {
		name       string
		consumerID uint
		poolID     uint
		quantity   int64
	}{
		{"no consumer", 0, 1, 1},
		{"no pool", 1, 0, 1},
		{"zero quantity", 1, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEntitlement(tt.consumerID, tt.poolID, tt.quantity)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestReconstructEntitlement(t *testing.T) {
	now := time.Now()
	_, err := ReconstructEntitlement(0, 1, 1, 1, now, now)
	assert.Error(t, err)

	e, err := ReconstructEntitlement(5, 1, 2, 1, now, now)
	require.NoError(t, err)
	assert.Equal(t, uint(5), e.ID())
	assert.True(t, errors.IsNotFoundError(ErrEntitlementNotFound(5)))
}
