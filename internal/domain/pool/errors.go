package pool

import (
	"errors"
	"fmt"
	"time"

	apperrors "candlepin/internal/shared/errors"
)

// ErrVersionConflict signals that a concurrent writer changed the pool
// between read and conditional update.
var ErrVersionConflict = errors.New("pool was modified concurrently")

func ErrPoolNotFound(id uint) error {
	return apperrors.NewNotFoundError("pool not found", fmt.Sprintf("pool_id=%d", id))
}

func ErrCapacityExceeded(id uint, requested, available int64) error {
	return apperrors.NewForbiddenError(
		"no entitlements remaining in pool",
		fmt.Sprintf("pool_id=%d requested=%d available=%d", id, requested, available),
	)
}

func ErrPoolExpired(id uint, end time.Time) error {
	return apperrors.NewForbiddenError(
		"pool has expired",
		fmt.Sprintf("pool_id=%d end=%s", id, end.Format(time.RFC3339)),
	)
}

func ErrPoolNotYetActive(id uint, start time.Time) error {
	return apperrors.NewForbiddenError(
		"pool is not yet active",
		fmt.Sprintf("pool_id=%d start=%s", id, start.Format(time.RFC3339)),
	)
}
