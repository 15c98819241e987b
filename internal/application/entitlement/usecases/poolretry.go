package usecases

import (
	"context"
	"errors"

	"candlepin/internal/domain/pool"
	"candlepin/internal/shared/db"
	"candlepin/internal/shared/logger"
)

// maxPoolAttempts is the first attempt plus one retry after a version
// conflict.
const maxPoolAttempts = 2

// runWithPoolRetry runs fn in a fresh transaction and repeats it once when
// the pool version moved underneath it. The last conflict is returned
// unchanged so callers can decide how to report it.
func runWithPoolRetry(ctx context.Context, txMgr db.Transactor, log logger.Interface, poolID uint, fn func(txCtx context.Context) error) error {
	var err error
	for attempt := 1; attempt <= maxPoolAttempts; attempt++ {
		err = txMgr.RunInTransaction(ctx, fn)
		if !errors.Is(err, pool.ErrVersionConflict) {
			return err
		}
		log.Warnw("pool version conflict, retrying", "pool_id", poolID, "attempt", attempt)
	}
	return err
}
