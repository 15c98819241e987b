// Package scheduler runs periodic maintenance jobs using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"candlepin/internal/application/entitlement/dto"
	"candlepin/internal/shared/logger"
)

// EntitlementExpirer revokes entitlements whose pool ended before now.
type EntitlementExpirer interface {
	Execute(ctx context.Context, now time.Time) (*dto.ExpireResult, error)
}

type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface
	now       func() time.Time

	started   bool
	startedMu sync.RWMutex
}

func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
		now:       time.Now,
	}, nil
}

// RegisterExpiryJob sweeps expired entitlements every interval, starting
// immediately. Overlapping runs are rescheduled rather than stacked.
func (m *SchedulerManager) RegisterExpiryJob(expirer EntitlementExpirer, interval time.Duration) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			m.expireEntitlements(ctx, expirer)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("entitlement", "expire"),
		gocron.WithName("entitlement-expiry"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered entitlement expiry job", "interval", interval)
	return nil
}

// expireEntitlements repeats until a batch revokes nothing or reports
// failures, which would otherwise come back on every pass.
func (m *SchedulerManager) expireEntitlements(ctx context.Context, expirer EntitlementExpirer) {
	start := time.Now()
	total := 0
	for {
		result, err := expirer.Execute(ctx, m.now())
		if err != nil {
			m.logger.Errorw("failed to expire entitlements", "error", err, "duration", time.Since(start))
			return
		}
		total += result.Revoked
		if result.Revoked == 0 || len(result.Failed) > 0 {
			break
		}
	}

	if total > 0 {
		m.logger.Infow("entitlement expiry sweep finished", "revoked", total, "duration", time.Since(start))
	}
}

func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop waits for running jobs to complete.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	err := m.scheduler.Shutdown()
	m.started = false
	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
