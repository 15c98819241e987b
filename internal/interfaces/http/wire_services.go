package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"candlepin/internal/domain/consumer"
	"candlepin/internal/domain/shared/events"
	"candlepin/internal/infrastructure/auth"
	"candlepin/internal/infrastructure/config"
	"candlepin/internal/infrastructure/metrics"
	"candlepin/internal/infrastructure/permission"
	"candlepin/internal/infrastructure/pubsub"
	"candlepin/internal/infrastructure/ratelimit"
	"candlepin/internal/infrastructure/scheduler"
	"candlepin/internal/interfaces/http/middleware"
	"candlepin/internal/shared/logger"
)

// initInfrastructure sets up Redis, the access enforcer, metrics, token
// verification and the event path.
func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	if cfg.Redis.Enabled {
		client, err := initRedis(cfg, log)
		if err != nil {
			return err
		}
		c.redis = client
	}

	enforcer, err := permission.NewEnforcer(c.db, cfg.Auth.CasbinModelPath, log)
	if err != nil {
		return fmt.Errorf("failed to initialize access enforcer: %w", err)
	}
	if err := permission.InitAdminPrincipals(enforcer, cfg.Auth.AdminPrincipals, log); err != nil {
		return err
	}
	c.enforcer = enforcer

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.AccessExpMinutes)
	c.metrics = metrics.New()

	c.dispatcher = events.NewInMemoryEventDispatcher(eventBufferSize, logger.WithComponent("events"))
	c.publisher = c.dispatcher
	if c.redis != nil {
		c.eventBus = pubsub.NewRedisConsumerEventBus(c.redis, logger.WithComponent("eventbus"))
		c.publisher = c.eventBus
	}

	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.GetAddr(), err)
	}
	log.Infow("redis connection established", "addr", cfg.Redis.GetAddr())

	return client, nil
}

func (c *Container) initMiddlewares() {
	log := c.log

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, log)
	c.ownerResolver = middleware.NewOwnerResolver(c.repos.ownerRepo, c.repos.consumerRepo, c.repos.entitlementRepo)

	if c.cfg.RateLimit.Enabled {
		var limiter ratelimit.RateLimiter = ratelimit.NewMemoryRateLimiter()
		if c.redis != nil {
			limiter = ratelimit.NewRedisRateLimiter(c.redis)
		}
		c.checkinLimiter = middleware.NewRateLimiter(limiter, "hypervisor-checkin", ratelimit.Limits{
			PerMinute: c.cfg.RateLimit.CheckinPerMinute,
			PerHour:   c.cfg.RateLimit.CheckinPerHour,
		}, log)
	}
}

// initBackground registers event handlers and scheduled jobs. Nothing runs
// until Run.
func (c *Container) initBackground() error {
	refresher := c.ucs.guestMigrationRefresher
	if err := c.dispatcher.Subscribe(consumer.EventTypeGuestMigrated, refresher); err != nil {
		return fmt.Errorf("failed to subscribe guest migration handler: %w", err)
	}

	manager, err := scheduler.NewSchedulerManager(logger.WithComponent("scheduler"))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err := manager.RegisterExpiryJob(c.ucs.expireEntitlementsUC, c.cfg.Scheduler.ExpiryInterval()); err != nil {
		return fmt.Errorf("failed to register entitlement expiry job: %w", err)
	}
	c.schedulerManager = manager

	return nil
}
