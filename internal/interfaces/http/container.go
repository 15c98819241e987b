package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"candlepin/internal/domain/shared/events"
	"candlepin/internal/infrastructure/auth"
	"candlepin/internal/infrastructure/config"
	"candlepin/internal/infrastructure/metrics"
	"candlepin/internal/infrastructure/permission"
	"candlepin/internal/infrastructure/pubsub"
	"candlepin/internal/infrastructure/scheduler"
	"candlepin/internal/interfaces/http/middleware"
	"candlepin/internal/shared/logger"
)

const eventBufferSize = 256

// Container holds the infrastructure, repositories, use cases, handlers and
// background services of the server and wires them together.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	ownerResolver        *middleware.OwnerResolver
	checkinLimiter       *middleware.RateLimiter

	jwtSvc   *auth.JWTService
	enforcer *permission.Enforcer
	metrics  *metrics.Metrics

	// dispatcher delivers events to local handlers. publisher is what use
	// cases publish to: the dispatcher itself, or the Redis bus when
	// several instances share events.
	dispatcher *events.InMemoryEventDispatcher
	publisher  events.EventPublisher
	eventBus   *pubsub.RedisConsumerEventBus

	schedulerManager *scheduler.SchedulerManager
}

// NewContainer creates a Container with all dependencies wired together.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	c.repos = newRepositories(db, log)
	c.ucs = c.newUseCases()
	c.hdlrs = c.newHandlers()
	c.initMiddlewares()

	if err := c.initBackground(); err != nil {
		return nil, err
	}

	return c, nil
}

// Engine returns the gin engine the routes are registered on.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Run serves HTTP and runs the background services until ctx is cancelled
// or one of them fails.
func (c *Container) Run(ctx context.Context) error {
	if err := c.dispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start event dispatcher: %w", err)
	}
	c.schedulerManager.Start()

	srv := &http.Server{
		Addr:         c.cfg.Server.GetAddr(),
		Handler:      c.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c.log.Infow("server starting", "address", srv.Addr, "mode", c.cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		c.log.Infow("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), c.cfg.Server.ShutdownTimeout())
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if c.eventBus != nil {
		g.Go(func() error {
			return c.eventBus.Subscribe(gctx, c.dispatcher)
		})
	}

	err := g.Wait()
	c.shutdownBackground()
	return err
}

func (c *Container) shutdownBackground() {
	if err := c.schedulerManager.Stop(); err != nil {
		c.log.Errorw("failed to stop scheduler", "error", err)
	}
	if err := c.dispatcher.Stop(); err != nil {
		c.log.Errorw("failed to stop event dispatcher", "error", err)
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
	c.log.Infow("background services stopped")
}
