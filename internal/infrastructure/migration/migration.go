package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"candlepin/internal/shared/constants"
	"candlepin/internal/shared/logger"
)

// Manager runs the strategy chosen for an environment and driver.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks gorm AutoMigrate for sqlite and development, goose for
// MySQL elsewhere. An explicit name overrides the choice.
func NewManager(environment, driver, name string, log logger.Interface) (*Manager, error) {
	strategy, err := selectStrategy(environment, driver, name, log)
	if err != nil {
		return nil, err
	}
	return NewManagerWithStrategy(strategy, log), nil
}

func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.Named("migration.manager"),
	}
}

func selectStrategy(environment, driver, name string, log logger.Interface) (Strategy, error) {
	switch strings.ToLower(name) {
	case StrategyAutoMigrate:
		return NewGormAutoMigrateStrategy(log), nil
	case StrategyGoose:
		return NewGooseStrategy(log), nil
	case StrategyGolangMigrate:
		return NewGolangMigrateStrategy(log), nil
	case "":
	default:
		return nil, fmt.Errorf("unknown migration strategy %q", name)
	}

	if driver == "sqlite" || strings.ToLower(environment) == constants.EnvDevelopment {
		return NewGormAutoMigrateStrategy(log), nil
	}
	return NewGooseStrategy(log), nil
}

func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.Name())
	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.Name(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.Name(), err)
	}
	return nil
}

func (m *Manager) Down(db *gorm.DB, steps int) error {
	if steps < 1 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	return m.strategy.Down(db, steps)
}

func (m *Manager) Version(db *gorm.DB) (int64, error) {
	return m.strategy.Version(db)
}

func (m *Manager) Strategy() Strategy {
	return m.strategy
}
