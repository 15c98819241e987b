package migration

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"candlepin/internal/shared/logger"
)

const (
	StrategyAutoMigrate   = "gorm_auto_migrate"
	StrategyGoose         = "goose"
	StrategyGolangMigrate = "golang_migrate"

	gooseDir   = "scripts/goose"
	migrateDir = "scripts/migrate"
)

//go:embed scripts/goose/*.sql scripts/migrate/*.sql
var scripts embed.FS

// Strategy applies and rolls back the schema.
type Strategy interface {
	Migrate(db *gorm.DB) error
	Down(db *gorm.DB, steps int) error
	Version(db *gorm.DB) (int64, error)
	Name() string
}

// GooseStrategy runs the embedded goose scripts.
type GooseStrategy struct {
	logger logger.Interface
}

func NewGooseStrategy(log logger.Interface) *GooseStrategy {
	return &GooseStrategy{logger: log.Named("migration.goose")}
}

func (s *GooseStrategy) prepare(db *gorm.DB) error {
	goose.SetBaseFS(scripts)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(db.Dialector.Name()); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return nil
}

func (s *GooseStrategy) Migrate(db *gorm.DB) error {
	if err := s.prepare(db); err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}

	from, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return fmt.Errorf("get current version: %w", err)
	}
	if err := goose.Up(sqlDB, gooseDir); err != nil {
		s.logger.Errorw("goose up failed", "error", err, "from_version", from)
		return fmt.Errorf("goose up: %w", err)
	}
	to, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return fmt.Errorf("get final version: %w", err)
	}

	s.logger.Infow("goose migration completed", "from_version", from, "to_version", to)
	return nil
}

func (s *GooseStrategy) Down(db *gorm.DB, steps int) error {
	if err := s.prepare(db); err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}

	for i := 0; i < steps; i++ {
		if err := goose.Down(sqlDB, gooseDir); err != nil {
			return fmt.Errorf("goose down: %w", err)
		}
	}
	s.logger.Infow("goose rollback completed", "steps", steps)
	return nil
}

func (s *GooseStrategy) Version(db *gorm.DB) (int64, error) {
	if err := s.prepare(db); err != nil {
		return 0, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("get sql.DB: %w", err)
	}
	return goose.GetDBVersion(sqlDB)
}

func (s *GooseStrategy) Name() string {
	return StrategyGoose
}

// GolangMigrateStrategy runs the embedded up/down pairs. MySQL only.
type GolangMigrateStrategy struct {
	logger logger.Interface
}

func NewGolangMigrateStrategy(log logger.Interface) *GolangMigrateStrategy {
	return &GolangMigrateStrategy{logger: log.Named("migration.golang-migrate")}
}

func (s *GolangMigrateStrategy) instance(db *gorm.DB) (*migrate.Migrate, error) {
	if name := db.Dialector.Name(); name != "mysql" {
		return nil, fmt.Errorf("golang-migrate strategy does not support %q", name)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	driver, err := migratemysql.WithInstance(sqlDB, &migratemysql.Config{})
	if err != nil {
		return nil, fmt.Errorf("create mysql driver: %w", err)
	}
	src, err := iofs.New(scripts, migrateDir)
	if err != nil {
		return nil, fmt.Errorf("open embedded scripts: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "mysql", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}

func (s *GolangMigrateStrategy) Migrate(db *gorm.DB) error {
	m, err := s.instance(db)
	if err != nil {
		return err
	}

	from, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("get current version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is in dirty state at version %d", from)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		s.logger.Errorw("migrate up failed", "error", err, "from_version", from)
		return fmt.Errorf("migrate up: %w", err)
	}

	to, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("get final version: %w", err)
	}
	s.logger.Infow("golang-migrate migration completed", "from_version", from, "to_version", to)
	return nil
}

func (s *GolangMigrateStrategy) Down(db *gorm.DB, steps int) error {
	m, err := s.instance(db)
	if err != nil {
		return err
	}
	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	s.logger.Infow("golang-migrate rollback completed", "steps", steps)
	return nil
}

func (s *GolangMigrateStrategy) Version(db *gorm.DB) (int64, error) {
	m, err := s.instance(db)
	if err != nil {
		return 0, err
	}
	v, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	return int64(v), err
}

func (s *GolangMigrateStrategy) Name() string {
	return StrategyGolangMigrate
}
