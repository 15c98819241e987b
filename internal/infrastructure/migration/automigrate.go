package migration

import (
	"fmt"

	"gorm.io/gorm"

	"candlepin/internal/infrastructure/persistence/models"
	"candlepin/internal/shared/logger"
)

// AutoMigrateModels lists the models owned by the schema, parents first.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.OwnerModel{},
		&models.ProductModel{},
		&models.PoolModel{},
		&models.ConsumerModel{},
		&models.ConsumerGuestModel{},
		&models.EntitlementModel{},
		&models.ContentOverrideModel{},
	}
}

// GormAutoMigrateStrategy derives the schema from the gorm models. It is
// the only strategy that works on sqlite since the SQL scripts are MySQL.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy(log logger.Interface) *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{logger: log.Named("migration.automigrate")}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB) error {
	models := AutoMigrateModels()
	s.logger.Infow("running gorm auto migrate", "models", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Down drops every table. Steps are ignored: the models carry no history.
func (s *GormAutoMigrateStrategy) Down(db *gorm.DB, _ int) error {
	models := AutoMigrateModels()
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models[i]); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	s.logger.Warnw("dropped all tables")
	return nil
}

func (s *GormAutoMigrateStrategy) Version(*gorm.DB) (int64, error) {
	return 0, nil
}

func (s *GormAutoMigrateStrategy) Name() string {
	return StrategyAutoMigrate
}
