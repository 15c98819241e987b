package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"candlepin/internal/domain/consumer"
	"candlepin/internal/infrastructure/persistence/models"
	"candlepin/internal/shared/db"
	"candlepin/internal/shared/logger"
)

type ContentOverrideRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewContentOverrideRepository(db *gorm.DB, logger logger.Interface) consumer.ContentOverrideRepository {
	return &ContentOverrideRepositoryImpl{db: db, logger: logger}
}

// Upsert stores the override, replacing the value of an existing
// (label, name) pair.
func (r *ContentOverrideRepositoryImpl) Upsert(ctx context.Context, consumerID uint, o consumer.ContentOverride) error {
	model := &models.ContentOverrideModel{
		ConsumerID:   consumerID,
		ContentLabel: o.ContentLabel,
		Name:         o.Name,
		Value:        o.Value,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    time.Now().UTC(),
	}

	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "consumer_id"}, {Name: "content_label"}, {Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert content override",
			"consumer_id", consumerID,
			"content_label", o.ContentLabel,
			"name", o.Name,
			"error", err)
		return fmt.Errorf("failed to upsert content override: %w", err)
	}
	return nil
}

// Delete removes one override, or every override of the label when name is
// empty. It reports whether anything was removed.
func (r *ContentOverrideRepositoryImpl) Delete(ctx context.Context, consumerID uint, label, name string) (bool, error) {
	query := db.GetTxFromContext(ctx, r.db).Where("consumer_id = ? AND content_label = ?", consumerID, label)
	if name != "" {
		query = query.Where("name = ?", name)
	}

	result := query.Delete(&models.ContentOverrideModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete content override: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *ContentOverrideRepositoryImpl) DeleteAll(ctx context.Context, consumerID uint) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Where("consumer_id = ?", consumerID).
		Delete(&models.ContentOverrideModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete content overrides: %w", err)
	}
	return nil
}

func (r *ContentOverrideRepositoryImpl) List(ctx context.Context, consumerID uint) ([]consumer.ContentOverride, error) {
	var rows []models.ContentOverrideModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("consumer_id = ?", consumerID).
		Order("content_label ASC, name ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list content overrides: %w", err)
	}

	overrides := make([]consumer.ContentOverride, 0, len(rows))
	for _, row := range rows {
		overrides = append(overrides, consumer.ContentOverride{
			ContentLabel: row.ContentLabel,
			Name:         row.Name,
			Value:        row.Value,
			CreatedAt:    row.CreatedAt,
			UpdatedAt:    row.UpdatedAt,
		})
	}
	return overrides, nil
}
