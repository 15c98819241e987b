package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"candlepin/internal/domain/entitlement"
	"candlepin/internal/infrastructure/persistence/mappers"
	"candlepin/internal/infrastructure/persistence/models"
	"candlepin/internal/shared/constants"
	"candlepin/internal/shared/db"
	"candlepin/internal/shared/logger"
)

// EntitlementRepositoryImpl implements the entitlement.Repository interface
type EntitlementRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.EntitlementMapper
	logger logger.Interface
}

// NewEntitlementRepository creates a new entitlement repository instance
func NewEntitlementRepository(db *gorm.DB, logger logger.Interface) entitlement.Repository {
	return &EntitlementRepositoryImpl{
		db:     db,
		mapper: mappers.NewEntitlementMapper(),
		logger: logger,
	}
}

func (r *EntitlementRepositoryImpl) Create(ctx context.Context, e *entitlement.Entitlement) error {
	model := r.mapper.ToModel(e)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create entitlement",
			"consumer_id", e.ConsumerID(),
			"pool_id", e.PoolID(),
			"quantity", e.Quantity(),
			"error", err)
		return fmt.Errorf("failed to create entitlement: %w", err)
	}

	if err := e.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set entitlement ID: %w", err)
	}

	r.logger.Infow("entitlement created",
		"id", model.ID,
		"consumer_id", model.ConsumerID,
		"pool_id", model.PoolID,
		"quantity", model.Quantity)
	return nil
}

func (r *EntitlementRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.EntitlementModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete entitlement", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete entitlement: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entitlement.ErrEntitlementNotFound(id)
	}

	r.logger.Infow("entitlement deleted", "id", id)
	return nil
}

func (r *EntitlementRepositoryImpl) GetByID(ctx context.Context, id uint) (*entitlement.Entitlement, error) {
	var model models.EntitlementModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entitlement.ErrEntitlementNotFound(id)
		}
		return nil, fmt.Errorf("failed to get entitlement: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *EntitlementRepositoryImpl) ListByConsumer(ctx context.Context, consumerID uint) ([]*entitlement.Entitlement, error) {
	var entModels []*models.EntitlementModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("consumer_id = ?", consumerID).
		Order("id ASC").
		Find(&entModels).Error; err != nil {
		r.logger.Errorw("failed to list entitlements", "consumer_id", consumerID, "error", err)
		return nil, fmt.Errorf("failed to list entitlements: %w", err)
	}

	return r.mapper.ToEntities(entModels)
}

func (r *EntitlementRepositoryImpl) CountByPool(ctx context.Context, poolID uint) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.EntitlementModel{}).
		Where("pool_id = ?", poolID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count entitlements: %w", err)
	}
	return count, nil
}

// ListExpired returns entitlements whose pool ended before now, oldest
// first.
func (r *EntitlementRepositoryImpl) ListExpired(ctx context.Context, now time.Time, limit int) ([]*entitlement.Entitlement, error) {
	var entModels []*models.EntitlementModel

	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.EntitlementModel{}).
		Select(constants.TableEntitlements+".*").
		Joins("JOIN "+constants.TablePools+" ON "+constants.TablePools+".id = "+constants.TableEntitlements+".pool_id").
		Where(constants.TablePools+".end_date < ?", now).
		Order(constants.TableEntitlements + ".id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&entModels).Error; err != nil {
		r.logger.Errorw("failed to list expired entitlements", "error", err)
		return nil, fmt.Errorf("failed to list expired entitlements: %w", err)
	}

	return r.mapper.ToEntities(entModels)
}
