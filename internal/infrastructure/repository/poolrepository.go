package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"candlepin/internal/domain/pool"
	"candlepin/internal/infrastructure/persistence/mappers"
	"candlepin/internal/infrastructure/persistence/models"
	"candlepin/internal/shared/db"
	"candlepin/internal/shared/logger"
)

type PoolRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PoolMapper
	logger logger.Interface
}

func NewPoolRepository(db *gorm.DB, logger logger.Interface) pool.Repository {
	return &PoolRepositoryImpl{
		db:     db,
		mapper: mappers.NewPoolMapper(),
		logger: logger,
	}
}

func (r *PoolRepositoryImpl) Create(ctx context.Context, p *pool.Pool) error {
	model := r.mapper.ToModel(p)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create pool", "owner_id", p.OwnerID(), "product_id", p.ProductID(), "error", err)
		return fmt.Errorf("failed to create pool: %w", err)
	}

	if err := p.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set pool ID: %w", err)
	}

	r.logger.Infow("pool created", "id", model.ID, "product_id", model.ProductID, "quantity", model.Quantity)
	return nil
}

func (r *PoolRepositoryImpl) GetByID(ctx context.Context, id uint) (*pool.Pool, error) {
	return r.get(db.GetTxFromContext(ctx, r.db), id)
}

// GetForUpdate locks the pool row until the surrounding transaction ends.
// SQLite has no row locks; its single writer already serializes binds.
func (r *PoolRepositoryImpl) GetForUpdate(ctx context.Context, id uint) (*pool.Pool, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	if tx.Dialector.Name() != "sqlite" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.get(tx, id)
}

func (r *PoolRepositoryImpl) get(tx *gorm.DB, id uint) (*pool.Pool, error) {
	var model models.PoolModel

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pool.ErrPoolNotFound(id)
		}
		return nil, fmt.Errorf("failed to get pool: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *PoolRepositoryImpl) GetByIDs(ctx context.Context, ids []uint) ([]*pool.Pool, error) {
	if len(ids) == 0 {
		return []*pool.Pool{}, nil
	}

	var poolModels []*models.PoolModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Order("id ASC").Find(&poolModels).Error; err != nil {
		return nil, fmt.Errorf("failed to get pools: %w", err)
	}

	return r.mapper.ToEntities(poolModels)
}

// ListByOwner lists the owner's pools, optionally only those active on the
// given instant.
func (r *PoolRepositoryImpl) ListByOwner(ctx context.Context, ownerID uint, activeOn *time.Time) ([]*pool.Pool, error) {
	query := db.GetTxFromContext(ctx, r.db).Where("owner_id = ?", ownerID)
	if activeOn != nil {
		query = query.Where("start_date <= ? AND end_date >= ?", *activeOn, *activeOn)
	}

	var poolModels []*models.PoolModel
	if err := query.Order("id ASC").Find(&poolModels).Error; err != nil {
		r.logger.Errorw("failed to list pools", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("failed to list pools: %w", err)
	}

	return r.mapper.ToEntities(poolModels)
}

// SaveConsumption writes consumed guarded by the version the pool was read
// with and bumps the version.
func (r *PoolRepositoryImpl) SaveConsumption(ctx context.Context, p *pool.Pool) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.PoolModel{}).
		Where("id = ? AND version = ?", p.ID(), p.Version()).
		Updates(map[string]interface{}{
			"consumed":   p.Consumed(),
			"version":    gorm.Expr("version + 1"),
			"updated_at": p.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to save pool consumption", "id", p.ID(), "error", result.Error)
		return fmt.Errorf("failed to save pool consumption: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		r.logger.Warnw("pool version conflict", "id", p.ID(), "version", p.Version())
		return pool.ErrVersionConflict
	}

	p.MarkSaved()
	return nil
}
