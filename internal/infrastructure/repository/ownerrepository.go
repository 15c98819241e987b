package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"candlepin/internal/domain/owner"
	"candlepin/internal/infrastructure/persistence/mappers"
	"candlepin/internal/infrastructure/persistence/models"
	"candlepin/internal/shared/db"
	apperrors "candlepin/internal/shared/errors"
	"candlepin/internal/shared/logger"
)

// OwnerRepositoryImpl implements owner.Repository
type OwnerRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.OwnerMapper
	logger logger.Interface
}

func NewOwnerRepository(db *gorm.DB, logger logger.Interface) owner.Repository {
	return &OwnerRepositoryImpl{
		db:     db,
		mapper: mappers.NewOwnerMapper(),
		logger: logger,
	}
}

func (r *OwnerRepositoryImpl) Create(ctx context.Context, o *owner.Owner) error {
	model := r.mapper.ToModel(o)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("owner key already exists", o.Key())
		}
		r.logger.Errorw("failed to create owner", "key", o.Key(), "error", err)
		return fmt.Errorf("failed to create owner: %w", err)
	}

	if err := o.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set owner ID: %w", err)
	}

	r.logger.Infow("owner created", "id", model.ID, "key", model.Key)
	return nil
}

func (r *OwnerRepositoryImpl) Update(ctx context.Context, o *owner.Owner) error {
	model := r.mapper.ToModel(o)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.OwnerModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"display_name":             model.DisplayName,
			"content_access_mode":      model.ContentAccessMode,
			"content_access_mode_list": model.ContentAccessModeList,
			"claimed":                  model.Claimed,
			"claimant_owner":           model.ClaimantOwner,
			"updated_at":               model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update owner", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update owner: %w", result.Error)
	}

	return nil
}

func (r *OwnerRepositoryImpl) GetByID(ctx context.Context, id uint) (*owner.Owner, error) {
	var model models.OwnerModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, owner.ErrOwnerIDNotFound(id)
		}
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *OwnerRepositoryImpl) GetByKey(ctx context.Context, key string) (*owner.Owner, error) {
	var model models.OwnerModel

	if err := db.GetTxFromContext(ctx, r.db).Where("`key` = ?", key).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, owner.ErrOwnerNotFound(key)
		}
		return nil, fmt.Errorf("failed to get owner by key: %w", err)
	}

	return r.mapper.ToEntity(&model)
}
