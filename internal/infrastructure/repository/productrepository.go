package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"candlepin/internal/domain/product"
	"candlepin/internal/infrastructure/persistence/mappers"
	"candlepin/internal/infrastructure/persistence/models"
	"candlepin/internal/shared/db"
	"candlepin/internal/shared/logger"
)

type ProductRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ProductMapper
	logger logger.Interface
}

func NewProductRepository(db *gorm.DB, logger logger.Interface) product.Repository {
	return &ProductRepositoryImpl{
		db:     db,
		mapper: mappers.NewProductMapper(),
		logger: logger,
	}
}

// Upsert creates the product or refreshes its name and attributes.
func (r *ProductRepositoryImpl) Upsert(ctx context.Context, p *product.Product) error {
	model := r.mapper.ToModel(p)
	model.UpdatedAt = time.Now().UTC()

	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "attributes", "updated_at"}),
		}).
		Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert product", "product_id", p.ID(), "owner_id", p.OwnerID(), "error", err)
		return fmt.Errorf("failed to upsert product: %w", err)
	}

	return nil
}

func (r *ProductRepositoryImpl) GetByID(ctx context.Context, ownerID uint, id string) (*product.Product, error) {
	var model models.ProductModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("owner_id = ? AND product_id = ?", ownerID, id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrProductNotFound(id)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetByIDs returns the known products among ids; unknown ids are skipped.
func (r *ProductRepositoryImpl) GetByIDs(ctx context.Context, ownerID uint, ids []string) ([]*product.Product, error) {
	if len(ids) == 0 {
		return []*product.Product{}, nil
	}

	var productModels []*models.ProductModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("owner_id = ? AND product_id IN ?", ownerID, ids).
		Order("product_id ASC").
		Find(&productModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	return r.mapper.ToEntities(productModels)
}
