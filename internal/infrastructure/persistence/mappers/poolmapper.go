package mappers

import (
	"fmt"

	"gorm.io/datatypes"

	"candlepin/internal/domain/pool"
	"candlepin/internal/infrastructure/persistence/models"
)

type PoolMapper interface {
	ToEntity(model *models.PoolModel) (*pool.Pool, error)
	ToModel(entity *pool.Pool) *models.PoolModel
	ToEntities(models []*models.PoolModel) ([]*pool.Pool, error)
}

type poolMapper struct{}

func NewPoolMapper() PoolMapper {
	return &poolMapper{}
}

func (m *poolMapper) ToEntity(model *models.PoolModel) (*pool.Pool, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := pool.ReconstructPool(pool.PoolReconstructParams{
		ID:                 model.ID,
		OwnerID:            model.OwnerID,
		ProductID:          model.ProductID,
		ProvidedProductIDs: model.ProvidedProductIDs,
		Quantity:           model.Quantity,
		Consumed:           model.Consumed,
		StartDate:          model.StartDate.UTC(),
		EndDate:            model.EndDate.UTC(),
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
		Version:            model.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct pool entity: %w", err)
	}
	return entity, nil
}

func (m *poolMapper) ToModel(entity *pool.Pool) *models.PoolModel {
	if entity == nil {
		return nil
	}
	return &models.PoolModel{
		ID:                 entity.ID(),
		OwnerID:            entity.OwnerID(),
		ProductID:          entity.ProductID(),
		ProvidedProductIDs: datatypes.JSONSlice[string](entity.ProvidedProductIDs()),
		Quantity:           entity.Quantity(),
		Consumed:           entity.Consumed(),
		StartDate:          entity.StartDate(),
		EndDate:            entity.EndDate(),
		CreatedAt:          entity.CreatedAt(),
		UpdatedAt:          entity.UpdatedAt(),
		Version:            entity.Version(),
	}
}

func (m *poolMapper) ToEntities(models []*models.PoolModel) ([]*pool.Pool, error) {
	entities := make([]*pool.Pool, 0, len(models))
	for i, model := range models {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map pool at index %d (ID %d): %w", i, model.ID, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
