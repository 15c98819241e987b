package mappers

import (
	"fmt"

	"candlepin/internal/domain/entitlement"
	"candlepin/internal/infrastructure/persistence/models"
)

// EntitlementMapper handles the conversion between domain entities and persistence models
type EntitlementMapper interface {
	ToEntity(model *models.EntitlementModel) (*entitlement.Entitlement, error)
	ToModel(entity *entitlement.Entitlement) *models.EntitlementModel
	ToEntities(models []*models.EntitlementModel) ([]*entitlement.Entitlement, error)
}

type entitlementMapper struct{}

func NewEntitlementMapper() EntitlementMapper {
	return &entitlementMapper{}
}

func (m *entitlementMapper) ToEntity(model *models.EntitlementModel) (*entitlement.Entitlement, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := entitlement.ReconstructEntitlement(
		model.ID,
		model.ConsumerID,
		model.PoolID,
		model.Quantity,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct entitlement entity: %w", err)
	}
	return entity, nil
}

func (m *entitlementMapper) ToModel(entity *entitlement.Entitlement) *models.EntitlementModel {
	if entity == nil {
		return nil
	}
	return &models.EntitlementModel{
		ID:         entity.ID(),
		ConsumerID: entity.ConsumerID(),
		PoolID:     entity.PoolID(),
		Quantity:   entity.Quantity(),
		CreatedAt:  entity.CreatedAt(),
		UpdatedAt:  entity.UpdatedAt(),
	}
}

func (m *entitlementMapper) ToEntities(models []*models.EntitlementModel) ([]*entitlement.Entitlement, error) {
	entities := make([]*entitlement.Entitlement, 0, len(models))
	for i, model := range models {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map model at index %d (ID %d): %w", i, model.ID, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
