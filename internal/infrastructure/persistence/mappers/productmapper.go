package mappers

import (
	"fmt"

	"gorm.io/datatypes"

	"candlepin/internal/domain/product"
	"candlepin/internal/infrastructure/persistence/models"
)

type ProductMapper interface {
	ToEntity(model *models.ProductModel) (*product.Product, error)
	ToModel(entity *product.Product) *models.ProductModel
	ToEntities(models []*models.ProductModel) ([]*product.Product, error)
}

type productMapper struct{}

func NewProductMapper() ProductMapper {
	return &productMapper{}
}

func (m *productMapper) ToEntity(model *models.ProductModel) (*product.Product, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := product.ReconstructProduct(model.ProductID, model.OwnerID, model.Name, model.Attributes.Data(), model.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct product entity: %w", err)
	}
	return entity, nil
}

func (m *productMapper) ToModel(entity *product.Product) *models.ProductModel {
	if entity == nil {
		return nil
	}
	return &models.ProductModel{
		OwnerID:    entity.OwnerID(),
		ProductID:  entity.ID(),
		Name:       entity.Name(),
		Attributes: datatypes.NewJSONType(entity.Attributes()),
		CreatedAt:  entity.CreatedAt(),
	}
}

func (m *productMapper) ToEntities(models []*models.ProductModel) ([]*product.Product, error) {
	entities := make([]*product.Product, 0, len(models))
	for i, model := range models {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map product at index %d: %w", i, err)
		}
		if entity != nil {
			entities = append(entities, entity)
		}
	}
	return entities, nil
}
