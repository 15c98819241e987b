package mappers

import (
	"fmt"

	"candlepin/internal/domain/owner"
	"candlepin/internal/infrastructure/persistence/models"
)

// OwnerMapper handles the conversion between owners and their persistence model
type OwnerMapper interface {
	ToEntity(model *models.OwnerModel) (*owner.Owner, error)
	ToModel(entity *owner.Owner) *models.OwnerModel
}

type ownerMapper struct{}

func NewOwnerMapper() OwnerMapper {
	return &ownerMapper{}
}

func (m *ownerMapper) ToEntity(model *models.OwnerModel) (*owner.Owner, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := owner.ReconstructOwner(owner.OwnerReconstructParams{
		ID:                    model.ID,
		Key:                   model.Key,
		DisplayName:           model.DisplayName,
		ContentAccessMode:     model.ContentAccessMode,
		ContentAccessModeList: model.ContentAccessModeList,
		Anonymous:             model.Anonymous,
		Claimed:               model.Claimed,
		ClaimantOwner:         model.ClaimantOwner,
		CreatedAt:             model.CreatedAt,
		UpdatedAt:             model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct owner entity: %w", err)
	}
	return entity, nil
}

func (m *ownerMapper) ToModel(entity *owner.Owner) *models.OwnerModel {
	if entity == nil {
		return nil
	}
	return &models.OwnerModel{
		ID:                    entity.ID(),
		Key:                   entity.Key(),
		DisplayName:           entity.DisplayName(),
		ContentAccessMode:     entity.ContentAccessMode().String(),
		ContentAccessModeList: owner.JoinContentAccessModes(entity.ContentAccessModeList()),
		Anonymous:             entity.Anonymous(),
		Claimed:               entity.Claimed(),
		ClaimantOwner:         entity.ClaimantOwner(),
		CreatedAt:             entity.CreatedAt(),
		UpdatedAt:             entity.UpdatedAt(),
	}
}
