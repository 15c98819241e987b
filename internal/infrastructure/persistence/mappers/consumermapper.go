package mappers

import (
	"fmt"

	"gorm.io/datatypes"

	"candlepin/internal/domain/consumer"
	"candlepin/internal/infrastructure/persistence/models"
)

// ConsumerMapper converts consumers and their guest rows. Guests must be
// preloaded ordered by position.
type ConsumerMapper interface {
	ToEntity(model *models.ConsumerModel) (*consumer.Consumer, error)
	ToModel(entity *consumer.Consumer) *models.ConsumerModel
	ToGuestModels(consumerID uint, guests []consumer.GuestID) []models.ConsumerGuestModel
	ToEntities(models []*models.ConsumerModel) ([]*consumer.Consumer, error)
}

type consumerMapper struct{}

func NewConsumerMapper() ConsumerMapper {
	return &consumerMapper{}
}

func (m *consumerMapper) ToEntity(model *models.ConsumerModel) (*consumer.Consumer, error) {
	if model == nil {
		return nil, nil
	}

	installed := make([]consumer.InstalledProduct, 0, len(model.InstalledProducts))
	for _, p := range model.InstalledProducts {
		installed = append(installed, consumer.InstalledProduct{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Version:     p.Version,
			Arch:        p.Arch,
		})
	}

	guests := make([]consumer.GuestID, 0, len(model.Guests))
	for _, g := range model.Guests {
		guests = append(guests, consumer.NewGuestID(g.GuestID, g.Attributes.Data()))
	}

	entity, err := consumer.ReconstructConsumer(consumer.ConsumerReconstructParams{
		ID:                   model.ID,
		UUID:                 model.UUID,
		Name:                 model.Name,
		OwnerID:              model.OwnerID,
		Type:                 model.Type,
		InstalledProducts:    installed,
		Facts:                model.Facts.Data(),
		Role:                 model.Role,
		Usage:                model.Usage,
		AddOns:               model.AddOns,
		ServiceLevel:         model.ServiceLevel,
		GuestIDs:             guests,
		CloudProfileModified: model.CloudProfileModified,
		LastCheckin:          model.LastCheckin,
		EntitlementStatus:    model.EntitlementStatus,
		ComplianceHash:       model.ComplianceHash,
		CreatedAt:            model.CreatedAt,
		UpdatedAt:            model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct consumer entity: %w", err)
	}
	return entity, nil
}

// ToModel maps the consumer row. Guests are written separately through
// ToGuestModels.
func (m *consumerMapper) ToModel(entity *consumer.Consumer) *models.ConsumerModel {
	if entity == nil {
		return nil
	}

	installed := make(datatypes.JSONSlice[models.InstalledProductJSON], 0, len(entity.InstalledProducts()))
	for _, p := range entity.InstalledProducts() {
		installed = append(installed, models.InstalledProductJSON{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Version:     p.Version,
			Arch:        p.Arch,
		})
	}
	purpose := entity.SystemPurpose()

	return &models.ConsumerModel{
		ID:                   entity.ID(),
		UUID:                 entity.UUID(),
		Name:                 entity.Name(),
		OwnerID:              entity.OwnerID(),
		Type:                 entity.Type().String(),
		InstalledProducts:    installed,
		Facts:                datatypes.NewJSONType(entity.Facts()),
		Role:                 purpose.Role,
		Usage:                purpose.Usage,
		AddOns:               datatypes.JSONSlice[string](purpose.AddOns),
		ServiceLevel:         purpose.ServiceLevel,
		CloudProfileModified: entity.CloudProfileModified(),
		LastCheckin:          entity.LastCheckin(),
		EntitlementStatus:    entity.EntitlementStatus(),
		ComplianceHash:       entity.ComplianceHash(),
		CreatedAt:            entity.CreatedAt(),
		UpdatedAt:            entity.UpdatedAt(),
	}
}

func (m *consumerMapper) ToGuestModels(consumerID uint, guests []consumer.GuestID) []models.ConsumerGuestModel {
	out := make([]models.ConsumerGuestModel, 0, len(guests))
	for i, g := range guests {
		attrs := g.Attributes
		if attrs == nil {
			attrs = map[string]string{}
		}
		out = append(out, models.ConsumerGuestModel{
			ConsumerID: consumerID,
			GuestID:    g.ID,
			Position:   i,
			Attributes: datatypes.NewJSONType(attrs),
		})
	}
	return out
}

func (m *consumerMapper) ToEntities(models []*models.ConsumerModel) ([]*consumer.Consumer, error) {
	entities := make([]*consumer.Consumer, 0, len(models))
	for i, model := range models {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map consumer at index %d (ID %d): %w", i, model.ID, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
