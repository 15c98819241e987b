package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"candlepin/internal/domain/consumer"
	"candlepin/internal/infrastructure/persistence/mappers"
	"candlepin/internal/infrastructure/persistence/models"
	"candlepin/internal/shared/constants"
	"candlepin/internal/shared/db"
	apperrors "candlepin/internal/shared/errors"
	"candlepin/internal/shared/logger"
)

// ConsumerRepositoryImpl implements consumer.Repository. The guest list is
// stored in its own table and rewritten on every update.
type ConsumerRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ConsumerMapper
	logger logger.Interface
}

func NewConsumerRepository(db *gorm.DB, logger logger.Interface) consumer.Repository {
	return &ConsumerRepositoryImpl{
		db:     db,
		mapper: mappers.NewConsumerMapper(),
		logger: logger,
	}
}

func preloadGuests(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Guests", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

func (r *ConsumerRepositoryImpl) Create(ctx context.Context, c *consumer.Consumer) error {
	model := r.mapper.ToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Omit("Guests").Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("consumer uuid already exists", c.UUID())
		}
		r.logger.Errorw("failed to create consumer", "uuid", c.UUID(), "error", err)
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	if err := r.writeGuests(tx, model.ID, c.GuestIDs()); err != nil {
		return err
	}

	if err := c.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set consumer ID: %w", err)
	}

	r.logger.Infow("consumer created", "id", model.ID, "uuid", model.UUID, "type", model.Type)
	return nil
}

func (r *ConsumerRepositoryImpl) Update(ctx context.Context, c *consumer.Consumer) error {
	model := r.mapper.ToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.ConsumerModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":                   model.Name,
			"owner_id":               model.OwnerID,
			"type":                   model.Type,
			"installed_products":     model.InstalledProducts,
			"facts":                  model.Facts,
			"role":                   model.Role,
			"usage":                  model.Usage,
			"add_ons":                model.AddOns,
			"service_level":          model.ServiceLevel,
			"cloud_profile_modified": model.CloudProfileModified,
			"last_checkin":           model.LastCheckin,
			"entitlement_status":     model.EntitlementStatus,
			"compliance_hash":        model.ComplianceHash,
			"updated_at":             model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update consumer", "uuid", c.UUID(), "error", result.Error)
		return fmt.Errorf("failed to update consumer: %w", result.Error)
	}

	if err := tx.Where("consumer_id = ?", model.ID).Delete(&models.ConsumerGuestModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear consumer guests: %w", err)
	}
	return r.writeGuests(tx, model.ID, c.GuestIDs())
}

func (r *ConsumerRepositoryImpl) writeGuests(tx *gorm.DB, consumerID uint, guests []consumer.GuestID) error {
	if len(guests) == 0 {
		return nil
	}
	guestModels := r.mapper.ToGuestModels(consumerID, guests)
	if err := tx.CreateInBatches(guestModels, 200).Error; err != nil {
		r.logger.Errorw("failed to write consumer guests", "consumer_id", consumerID, "count", len(guests), "error", err)
		return fmt.Errorf("failed to write consumer guests: %w", err)
	}
	return nil
}

func (r *ConsumerRepositoryImpl) GetByID(ctx context.Context, id uint) (*consumer.Consumer, error) {
	var model models.ConsumerModel

	if err := preloadGuests(db.GetTxFromContext(ctx, r.db)).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, consumer.ErrConsumerNotFound(fmt.Sprintf("#%d", id))
		}
		return nil, fmt.Errorf("failed to get consumer: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *ConsumerRepositoryImpl) GetByUUID(ctx context.Context, uuid string) (*consumer.Consumer, error) {
	var model models.ConsumerModel

	err := preloadGuests(db.GetTxFromContext(ctx, r.db)).
		Where("uuid = ?", uuid).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, consumer.ErrConsumerNotFound(uuid)
		}
		return nil, fmt.Errorf("failed to get consumer by uuid: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *ConsumerRepositoryImpl) ListByOwner(ctx context.Context, ownerID uint) ([]*consumer.Consumer, error) {
	var consumerModels []*models.ConsumerModel

	if err := preloadGuests(db.GetTxFromContext(ctx, r.db)).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&consumerModels).Error; err != nil {
		r.logger.Errorw("failed to list consumers", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("failed to list consumers: %w", err)
	}

	return r.mapper.ToEntities(consumerModels)
}

// FindGuestHosts maps each guest id to the consumer of ownerID currently
// reporting it. Consumers holding several of the guests are returned as one
// shared instance.
func (r *ConsumerRepositoryImpl) FindGuestHosts(ctx context.Context, ownerID uint, guestIDs []string, excludeConsumerID uint) (map[string]*consumer.Consumer, error) {
	hosts := make(map[string]*consumer.Consumer)
	if len(guestIDs) == 0 {
		return hosts, nil
	}

	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.ConsumerGuestModel
	err := tx.Model(&models.ConsumerGuestModel{}).
		Select(constants.TableConsumerGuests+".*").
		Joins("JOIN "+constants.TableConsumers+" ON "+constants.TableConsumers+".id = "+constants.TableConsumerGuests+".consumer_id").
		Where(constants.TableConsumers+".owner_id = ?", ownerID).
		Where(constants.TableConsumerGuests+".guest_id IN ?", guestIDs).
		Where(constants.TableConsumerGuests+".consumer_id <> ?", excludeConsumerID).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find guest hosts: %w", err)
	}
	if len(rows) == 0 {
		return hosts, nil
	}

	consumerIDs := make([]uint, 0, len(rows))
	seen := make(map[uint]bool, len(rows))
	for _, row := range rows {
		if !seen[row.ConsumerID] {
			seen[row.ConsumerID] = true
			consumerIDs = append(consumerIDs, row.ConsumerID)
		}
	}

	var consumerModels []*models.ConsumerModel
	if err := preloadGuests(tx).Where("id IN ?", consumerIDs).Find(&consumerModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load guest hosts: %w", err)
	}

	byID := make(map[uint]*consumer.Consumer, len(consumerModels))
	for _, model := range consumerModels {
		entity, err := r.mapper.ToEntity(model)
		if err != nil {
			return nil, err
		}
		byID[model.ID] = entity
	}

	for _, row := range rows {
		if host, ok := byID[row.ConsumerID]; ok {
			hosts[row.GuestID] = host
		}
	}
	return hosts, nil
}

func (r *ConsumerRepositoryImpl) UpdateComplianceStatus(ctx context.Context, id uint, status, hash string) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ConsumerModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"entitlement_status": status,
			"compliance_hash":    hash,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update consumer compliance", "id", id, "error", result.Error)
		return fmt.Errorf("failed to update consumer compliance: %w", result.Error)
	}
	return nil
}

func (r *ConsumerRepositoryImpl) ReassignOwner(ctx context.Context, fromOwnerID, toOwnerID uint) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ConsumerModel{}).
		Where("owner_id = ?", fromOwnerID).
		Update("owner_id", toOwnerID)
	if result.Error != nil {
		r.logger.Errorw("failed to reassign consumers", "from_owner_id", fromOwnerID, "to_owner_id", toOwnerID, "error", result.Error)
		return 0, fmt.Errorf("failed to reassign consumers: %w", result.Error)
	}

	r.logger.Infow("consumers reassigned", "from_owner_id", fromOwnerID, "to_owner_id", toOwnerID, "count", result.RowsAffected)
	return result.RowsAffected, nil
}
