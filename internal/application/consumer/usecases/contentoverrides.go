package usecases

import (
	"context"
	"fmt"

	"candlepin/internal/application/consumer/dto"
	"candlepin/internal/domain/consumer"
	"candlepin/internal/shared/logger"
)

type ContentOverrideItem struct {
	ContentLabel string
	Name         string
	Value        string
}

func (i ContentOverrideItem) key() string {
	if i.Name == "" {
		return i.ContentLabel
	}
	return fmt.Sprintf("%s.%s", i.ContentLabel, i.Name)
}

// ContentOverridesUseCase adds, removes and lists a consumer's content
// overrides. Bulk changes apply every valid item; invalid items are
// reported as "<label>.<name>: <message>" and skipped.
type ContentOverridesUseCase struct {
	consumerRepo consumer.Repository
	overrideRepo consumer.ContentOverrideRepository
	logger       logger.Interface
}

func NewContentOverridesUseCase(
	consumerRepo consumer.Repository,
	overrideRepo consumer.ContentOverrideRepository,
	logger logger.Interface,
) *ContentOverridesUseCase {
	return &ContentOverridesUseCase{
		consumerRepo: consumerRepo,
		overrideRepo: overrideRepo,
		logger:       logger,
	}
}

func (uc *ContentOverridesUseCase) Add(ctx context.Context, consumerUUID string, items []ContentOverrideItem) (*dto.ContentOverrideResult, error) {
	c, err := uc.consumerRepo.GetByUUID(ctx, consumerUUID)
	if err != nil {
		return nil, err
	}

	var failed []string
	for _, item := range items {
		override, err := consumer.NewContentOverride(item.ContentLabel, item.Name, item.Value)
		if err != nil {
			failed = append(failed, fmt.Sprintf("%s: %s", item.key(), err))
			continue
		}
		if err := uc.overrideRepo.Upsert(ctx, c.ID(), override); err != nil {
			uc.logger.Errorw("failed to store content override", "uuid", consumerUUID, "label", override.ContentLabel, "name", override.Name, "error", err)
			failed = append(failed, fmt.Sprintf("%s: %s", item.key(), err))
		}
	}

	return uc.result(ctx, c, failed)
}

// Delete removes the listed overrides. An item without a name removes every
// override of its label; an empty list removes all overrides.
func (uc *ContentOverridesUseCase) Delete(ctx context.Context, consumerUUID string, items []ContentOverrideItem) (*dto.ContentOverrideResult, error) {
	c, err := uc.consumerRepo.GetByUUID(ctx, consumerUUID)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		if err := uc.overrideRepo.DeleteAll(ctx, c.ID()); err != nil {
			return nil, fmt.Errorf("failed to delete content overrides: %w", err)
		}
		return uc.result(ctx, c, nil)
	}

	var failed []string
	for _, item := range items {
		if item.ContentLabel == "" {
			failed = append(failed, fmt.Sprintf("%s: content label is required", item.key()))
			continue
		}
		removed, err := uc.overrideRepo.Delete(ctx, c.ID(), item.ContentLabel, item.Name)
		if err != nil {
			failed = append(failed, fmt.Sprintf("%s: %s", item.key(), err))
			continue
		}
		if !removed {
			failed = append(failed, fmt.Sprintf("%s: content override not found", item.key()))
		}
	}

	return uc.result(ctx, c, failed)
}

func (uc *ContentOverridesUseCase) List(ctx context.Context, consumerUUID string) ([]dto.ContentOverrideDTO, error) {
	c, err := uc.consumerRepo.GetByUUID(ctx, consumerUUID)
	if err != nil {
		return nil, err
	}
	overrides, err := uc.overrideRepo.List(ctx, c.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list content overrides: %w", err)
	}
	return dto.ToContentOverrideDTOs(overrides), nil
}

func (uc *ContentOverridesUseCase) result(ctx context.Context, c *consumer.Consumer, failed []string) (*dto.ContentOverrideResult, error) {
	overrides, err := uc.overrideRepo.List(ctx, c.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list content overrides: %w", err)
	}
	if len(failed) > 0 {
		uc.logger.Warnw("content override items rejected", "uuid", c.UUID(), "failed", len(failed))
	}
	return &dto.ContentOverrideResult{
		Overrides: dto.ToContentOverrideDTOs(overrides),
		Failed:    failed,
	}, nil
}
