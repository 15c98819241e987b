package usecases

import (
	"context"
	"fmt"

	"candlepin/internal/application/owner/dto"
	"candlepin/internal/domain/owner"
	"candlepin/internal/shared/logger"
)

type UpdateContentAccessCommand struct {
	OwnerKey string
	// Mode is kept when empty.
	Mode string
	// ModeList is a comma separated list, kept when empty.
	ModeList string
}

// UpdateContentAccessUseCase switches an owner between entitlement and
// org_environment mode. Evaluations read the stored mode on every call, so
// the switch takes effect on the next request.
type UpdateContentAccessUseCase struct {
	ownerRepo owner.Repository
	logger    logger.Interface
}

func NewUpdateContentAccessUseCase(ownerRepo owner.Repository, logger logger.Interface) *UpdateContentAccessUseCase {
	return &UpdateContentAccessUseCase{ownerRepo: ownerRepo, logger: logger}
}

func (uc *UpdateContentAccessUseCase) Execute(ctx context.Context, cmd UpdateContentAccessCommand) (*dto.OwnerResponse, error) {
	var mode owner.ContentAccessMode
	if cmd.Mode != "" {
		parsed, err := owner.ParseContentAccessMode(cmd.Mode)
		if err != nil {
			return nil, err
		}
		mode = parsed
	}

	var modeList []owner.ContentAccessMode
	if cmd.ModeList != "" {
		parsed, err := owner.ParseContentAccessModeList(cmd.ModeList)
		if err != nil {
			return nil, err
		}
		modeList = parsed
	}

	o, err := uc.ownerRepo.GetByKey(ctx, cmd.OwnerKey)
	if err != nil {
		return nil, err
	}

	previous := o.ContentAccessMode()
	changed, err := o.UpdateContentAccess(modeList, mode)
	if err != nil {
		return nil, err
	}

	if err := uc.ownerRepo.Update(ctx, o); err != nil {
		uc.logger.Errorw("failed to update owner content access", "owner", cmd.OwnerKey, "error", err)
		return nil, fmt.Errorf("failed to update owner: %w", err)
	}

	if changed {
		uc.logger.Infow("owner content access mode changed",
			"owner", o.Key(),
			"from", previous,
			"to", o.ContentAccessMode(),
		)
	}
	return dto.ToOwnerResponse(o), nil
}
