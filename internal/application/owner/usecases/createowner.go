package usecases

import (
	"context"
	"fmt"

	"candlepin/internal/application/owner/dto"
	"candlepin/internal/domain/owner"
	"candlepin/internal/domain/permission"
	"candlepin/internal/shared/logger"
	"candlepin/internal/shared/utils"
)

type CreateOwnerCommand struct {
	Key                   string
	DisplayName           string
	ContentAccessMode     string
	ContentAccessModeList string
	Anonymous             bool
	// CreatedBy receives ALL access on the new owner when set.
	CreatedBy string
}

type CreateOwnerUseCase struct {
	ownerRepo   owner.Repository
	enforcer    permission.PermissionEnforcer
	defaultMode owner.ContentAccessMode
	logger      logger.Interface
}

// NewCreateOwnerUseCase builds the use case. defaultMode applies to owners
// created without an explicit content access mode.
func NewCreateOwnerUseCase(
	ownerRepo owner.Repository,
	enforcer permission.PermissionEnforcer,
	defaultMode owner.ContentAccessMode,
	logger logger.Interface,
) *CreateOwnerUseCase {
	return &CreateOwnerUseCase{
		ownerRepo:   ownerRepo,
		enforcer:    enforcer,
		defaultMode: defaultMode,
		logger:      logger,
	}
}

func (uc *CreateOwnerUseCase) Execute(ctx context.Context, cmd CreateOwnerCommand) (*dto.OwnerResponse, error) {
	var modeList []owner.ContentAccessMode
	if cmd.ContentAccessModeList != "" {
		parsed, err := owner.ParseContentAccessModeList(cmd.ContentAccessModeList)
		if err != nil {
			return nil, err
		}
		modeList = parsed
	}

	var mode owner.ContentAccessMode
	if cmd.ContentAccessMode != "" {
		parsed, err := owner.ParseContentAccessMode(cmd.ContentAccessMode)
		if err != nil {
			return nil, err
		}
		mode = parsed
	} else if listContains(modeList, uc.defaultMode) {
		mode = uc.defaultMode
	}

	o, err := owner.NewOwner(cmd.Key, utils.SanitizeText(cmd.DisplayName), "", cmd.Anonymous)
	if err != nil {
		return nil, err
	}
	if _, err := o.UpdateContentAccess(modeList, mode); err != nil {
		return nil, err
	}

	if err := uc.ownerRepo.Create(ctx, o); err != nil {
		return nil, err
	}

	if cmd.CreatedBy != "" && uc.enforcer != nil {
		if err := uc.enforcer.GrantOwnerAccess(cmd.CreatedBy, o.Key(), permission.AccessAll); err != nil {
			uc.logger.Errorw("failed to grant owner access", "owner", o.Key(), "principal", cmd.CreatedBy, "error", err)
			return nil, fmt.Errorf("failed to grant owner access: %w", err)
		}
	}

	uc.logger.Infow("owner created",
		"owner", o.Key(),
		"content_access_mode", o.ContentAccessMode(),
		"anonymous", o.Anonymous(),
	)
	return dto.ToOwnerResponse(o), nil
}

// listContains treats an empty list as the default mode list.
func listContains(list []owner.ContentAccessMode, mode owner.ContentAccessMode) bool {
	if mode == "" {
		return false
	}
	if len(list) == 0 {
		list = owner.DefaultContentAccessModeList
	}
	for _, m := range list {
		if m == mode {
			return true
		}
	}
	return false
}
