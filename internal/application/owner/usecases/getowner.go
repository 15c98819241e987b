package usecases

import (
	"context"

	"candlepin/internal/application/owner/dto"
	"candlepin/internal/domain/owner"
	"candlepin/internal/shared/logger"
)

type GetOwnerUseCase struct {
	ownerRepo owner.Repository
	logger    logger.Interface
}

func NewGetOwnerUseCase(ownerRepo owner.Repository, logger logger.Interface) *GetOwnerUseCase {
	return &GetOwnerUseCase{ownerRepo: ownerRepo, logger: logger}
}

func (uc *GetOwnerUseCase) Execute(ctx context.Context, key string) (*dto.OwnerResponse, error) {
	o, err := uc.ownerRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return dto.ToOwnerResponse(o), nil
}
