package usecases

import (
	"context"
	"fmt"

	"candlepin/internal/application/pool/dto"
	"candlepin/internal/domain/owner"
	"candlepin/internal/domain/product"
	"candlepin/internal/shared/logger"
	"candlepin/internal/shared/utils"
)

type CreateProductCommand struct {
	OwnerKey   string
	ID         string
	Name       string
	Attributes map[string]string
}

// CreateProductUseCase creates or refreshes a product in the owner's
// catalogue.
type CreateProductUseCase struct {
	ownerRepo   owner.Repository
	productRepo product.Repository
	logger      logger.Interface
}

func NewCreateProductUseCase(ownerRepo owner.Repository, productRepo product.Repository, logger logger.Interface) *CreateProductUseCase {
	return &CreateProductUseCase{
		ownerRepo:   ownerRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

func (uc *CreateProductUseCase) Execute(ctx context.Context, cmd CreateProductCommand) (*dto.ProductResponse, error) {
	o, err := uc.ownerRepo.GetByKey(ctx, cmd.OwnerKey)
	if err != nil {
		return nil, err
	}

	p, err := product.NewProduct(cmd.ID, o.ID(), utils.SanitizeText(cmd.Name), cmd.Attributes)
	if err != nil {
		return nil, err
	}

	if err := uc.productRepo.Upsert(ctx, p); err != nil {
		uc.logger.Errorw("failed to save product", "owner", cmd.OwnerKey, "product_id", cmd.ID, "error", err)
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	uc.logger.Infow("product saved", "owner", cmd.OwnerKey, "product_id", p.ID())
	return dto.ToProductResponse(p), nil
}
