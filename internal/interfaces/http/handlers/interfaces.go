package handlers

import (
	"context"
	"time"

	compliancedto "candlepin/internal/application/compliance/dto"
	complianceuc "candlepin/internal/application/compliance/usecases"
	consumerdto "candlepin/internal/application/consumer/dto"
	consumeruc "candlepin/internal/application/consumer/usecases"
	entitlementdto "candlepin/internal/application/entitlement/dto"
	entitlementuc "candlepin/internal/application/entitlement/usecases"
	hypervisordto "candlepin/internal/application/hypervisor/dto"
	hypervisoruc "candlepin/internal/application/hypervisor/usecases"
	ownerdto "candlepin/internal/application/owner/dto"
	owneruc "candlepin/internal/application/owner/usecases"
	pooldto "candlepin/internal/application/pool/dto"
	pooluc "candlepin/internal/application/pool/usecases"
)

// Use case interfaces consumed by the handlers.

type createOwnerUseCase interface {
	Execute(ctx context.Context, cmd owneruc.CreateOwnerCommand) (*ownerdto.OwnerResponse, error)
}

type getOwnerUseCase interface {
	Execute(ctx context.Context, key string) (*ownerdto.OwnerResponse, error)
}

type updateContentAccessUseCase interface {
	Execute(ctx context.Context, cmd owneruc.UpdateContentAccessCommand) (*ownerdto.OwnerResponse, error)
}

type claimOwnerUseCase interface {
	Execute(ctx context.Context, cmd owneruc.ClaimOwnerCommand) (*ownerdto.ClaimOwnerResponse, error)
}

type createProductUseCase interface {
	Execute(ctx context.Context, cmd pooluc.CreateProductCommand) (*pooldto.ProductResponse, error)
}

type createPoolUseCase interface {
	Execute(ctx context.Context, cmd pooluc.CreatePoolCommand) (*pooldto.PoolResponse, error)
}

type listPoolsUseCase interface {
	Execute(ctx context.Context, query pooluc.ListPoolsQuery) ([]*pooldto.PoolResponse, error)
}

type registerConsumerUseCase interface {
	Execute(ctx context.Context, cmd consumeruc.RegisterConsumerCommand) (*consumerdto.ConsumerResponse, error)
}

type getConsumerUseCase interface {
	Execute(ctx context.Context, consumerUUID string) (*consumerdto.ConsumerResponse, error)
}

type updateConsumerUseCase interface {
	Execute(ctx context.Context, cmd consumeruc.UpdateConsumerCommand) (*consumerdto.ConsumerResponse, error)
}

type putGuestUseCase interface {
	Execute(ctx context.Context, cmd consumeruc.PutGuestCommand) (*consumerdto.ConsumerResponse, error)
}

type deleteGuestUseCase interface {
	Execute(ctx context.Context, cmd consumeruc.DeleteGuestCommand) error
}

type contentOverridesUseCase interface {
	Add(ctx context.Context, consumerUUID string, items []consumeruc.ContentOverrideItem) (*consumerdto.ContentOverrideResult, error)
	Delete(ctx context.Context, consumerUUID string, items []consumeruc.ContentOverrideItem) (*consumerdto.ContentOverrideResult, error)
	List(ctx context.Context, consumerUUID string) ([]consumerdto.ContentOverrideDTO, error)
}

type bindPoolUseCase interface {
	Execute(ctx context.Context, cmd entitlementuc.BindPoolCommand) (*entitlementdto.EntitlementResponse, error)
}

type listEntitlementsUseCase interface {
	Execute(ctx context.Context, consumerUUID string) ([]*entitlementdto.EntitlementResponse, error)
}

type revokeEntitlementUseCase interface {
	Execute(ctx context.Context, entitlementID uint) error
}

type getComplianceUseCase interface {
	Execute(ctx context.Context, query complianceuc.GetComplianceQuery) (*compliancedto.ComplianceStatusResponse, error)
}

type getPurposeComplianceUseCase interface {
	Execute(ctx context.Context, query complianceuc.GetPurposeComplianceQuery) (*compliancedto.PurposeStatusResponse, error)
}

type hypervisorCheckInUseCase interface {
	Execute(ctx context.Context, cmd hypervisoruc.CheckInCommand) (*hypervisordto.CheckInResult, error)
}

// parseDate accepts RFC 3339 timestamps or plain dates, which mean the
// start of that day in UTC.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
