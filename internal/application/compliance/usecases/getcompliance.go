package usecases

import (
	"context"
	"fmt"
	"time"

	"candlepin/internal/application/compliance/dto"
	"candlepin/internal/domain/compliance"
	"candlepin/internal/domain/consumer"
	"candlepin/internal/domain/owner"
	"candlepin/internal/domain/shared/events"
	"candlepin/internal/shared/logger"
)

type GetComplianceQuery struct {
	ConsumerUUID string
	// On is the evaluation date; nil means now.
	On *time.Time
}

// GetComplianceUseCase evaluates compliance against the owner's current
// content access mode. Evaluations for the present are recorded on the
// consumer and announce a change of verdict.
type GetComplianceUseCase struct {
	ownerRepo    owner.Repository
	consumerRepo consumer.Repository
	loader       *EntitlementViewLoader
	evaluator    *compliance.Evaluator
	publisher    events.EventPublisher
	logger       logger.Interface
	now          func() time.Time
}

func NewGetComplianceUseCase(
	ownerRepo owner.Repository,
	consumerRepo consumer.Repository,
	loader *EntitlementViewLoader,
	publisher events.EventPublisher,
	logger logger.Interface,
) *GetComplianceUseCase {
	return &GetComplianceUseCase{
		ownerRepo:    ownerRepo,
		consumerRepo: consumerRepo,
		loader:       loader,
		evaluator:    compliance.NewEvaluator(),
		publisher:    publisher,
		logger:       logger,
		now:          time.Now,
	}
}

func (uc *GetComplianceUseCase) Execute(ctx context.Context, query GetComplianceQuery) (*dto.ComplianceStatusResponse, error) {
	c, gate, views, err := loadEvaluationInput(ctx, uc.ownerRepo, uc.consumerRepo, uc.loader, query.ConsumerUUID)
	if err != nil {
		return nil, err
	}

	on := uc.now().UTC()
	current := query.On == nil
	if !current {
		on = query.On.UTC()
	}

	status := uc.evaluator.Evaluate(c, gate, views, on)

	if current {
		uc.record(ctx, c, status)
	}
	return dto.ToComplianceStatusResponse(status), nil
}

// record persists a changed verdict. Failures are logged; the caller still
// gets the freshly computed status.
func (uc *GetComplianceUseCase) record(ctx context.Context, c *consumer.Consumer, status *compliance.Status) {
	hash := status.Hash()
	if !c.RecordCompliance(status.Status, hash) {
		return
	}
	if err := uc.consumerRepo.UpdateComplianceStatus(ctx, c.ID(), status.Status, hash); err != nil {
		uc.logger.Warnw("failed to record compliance status", "uuid", c.UUID(), "error", err)
		return
	}

	uc.logger.Infow("consumer compliance changed", "uuid", c.UUID(), "status", status.Status)
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(consumer.NewComplianceChangedEvent(c.UUID(), status.Status, hash)); err != nil {
		uc.logger.Warnw("failed to publish compliance change", "uuid", c.UUID(), "error", err)
	}
}

type GetPurposeComplianceQuery struct {
	ConsumerUUID string
	On           *time.Time
}

type GetPurposeComplianceUseCase struct {
	ownerRepo    owner.Repository
	consumerRepo consumer.Repository
	loader       *EntitlementViewLoader
	evaluator    *compliance.PurposeEvaluator
	logger       logger.Interface
	now          func() time.Time
}

func NewGetPurposeComplianceUseCase(
	ownerRepo owner.Repository,
	consumerRepo consumer.Repository,
	loader *EntitlementViewLoader,
	logger logger.Interface,
) *GetPurposeComplianceUseCase {
	return &GetPurposeComplianceUseCase{
		ownerRepo:    ownerRepo,
		consumerRepo: consumerRepo,
		loader:       loader,
		evaluator:    compliance.NewPurposeEvaluator(),
		logger:       logger,
		now:          time.Now,
	}
}

func (uc *GetPurposeComplianceUseCase) Execute(ctx context.Context, query GetPurposeComplianceQuery) (*dto.PurposeStatusResponse, error) {
	c, gate, views, err := loadEvaluationInput(ctx, uc.ownerRepo, uc.consumerRepo, uc.loader, query.ConsumerUUID)
	if err != nil {
		return nil, err
	}

	on := uc.now().UTC()
	if query.On != nil {
		on = query.On.UTC()
	}
	return dto.ToPurposeStatusResponse(uc.evaluator.Evaluate(c, gate, views, on)), nil
}

// loadEvaluationInput reads the owner afresh so a content access toggle is
// visible to the very next evaluation.
func loadEvaluationInput(
	ctx context.Context,
	ownerRepo owner.Repository,
	consumerRepo consumer.Repository,
	loader *EntitlementViewLoader,
	consumerUUID string,
) (*consumer.Consumer, owner.Gate, []compliance.EntitlementView, error) {
	c, err := consumerRepo.GetByUUID(ctx, consumerUUID)
	if err != nil {
		return nil, owner.Gate{}, nil, err
	}
	o, err := ownerRepo.GetByID(ctx, c.OwnerID())
	if err != nil {
		return nil, owner.Gate{}, nil, fmt.Errorf("failed to load consumer owner: %w", err)
	}

	gate := owner.ResolveGate(o)
	if gate.Enabled() {
		return c, gate, nil, nil
	}

	views, err := loader.Load(ctx, c)
	if err != nil {
		return nil, owner.Gate{}, nil, err
	}
	return c, gate, views, nil
}
