package handlers

import (
	"context"

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
)

type mockCreateOwnerUC struct {
	cmd    owneruc.CreateOwnerCommand
	result *ownerdto.OwnerResponse
	err    error
}

func (m *mockCreateOwnerUC) Execute(ctx context.Context, cmd owneruc.CreateOwnerCommand) (*ownerdto.OwnerResponse, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockGetOwnerUC struct {
	result *ownerdto.OwnerResponse
	err    error
}

func (m *mockGetOwnerUC) Execute(ctx context.Context, key string) (*ownerdto.OwnerResponse, error) {
	return m.result, m.err
}

type mockUpdateContentAccessUC struct {
	cmd    owneruc.UpdateContentAccessCommand
	result *ownerdto.OwnerResponse
	err    error
}

func (m *mockUpdateContentAccessUC) Execute(ctx context.Context, cmd owneruc.UpdateContentAccessCommand) (*ownerdto.OwnerResponse, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockClaimOwnerUC struct {
	cmd    owneruc.ClaimOwnerCommand
	result *ownerdto.ClaimOwnerResponse
	err    error
}

func (m *mockClaimOwnerUC) Execute(ctx context.Context, cmd owneruc.ClaimOwnerCommand) (*ownerdto.ClaimOwnerResponse, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockRegisterConsumerUC struct {
	cmd    consumeruc.RegisterConsumerCommand
	result *consumerdto.ConsumerResponse
	err    error
}

func (m *mockRegisterConsumerUC) Execute(ctx context.Context, cmd consumeruc.RegisterConsumerCommand) (*consumerdto.ConsumerResponse, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockGetConsumerUC struct {
	result *consumerdto.ConsumerResponse
	err    error
}

func (m *mockGetConsumerUC) Execute(ctx context.Context, consumerUUID string) (*consumerdto.ConsumerResponse, error) {
	return m.result, m.err
}

type mockUpdateConsumerUC struct {
	cmd    consumeruc.UpdateConsumerCommand
	result *consumerdto.ConsumerResponse
	err    error
}

func (m *mockUpdateConsumerUC) Execute(ctx context.Context, cmd consumeruc.UpdateConsumerCommand) (*consumerdto.ConsumerResponse, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockPutGuestUC struct {
	cmd    consumeruc.PutGuestCommand
	result *consumerdto.ConsumerResponse
	err    error
}

func (m *mockPutGuestUC) Execute(ctx context.Context, cmd consumeruc.PutGuestCommand) (*consumerdto.ConsumerResponse, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockDeleteGuestUC struct {
	cmd consumeruc.DeleteGuestCommand
	err error
}

func (m *mockDeleteGuestUC) Execute(ctx context.Context, cmd consumeruc.DeleteGuestCommand) error {
	m.cmd = cmd
	return m.err
}

type mockContentOverridesUC struct {
	added   []consumeruc.ContentOverrideItem
	deleted []consumeruc.ContentOverrideItem
	result  *consumerdto.ContentOverrideResult
	list    []consumerdto.ContentOverrideDTO
	err     error
}

func (m *mockContentOverridesUC) Add(ctx context.Context, consumerUUID string, items []consumeruc.ContentOverrideItem) (*consumerdto.ContentOverrideResult, error) {
	m.added = items
	return m.result, m.err
}

func (m *mockContentOverridesUC) Delete(ctx context.Context, consumerUUID string, items []consumeruc.ContentOverrideItem) (*consumerdto.ContentOverrideResult, error) {
	m.deleted = items
	return m.result, m.err
}

func (m *mockContentOverridesUC) List(ctx context.Context, consumerUUID string) ([]consumerdto.ContentOverrideDTO, error) {
	return m.list, m.err
}

type mockBindPoolUC struct {
	cmd    entitlementuc.BindPoolCommand
	called bool
	result *entitlementdto.EntitlementResponse
	err    error
}

func (m *mockBindPoolUC) Execute(ctx context.Context, cmd entitlementuc.BindPoolCommand) (*entitlementdto.EntitlementResponse, error) {
	m.cmd = cmd
	m.called = true
	return m.result, m.err
}

type mockListEntitlementsUC struct {
	result []*entitlementdto.EntitlementResponse
	err    error
}

func (m *mockListEntitlementsUC) Execute(ctx context.Context, consumerUUID string) ([]*entitlementdto.EntitlementResponse, error) {
	return m.result, m.err
}

type mockRevokeEntitlementUC struct {
	id  uint
	err error
}

func (m *mockRevokeEntitlementUC) Execute(ctx context.Context, entitlementID uint) error {
	m.id = entitlementID
	return m.err
}

type mockGetComplianceUC struct {
	query  complianceuc.GetComplianceQuery
	result *compliancedto.ComplianceStatusResponse
	err    error
}

func (m *mockGetComplianceUC) Execute(ctx context.Context, query complianceuc.GetComplianceQuery) (*compliancedto.ComplianceStatusResponse, error) {
	m.query = query
	return m.result, m.err
}

type mockGetPurposeComplianceUC struct {
	query  complianceuc.GetPurposeComplianceQuery
	result *compliancedto.PurposeStatusResponse
	err    error
}

func (m *mockGetPurposeComplianceUC) Execute(ctx context.Context, query complianceuc.GetPurposeComplianceQuery) (*compliancedto.PurposeStatusResponse, error) {
	m.query = query
	return m.result, m.err
}

type mockCheckInUC struct {
	cmd    hypervisoruc.CheckInCommand
	result *hypervisordto.CheckInResult
	err    error
}

func (m *mockCheckInUC) Execute(ctx context.Context, cmd hypervisoruc.CheckInCommand) (*hypervisordto.CheckInResult, error) {
	m.cmd = cmd
	return m.result, m.err
}
