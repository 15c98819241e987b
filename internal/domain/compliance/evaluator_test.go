package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candlepin/internal/domain/consumer"
	"candlepin/internal/domain/owner"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newOwnerWithMode(t *testing.T, mode owner.ContentAccessMode) *owner.Owner {
	t.Helper()
	o, err := owner.NewOwner("acme", "", mode, false)
	require.NoError(t, err)
	return o
}

func newConsumerWithProducts(t *testing.T, consumerType consumer.Type, products ...string) *consumer.Consumer {
	t.Helper()
	c, err := consumer.NewConsumer("sys-1", "", 1, consumerType)
	require.NoError(t, err)
	installed := make([]consumer.InstalledProduct, 0, len(products))
	for _, p := range products {
		installed = append(installed, consumer.InstalledProduct{ProductID: p})
	}
	c.SetInstalledProducts(installed, now)
	return c
}

func activeView(id uint, productID string, provided ...string) EntitlementView {
	return EntitlementView{
		EntitlementID:      id,
		PoolID:             id,
		ProductID:          productID,
		ProvidedProductIDs: provided,
		Quantity:           1,
		StartDate:          now.AddDate(0, -1, 0),
		EndDate:            now.AddDate(0, 6, 0),
	}
}

func TestEvaluator_Evaluate(t *testing.T) {
	entitlementMode := newOwnerWithMode(t, owner.ContentAccessEntitlement)

	tests := []struct {
		name             string
		products         []string
		entitlements     []EntitlementView
		wantStatus       string
		wantNonCompliant []string
	}{
		{
			name:       "no installed products is valid",
			wantStatus: StatusValid,
		},
		{
			name:         "covered by product",
			products:     []string{"rhel"},
			entitlements: []EntitlementView{activeView(1, "rhel")},
			wantStatus:   StatusValid,
		},
		{
			name:         "covered by provided product",
			products:     []string{"rhel-ha"},
			entitlements: []EntitlementView{activeView(1, "rhel", "rhel-ha")},
			wantStatus:   StatusValid,
		},
		{
			name:             "uncovered product is invalid",
			products:         []string{"rhel", "jboss"},
			entitlements:     []EntitlementView{activeView(1, "rhel")},
			wantStatus:       StatusInvalid,
			wantNonCompliant: []string{"jboss"},
		},
		{
			name:     "expired entitlement does not cover",
			products: []string{"rhel"},
			entitlements: []EntitlementView{{
				EntitlementID: 1, ProductID: "rhel",
				StartDate: now.AddDate(-2, 0, 0), EndDate: now.AddDate(-1, 0, 0),
			}},
			wantStatus:       StatusInvalid,
			wantNonCompliant: []string{"rhel"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newConsumerWithProducts(t, consumer.TypeSystem, tt.products...)
			status := NewEvaluator().Evaluate(c, owner.ResolveGate(entitlementMode), tt.entitlements, now)

			assert.Equal(t, tt.wantStatus, status.Status)
			assert.Equal(t, tt.wantNonCompliant, status.NonCompliantProducts)
			assert.Len(t, status.Reasons, len(tt.wantNonCompliant))
		})
	}
}

func TestEvaluator_GateToggleIsImmediate(t *testing.T) {
	o := newOwnerWithMode(t, owner.ContentAccessEntitlement)
	c := newConsumerWithProducts(t, consumer.TypeSystem, "rhel")
	ev := NewEvaluator()

	status := ev.Evaluate(c, owner.ResolveGate(o), nil, now)
	assert.Equal(t, StatusInvalid, status.Status)
	assert.Equal(t, StatusInvalid, status.ProductStatuses["rhel"])

	_, err := o.UpdateContentAccess(nil, owner.ContentAccessOrgEnvironment)
	require.NoError(t, err)
	status = ev.Evaluate(c, owner.ResolveGate(o), nil, now)
	assert.Equal(t, StatusDisabled, status.Status)
	assert.Equal(t, StatusDisabled, status.ProductStatuses["rhel"])
	assert.Empty(t, status.NonCompliantProducts)
	assert.True(t, status.IsCompliant())

	_, err = o.UpdateContentAccess(nil, owner.ContentAccessEntitlement)
	require.NoError(t, err)
	status = ev.Evaluate(c, owner.ResolveGate(o), nil, now)
	assert.Equal(t, StatusInvalid, status.Status)
}

func TestEvaluator_CompliantUntilIsEarliestProductEnd(t *testing.T) {
	o := newOwnerWithMode(t, owner.ContentAccessEntitlement)
	c := newConsumerWithProducts(t, consumer.TypeSystem, "rhel", "jboss")

	short := activeView(1, "rhel")
	short.EndDate = now.AddDate(0, 1, 0)
	long := activeView(2, "jboss")

	status := NewEvaluator().Evaluate(c, owner.ResolveGate(o), []EntitlementView{short, long}, now)
	require.NotNil(t, status.CompliantUntil)
	assert.Equal(t, short.EndDate, *status.CompliantUntil)
	assert.Equal(t, []uint{1}, status.CompliantProducts["rhel"])
}

func TestEvaluator_DistributorAlwaysValid(t *testing.T) {
	o := newOwnerWithMode(t, owner.ContentAccessEntitlement)
	c := newConsumerWithProducts(t, consumer.TypeDistributor, "rhel")

	status := NewEvaluator().Evaluate(c, owner.ResolveGate(o), nil, now)
	assert.Equal(t, StatusValid, status.Status)
	assert.Empty(t, status.ProductStatuses)
}

func TestStatus_HashIgnoresDateAndOrder(t *testing.T) {
	a := &Status{Date: now, Status: StatusInvalid, NonCompliantProducts: []string{"a", "b"}, CompliantProducts: map[string][]uint{"c": {2, 1}}}
	b := &Status{Date: now.Add(time.Hour), Status: StatusInvalid, NonCompliantProducts: []string{"b", "a"}, CompliantProducts: map[string][]uint{"c": {1, 2}}}
	assert.Equal(t, a.Hash(), b.Hash())

	c := &Status{Status: StatusValid}
	assert.NotEqual(t, a.Hash(), c.Hash())
}
