package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candlepin/internal/domain/consumer"
	"candlepin/internal/domain/owner"
)

func consumerWithRole(t *testing.T, role string) *consumer.Consumer {
	t.Helper()
	c, err := consumer.NewConsumer("sys-1", "", 1, consumer.TypeSystem)
	require.NoError(t, err)
	c.SetSystemPurpose(consumer.SystemPurpose{Role: role}, now)
	return c
}

func TestPurposeEvaluator_MismatchThenDisabled(t *testing.T) {
	o := newOwnerWithMode(t, owner.ContentAccessEntitlement)
	c := consumerWithRole(t, "myrole")
	ev := NewPurposeEvaluator()

	status := ev.Evaluate(c, owner.ResolveGate(o), nil, now)
	assert.Equal(t, PurposeMismatched, status.Status)
	require.NotNil(t, status.NonCompliantRole)
	assert.Equal(t, "myrole", *status.NonCompliantRole)
	assert.Equal(t, []string{`The requested role "myrole" is not provided by a currently consumed subscription.`}, status.Reasons)

	_, err := o.UpdateContentAccess(nil, owner.ContentAccessOrgEnvironment)
	require.NoError(t, err)

	status = ev.Evaluate(c, owner.ResolveGate(o), nil, now)
	assert.Equal(t, PurposeDisabled, status.Status)
	assert.Nil(t, status.NonCompliantRole)
}

func TestPurposeEvaluator_Matched(t *testing.T) {
	o := newOwnerWithMode(t, owner.ContentAccessEntitlement)
	c := consumerWithRole(t, "Red Hat Enterprise Linux Server")

	ent := activeView(4, "rhel")
	ent.Roles = []string{"red hat enterprise linux server", "Workstation"}

	status := NewPurposeEvaluator().Evaluate(c, owner.ResolveGate(o), []EntitlementView{ent}, now)
	assert.Equal(t, PurposeMatched, status.Status)
	assert.Nil(t, status.NonCompliantRole)
	assert.Equal(t, []uint{4}, status.CompliantRole["Red Hat Enterprise Linux Server"])
}

func TestPurposeEvaluator_ExpiredEntitlementDoesNotMatch(t *testing.T) {
	o := newOwnerWithMode(t, owner.ContentAccessEntitlement)
	c := consumerWithRole(t, "myrole")

	ent := activeView(4, "rhel")
	ent.Roles = []string{"myrole"}
	ent.EndDate = now.AddDate(0, 0, -1)

	status := NewPurposeEvaluator().Evaluate(c, owner.ResolveGate(o), []EntitlementView{ent}, now)
	assert.Equal(t, PurposeMismatched, status.Status)
}

func TestPurposeEvaluator_NoRole(t *testing.T) {
	o := newOwnerWithMode(t, owner.ContentAccessEntitlement)
	status := NewPurposeEvaluator().Evaluate(consumerWithRole(t, ""), owner.ResolveGate(o), nil, now)
	assert.Equal(t, PurposeNotSpecified, status.Status)
	assert.Nil(t, status.NonCompliantRole)
}
