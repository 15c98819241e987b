package owner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContentAccessMode(t *testing.T) {
	mode, err := ParseContentAccessMode("")
	require.NoError(t, err)
	assert.Equal(t, ContentAccessEntitlement, mode)

	mode, err = ParseContentAccessMode(" org_environment ")
	require.NoError(t, err)
	assert.True(t, mode.GateEnabled())

	_, err = ParseContentAccessMode("test_access_mode")
	assert.Error(t, err)
}

func TestResolveGate_FollowsOwnerToggle(t *testing.T) {
	o, err := NewOwner("acme", "", ContentAccessEntitlement, false)
	require.NoError(t, err)
	assert.False(t, ResolveGate(o).Enabled())

	_, err = o.UpdateContentAccess(nil, ContentAccessOrgEnvironment)
	require.NoError(t, err)
	assert.True(t, ResolveGate(o).Enabled())

	_, err = o.UpdateContentAccess(nil, ContentAccessEntitlement)
	require.NoError(t, err)
	assert.False(t, ResolveGate(o).Enabled())

	assert.False(t, ResolveGate(nil).Enabled())
}

func TestContentAccessModeList_RoundTrip(t *testing.T) {
	modes, err := ParseContentAccessModeList("entitlement, org_environment")
	require.NoError(t, err)
	assert.Equal(t, "entitlement,org_environment", JoinContentAccessModes(modes))

	_, err = ParseContentAccessModeList("entitlement,bogus")
	assert.Error(t, err)
}
