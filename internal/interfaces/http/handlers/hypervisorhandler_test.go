package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hypervisordto "candlepin/internal/application/hypervisor/dto"
	"candlepin/internal/interfaces/http/handlers/testutil"
	"candlepin/internal/shared/logger"
)

func TestHypervisorHandler_CheckIn(t *testing.T) {
	uc := &mockCheckInUC{result: &hypervisordto.CheckInResult{
		Created: []hypervisordto.HostResponse{{UUID: "h1", Name: "h1", GuestCount: 2}},
		Failed:  []string{"h2: hypervisor is registered to a different owner"},
	}}
	h := NewHypervisorHandler(uc, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/hypervisors/acme", map[string][]string{
		"h1": {"g1", "g2"},
		"h2": {},
	})
	testutil.SetURLParam(c, "owner", "acme")
	testutil.SetPrincipal(c, "virt-who")

	h.CheckIn(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "acme", uc.cmd.OwnerKey)
	assert.Equal(t, "virt-who", uc.cmd.Principal)
	assert.True(t, uc.cmd.CreateMissing, "create_missing defaults to true")
	assert.Equal(t, []string{"g1", "g2"}, uc.cmd.Hosts["h1"])

	var got hypervisordto.CheckInResult
	_, err := testutil.DecodeData(w, &got)
	require.NoError(t, err)
	assert.Equal(t, []string{"h2: hypervisor is registered to a different owner"}, got.Failed)
}

func TestHypervisorHandler_CheckIn_CreateMissingFlag(t *testing.T) {
	uc := &mockCheckInUC{result: &hypervisordto.CheckInResult{}}
	h := NewHypervisorHandler(uc, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/hypervisors/acme", map[string][]string{"h1": {}})
	testutil.SetURLParam(c, "owner", "acme")
	testutil.SetQueryParams(c, map[string]string{"create_missing": "false"})
	h.CheckIn(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, uc.cmd.CreateMissing)

	c, w = testutil.NewTestContext(http.MethodPost, "/api/v1/hypervisors/acme", map[string][]string{"h1": {}})
	testutil.SetQueryParams(c, map[string]string{"create_missing": "maybe"})
	h.CheckIn(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
