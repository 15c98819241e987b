package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	compliancedto "candlepin/internal/application/compliance/dto"
	"candlepin/internal/interfaces/http/handlers/testutil"
	"candlepin/internal/shared/logger"
)

func TestComplianceHandler_GetCompliance(t *testing.T) {
	uc := &mockGetComplianceUC{result: &compliancedto.ComplianceStatusResponse{Status: "invalid"}}
	h := NewComplianceHandler(uc, &mockGetPurposeComplianceUC{}, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/consumers/c-1/compliance", nil)
	testutil.SetURLParam(c, "uuid", "c-1")
	h.GetCompliance(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "c-1", uc.query.ConsumerUUID)
	assert.Nil(t, uc.query.On, "no date means now")

	c, w = testutil.NewTestContext(http.MethodGet, "/api/v1/consumers/c-1/compliance", nil)
	testutil.SetURLParam(c, "uuid", "c-1")
	testutil.SetQueryParams(c, map[string]string{"on": "2024-03-01"})
	h.GetCompliance(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.query.On)
	assert.True(t, uc.query.On.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestComplianceHandler_RejectsBadDate(t *testing.T) {
	uc := &mockGetPurposeComplianceUC{}
	h := NewComplianceHandler(&mockGetComplianceUC{}, uc, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/consumers/c-1/purpose_compliance", nil)
	testutil.SetURLParam(c, "uuid", "c-1")
	testutil.SetQueryParams(c, map[string]string{"on": "yesterday"})
	h.GetPurposeCompliance(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, uc.query.ConsumerUUID)
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2024-03-01T10:00:00+02:00")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)))

	got, err = parseDate("")
	require.NoError(t, err)
	assert.Nil(t, got)
}
