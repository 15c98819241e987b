package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	complianceuc "candlepin/internal/application/compliance/usecases"
	"candlepin/internal/shared/errors"
	"candlepin/internal/shared/logger"
	"candlepin/internal/shared/utils"
)

type ComplianceHandler struct {
	complianceUC getComplianceUseCase
	purposeUC    getPurposeComplianceUseCase
	logger       logger.Interface
}

func NewComplianceHandler(complianceUC getComplianceUseCase, purposeUC getPurposeComplianceUseCase, logger logger.Interface) *ComplianceHandler {
	return &ComplianceHandler{
		complianceUC: complianceUC,
		purposeUC:    purposeUC,
		logger:       logger,
	}
}

// GetCompliance handles GET /consumers/:uuid/compliance?on=
func (h *ComplianceHandler) GetCompliance(c *gin.Context) {
	on, err := parseDate(c.Query("on"))
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid on date", err.Error()))
		return
	}

	result, err := h.complianceUC.Execute(c.Request.Context(), complianceuc.GetComplianceQuery{
		ConsumerUUID: c.Param("uuid"),
		On:           on,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetPurposeCompliance handles GET /consumers/:uuid/purpose_compliance?on=
func (h *ComplianceHandler) GetPurposeCompliance(c *gin.Context) {
	on, err := parseDate(c.Query("on"))
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid on date", err.Error()))
		return
	}

	result, err := h.purposeUC.Execute(c.Request.Context(), complianceuc.GetPurposeComplianceQuery{
		ConsumerUUID: c.Param("uuid"),
		On:           on,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}
