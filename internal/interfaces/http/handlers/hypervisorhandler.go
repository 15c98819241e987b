package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	hypervisordto "candlepin/internal/application/hypervisor/dto"
	hypervisoruc "candlepin/internal/application/hypervisor/usecases"
	"candlepin/internal/interfaces/http/middleware"
	"candlepin/internal/shared/errors"
	"candlepin/internal/shared/logger"
	"candlepin/internal/shared/utils"
)

type HypervisorHandler struct {
	checkInUC hypervisorCheckInUseCase
	logger    logger.Interface
}

func NewHypervisorHandler(checkInUC hypervisorCheckInUseCase, logger logger.Interface) *HypervisorHandler {
	return &HypervisorHandler{
		checkInUC: checkInUC,
		logger:    logger,
	}
}

// CheckIn handles POST /hypervisors/:owner?create_missing=
// The body maps host ids to guest id lists. Per host failures are reported
// in the result, so a partly failed check-in is still 200.
func (h *HypervisorHandler) CheckIn(c *gin.Context) {
	createMissing := true
	if raw := c.Query("create_missing"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("create_missing must be a boolean"))
			return
		}
		createMissing = v
	}

	var req hypervisordto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("invalid host to guest mapping", err.Error()))
		return
	}

	result, err := h.checkInUC.Execute(c.Request.Context(), hypervisoruc.CheckInCommand{
		OwnerKey:      c.Param("owner"),
		Principal:     middleware.Principal(c),
		Hosts:         req,
		CreateMissing: createMissing,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("hypervisor check-in processed",
		"owner", c.Param("owner"),
		"created", len(result.Created),
		"updated", len(result.Updated),
		"unchanged", len(result.Unchanged),
		"failed", len(result.Failed),
	)
	utils.SuccessResponse(c, http.StatusOK, "", result)
}
