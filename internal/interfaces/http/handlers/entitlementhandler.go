package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	entitlementuc "candlepin/internal/application/entitlement/usecases"
	"candlepin/internal/shared/errors"
	"candlepin/internal/shared/logger"
	"candlepin/internal/shared/utils"
)

type EntitlementHandler struct {
	bindUC   bindPoolUseCase
	listUC   listEntitlementsUseCase
	revokeUC revokeEntitlementUseCase
	logger   logger.Interface
}

func NewEntitlementHandler(
	bindUC bindPoolUseCase,
	listUC listEntitlementsUseCase,
	revokeUC revokeEntitlementUseCase,
	logger logger.Interface,
) *EntitlementHandler {
	return &EntitlementHandler{
		bindUC:   bindUC,
		listUC:   listUC,
		revokeUC: revokeUC,
		logger:   logger,
	}
}

// Bind handles POST /consumers/:uuid/entitlements?pool=&quantity=
// Quantity defaults to 1.
func (h *EntitlementHandler) Bind(c *gin.Context) {
	poolID, err := strconv.ParseUint(c.Query("pool"), 10, 64)
	if err != nil || poolID == 0 {
		utils.ErrorResponseWithError(c, errors.NewValidationError("pool query parameter must be a positive integer"))
		return
	}

	quantity := int64(1)
	if raw := c.Query("quantity"); raw != "" {
		quantity, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("quantity must be an integer"))
			return
		}
	}

	result, err := h.bindUC.Execute(c.Request.Context(), entitlementuc.BindPoolCommand{
		ConsumerUUID: c.Param("uuid"),
		PoolID:       uint(poolID),
		Quantity:     quantity,
	})
	if err != nil {
		h.logger.Infow("bind rejected", "consumer_uuid", c.Param("uuid"), "pool_id", poolID, "quantity", quantity, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "")
}

// ListEntitlements handles GET /consumers/:uuid/entitlements
func (h *EntitlementHandler) ListEntitlements(c *gin.Context) {
	result, err := h.listUC.Execute(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"entitlements": result})
}

// Revoke handles DELETE /entitlements/:id
func (h *EntitlementHandler) Revoke(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid entitlement id"))
		return
	}

	if err := h.revokeUC.Execute(c.Request.Context(), uint(id)); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
