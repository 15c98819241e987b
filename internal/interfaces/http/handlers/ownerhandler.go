package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ownerdto "candlepin/internal/application/owner/dto"
	owneruc "candlepin/internal/application/owner/usecases"
	"candlepin/internal/interfaces/http/middleware"
	"candlepin/internal/shared/errors"
	"candlepin/internal/shared/logger"
	"candlepin/internal/shared/utils"
)

type OwnerHandler struct {
	createOwnerUC         createOwnerUseCase
	getOwnerUC            getOwnerUseCase
	updateContentAccessUC updateContentAccessUseCase
	claimOwnerUC          claimOwnerUseCase
	logger                logger.Interface
}

func NewOwnerHandler(
	createOwnerUC createOwnerUseCase,
	getOwnerUC getOwnerUseCase,
	updateContentAccessUC updateContentAccessUseCase,
	claimOwnerUC claimOwnerUseCase,
	logger logger.Interface,
) *OwnerHandler {
	return &OwnerHandler{
		createOwnerUC:         createOwnerUC,
		getOwnerUC:            getOwnerUC,
		updateContentAccessUC: updateContentAccessUC,
		claimOwnerUC:          claimOwnerUC,
		logger:                logger,
	}
}

// CreateOwner handles POST /owners. The caller receives ALL access on the
// new owner.
func (h *OwnerHandler) CreateOwner(c *gin.Context) {
	var req ownerdto.CreateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.createOwnerUC.Execute(c.Request.Context(), owneruc.CreateOwnerCommand{
		Key:                   req.Key,
		DisplayName:           req.DisplayName,
		ContentAccessMode:     req.ContentAccessMode,
		ContentAccessModeList: req.ContentAccessModeList,
		Anonymous:             req.Anonymous,
		CreatedBy:             middleware.Principal(c),
	})
	if err != nil {
		h.logger.Warnw("failed to create owner", "key", req.Key, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "owner created")
}

// GetOwner handles GET /owners/:key
func (h *OwnerHandler) GetOwner(c *gin.Context) {
	result, err := h.getOwnerUC.Execute(c.Request.Context(), c.Param("key"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateContentAccess handles PUT /owners/:key/content-access
func (h *OwnerHandler) UpdateContentAccess(c *gin.Context) {
	var req ownerdto.UpdateContentAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.updateContentAccessUC.Execute(c.Request.Context(), owneruc.UpdateContentAccessCommand{
		OwnerKey: c.Param("key"),
		Mode:     req.ContentAccessMode,
		ModeList: req.ContentAccessModeList,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "content access updated", result)
}

// ClaimOwner handles POST /owners/:key/claim
func (h *OwnerHandler) ClaimOwner(c *gin.Context) {
	var req ownerdto.ClaimOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.claimOwnerUC.Execute(c.Request.Context(), owneruc.ClaimOwnerCommand{
		OwnerKey:    c.Param("key"),
		ClaimantKey: req.ClaimantOwnerKey,
	})
	if err != nil {
		h.logger.Warnw("failed to claim owner", "owner", c.Param("key"), "claimant", req.ClaimantOwnerKey, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "owner claimed", result)
}
