package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	consumerdto "candlepin/internal/application/consumer/dto"
	consumeruc "candlepin/internal/application/consumer/usecases"
	"candlepin/internal/shared/errors"
	"candlepin/internal/shared/logger"
	"candlepin/internal/shared/utils"
)

type ConsumerHandler struct {
	registerUC  registerConsumerUseCase
	getUC       getConsumerUseCase
	updateUC    updateConsumerUseCase
	putGuestUC  putGuestUseCase
	delGuestUC  deleteGuestUseCase
	overridesUC contentOverridesUseCase
	logger      logger.Interface
}

func NewConsumerHandler(
	registerUC registerConsumerUseCase,
	getUC getConsumerUseCase,
	updateUC updateConsumerUseCase,
	putGuestUC putGuestUseCase,
	delGuestUC deleteGuestUseCase,
	overridesUC contentOverridesUseCase,
	logger logger.Interface,
) *ConsumerHandler {
	return &ConsumerHandler{
		registerUC:  registerUC,
		getUC:       getUC,
		updateUC:    updateUC,
		putGuestUC:  putGuestUC,
		delGuestUC:  delGuestUC,
		overridesUC: overridesUC,
		logger:      logger,
	}
}

// RegisterConsumer handles POST /owners/:key/consumers
func (h *ConsumerHandler) RegisterConsumer(c *gin.Context) {
	var req consumerdto.RegisterConsumerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	cmd := consumeruc.RegisterConsumerCommand{
		OwnerKey:          c.Param("key"),
		UUID:              req.UUID,
		Name:              req.Name,
		Type:              req.Type,
		InstalledProducts: consumerdto.FromInstalledProductDTOs(req.InstalledProducts),
		Facts:             req.Facts,
		GuestIDs:          consumerdto.FromGuestIDDTOs(req.GuestIDs),
	}
	if req.SystemPurpose != nil {
		sp := req.SystemPurpose.ToDomain()
		cmd.SystemPurpose = &sp
	}

	result, err := h.registerUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Warnw("failed to register consumer", "owner", c.Param("key"), "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "consumer registered")
}

// GetConsumer handles GET /consumers/:uuid
func (h *ConsumerHandler) GetConsumer(c *gin.Context) {
	result, err := h.getUC.Execute(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateConsumer handles PUT /consumers/:uuid. Absent sections are left
// untouched; every update counts as a check-in.
func (h *ConsumerHandler) UpdateConsumer(c *gin.Context) {
	var req consumerdto.UpdateConsumerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	cmd := consumeruc.UpdateConsumerCommand{
		UUID:  c.Param("uuid"),
		Name:  req.Name,
		Facts: req.Facts,
	}
	if req.InstalledProducts != nil {
		installed := consumerdto.FromInstalledProductDTOs(*req.InstalledProducts)
		cmd.InstalledProducts = &installed
	}
	if req.SystemPurpose != nil {
		sp := req.SystemPurpose.ToDomain()
		cmd.SystemPurpose = &sp
	}
	if req.GuestIDs != nil {
		guests := consumerdto.FromGuestIDDTOs(*req.GuestIDs)
		cmd.GuestIDs = &guests
	}

	result, err := h.updateUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// PutGuest handles PUT /consumers/:uuid/guestids/:guestId
func (h *ConsumerHandler) PutGuest(c *gin.Context) {
	var req consumerdto.PutGuestRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
			return
		}
	}

	result, err := h.putGuestUC.Execute(c.Request.Context(), consumeruc.PutGuestCommand{
		ConsumerUUID: c.Param("uuid"),
		GuestID:      c.Param("guestId"),
		Attributes:   req.Attributes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// DeleteGuest handles DELETE /consumers/:uuid/guestids/:guestId
func (h *ConsumerHandler) DeleteGuest(c *gin.Context) {
	err := h.delGuestUC.Execute(c.Request.Context(), consumeruc.DeleteGuestCommand{
		ConsumerUUID: c.Param("uuid"),
		GuestID:      c.Param("guestId"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddContentOverrides handles PUT /consumers/:uuid/content_overrides
func (h *ConsumerHandler) AddContentOverrides(c *gin.Context) {
	items, ok := bindOverrides(c, false)
	if !ok {
		return
	}
	result, err := h.overridesUC.Add(c.Request.Context(), c.Param("uuid"), items)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// DeleteContentOverrides handles DELETE /consumers/:uuid/content_overrides.
// An empty body removes every override.
func (h *ConsumerHandler) DeleteContentOverrides(c *gin.Context) {
	items, ok := bindOverrides(c, true)
	if !ok {
		return
	}
	result, err := h.overridesUC.Delete(c.Request.Context(), c.Param("uuid"), items)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListContentOverrides handles GET /consumers/:uuid/content_overrides
func (h *ConsumerHandler) ListContentOverrides(c *gin.Context) {
	result, err := h.overridesUC.List(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"overrides": result})
}

func bindOverrides(c *gin.Context, allowEmptyBody bool) ([]consumeruc.ContentOverrideItem, bool) {
	var req []consumerdto.ContentOverrideDTO
	if !(allowEmptyBody && c.Request.ContentLength == 0) {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
			return nil, false
		}
	}

	items := make([]consumeruc.ContentOverrideItem, 0, len(req))
	for _, o := range req {
		items = append(items, consumeruc.ContentOverrideItem{
			ContentLabel: o.ContentLabel,
			Name:         o.Name,
			Value:        o.Value,
		})
	}
	return items, true
}
