package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pooldto "candlepin/internal/application/pool/dto"
	pooluc "candlepin/internal/application/pool/usecases"
	"candlepin/internal/shared/errors"
	"candlepin/internal/shared/logger"
	"candlepin/internal/shared/utils"
)

// PoolHandler serves an owner's product catalogue and pools.
type PoolHandler struct {
	createProductUC createProductUseCase
	createPoolUC    createPoolUseCase
	listPoolsUC     listPoolsUseCase
	logger          logger.Interface
}

func NewPoolHandler(
	createProductUC createProductUseCase,
	createPoolUC createPoolUseCase,
	listPoolsUC listPoolsUseCase,
	logger logger.Interface,
) *PoolHandler {
	return &PoolHandler{
		createProductUC: createProductUC,
		createPoolUC:    createPoolUC,
		listPoolsUC:     listPoolsUC,
		logger:          logger,
	}
}

// CreateProduct handles POST /owners/:key/products
func (h *PoolHandler) CreateProduct(c *gin.Context) {
	var req pooldto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.createProductUC.Execute(c.Request.Context(), pooluc.CreateProductCommand{
		OwnerKey:   c.Param("key"),
		ID:         req.ID,
		Name:       req.Name,
		Attributes: req.Attributes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "")
}

// CreatePool handles POST /owners/:key/pools
func (h *PoolHandler) CreatePool(c *gin.Context) {
	var req pooldto.CreatePoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.createPoolUC.Execute(c.Request.Context(), pooluc.CreatePoolCommand{
		OwnerKey:           c.Param("key"),
		ProductID:          req.ProductID,
		ProvidedProductIDs: req.ProvidedProductIDs,
		Quantity:           req.Quantity,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
	})
	if err != nil {
		h.logger.Warnw("failed to create pool", "owner", c.Param("key"), "product_id", req.ProductID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "")
}

// ListPools handles GET /owners/:key/pools?active_on=
func (h *PoolHandler) ListPools(c *gin.Context) {
	activeOn, err := parseDate(c.Query("active_on"))
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid active_on date", err.Error()))
		return
	}

	result, err := h.listPoolsUC.Execute(c.Request.Context(), pooluc.ListPoolsQuery{
		OwnerKey: c.Param("key"),
		ActiveOn: activeOn,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"pools": result})
}
