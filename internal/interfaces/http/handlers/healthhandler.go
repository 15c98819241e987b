package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"candlepin/internal/shared/errors"
	"candlepin/internal/shared/utils"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, errors.ErrorTypeInternal, "database unavailable")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"status": "ok"})
}
