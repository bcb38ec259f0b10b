package handlers

import (
	"context"
	"net/http"

	"github.com/yasminalves16/restaurante/internal/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StatsRecomputer interface {
	RecomputeAllStats(ctx context.Context) (int64, error)
}

type MaintenanceHandler struct {
	stats StatsRecomputer
	log   *zap.Logger
}

func NewMaintenanceHandler(stats StatsRecomputer, log *zap.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{stats: stats, log: log}
}

// RecomputeStats godoc
// @Summary Recompute customer stats
// @Tags maintenance
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} dto.ErrorResponse "Internal error"
// @Router /api/maintenance/recompute-stats [post]
func (h *MaintenanceHandler) RecomputeStats(c *gin.Context) {
	n, err := h.stats.RecomputeAllStats(c.Request.Context())
	if err != nil {
		writeError(c, h.log, "recompute_stats", err)
		return
	}
	c.JSON(http.StatusOK, dto.OK("customer stats recomputed", gin.H{"customers": n}))
}
