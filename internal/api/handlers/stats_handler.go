// server/internal/api/handlers/stats_handler.go
package handlers

import (
	"net/http"

	"global-track-api-server/internal/shipment"

	"github.com/gin-gonic/gin"
)

// StatsHandler feeds the admin dashboard overview.
type StatsHandler struct {
	Service *shipment.Service
}

func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.Service.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
