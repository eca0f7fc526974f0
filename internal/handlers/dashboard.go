package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/procms-api/internal/middleware"
	"github.com/yukikurage/procms-api/internal/services"
)

// DashboardHandler serves the portal dashboards.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats returns the dashboard of the current viewer.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	viewer, _ := middleware.GetViewer(c)

	stats, err := h.dashboardService.Stats(viewer)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
