package handlers

import (
	"net/http"

	"github.com/saheminvest/saheminvest-backend/internal/api/response"
	"github.com/saheminvest/saheminvest-backend/internal/apperrors"
	"github.com/saheminvest/saheminvest-backend/internal/service"
)

// DashboardHandler handles HTTP requests for the admin dashboard.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler with the provided service dependency.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Stats handles GET requests to retrieve platform-wide statistics.
//
// Endpoint: GET /api/dashboard/stats
// Response: 200 OK with PlatformStats
// Error: 500 Internal Server Error if aggregation fails
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.GetPlatformStats(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetPlatformStats.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stats)
}
