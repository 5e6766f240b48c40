package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"budgeteer/internal/services"
)

// DashboardHandler serves the current-month overview.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
	now              func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, now: time.Now}
}

// GetDashboard handles the dashboard request.
// @Summary     Dashboard
// @Description Current budget, this month's progress and the latest expenses and incomes. 404 NO_CURRENT_BUDGET means setup is required.
// @Tags        dashboard
// @Produce     json
// @Success     200 {object} services.Dashboard "Dashboard"
// @Failure     404 {object} ErrorResponse "No budget in effect"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.dashboardService.Dashboard(h.now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
