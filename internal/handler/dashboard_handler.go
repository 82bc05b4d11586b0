package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kopytm/home-ppr-app/internal/models"
	"github.com/kopytm/home-ppr-app/pkg/response"
)

type dashboardService interface {
	Summary(ctx context.Context, filter models.EquipmentFilter) (*models.DashboardSummary, error)
	Monthly(ctx context.Context, filter models.EquipmentFilter) ([]models.MonthCount, error)
}

// DashboardHandler exposes the headline counters and the chart series.
type DashboardHandler struct {
	dashboard      dashboardService
	defaultHorizon int
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboard dashboardService, defaultHorizon int) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, defaultHorizon: defaultHorizon}
}

// Summary godoc
// @Summary Active, upcoming and overdue counters
// @Tags Dashboard
// @Produce json
// @Param status query string false "Status filter (active, archived)"
// @Param q query string false "Free-text search"
// @Param horizon query int false "Upcoming horizon in days"
// @Success 200 {object} response.Envelope
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboard.Summary(c.Request.Context(), queryFilter(c, h.defaultHorizon))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}

// Monthly godoc
// @Summary Service counts bucketed by month
// @Tags Dashboard
// @Produce json
// @Param status query string false "Status filter (active, archived)"
// @Param q query string false "Free-text search"
// @Success 200 {object} response.Envelope
// @Router /dashboard/monthly [get]
func (h *DashboardHandler) Monthly(c *gin.Context) {
	series, err := h.dashboard.Monthly(c.Request.Context(), queryFilter(c, h.defaultHorizon))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, series)
}
