package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kopytm/home-ppr-app/internal/models"
	"github.com/kopytm/home-ppr-app/internal/service"
	"github.com/kopytm/home-ppr-app/pkg/response"
)

type exportService interface {
	BuildICS(ctx context.Context, horizonDays int) (*service.ICSResult, error)
	ScheduleCSV(ctx context.Context, filter models.EquipmentFilter) ([]byte, error)
	SchedulePDF(ctx context.Context, filter models.EquipmentFilter) ([]byte, error)
}

// ExportHandler serves the calendar and table downloads.
type ExportHandler struct {
	exports        exportService
	defaultHorizon int
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports exportService, defaultHorizon int) *ExportHandler {
	return &ExportHandler{exports: exports, defaultHorizon: defaultHorizon}
}

// ICS godoc
// @Summary Download service reminders as an iCalendar file
// @Tags Export
// @Produce text/calendar
// @Param horizon query int false "Reminder horizon in days"
// @Success 200
// @Router /export/ics [get]
func (h *ExportHandler) ICS(c *gin.Context) {
	result, err := h.exports.BuildICS(c.Request.Context(), queryHorizon(c, h.defaultHorizon))
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.EventCount == 0 {
		response.JSON(c, http.StatusOK, nil, map[string]interface{}{
			"message": "no service dates within the requested horizon",
		})
		return
	}

	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", result.Filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", result.Content)
}

// CSV godoc
// @Summary Download the filtered schedule as CSV
// @Tags Export
// @Produce text/csv
// @Param status query string false "Status filter (active, archived)"
// @Param q query string false "Free-text search"
// @Param horizon query int false "Upcoming horizon in days"
// @Success 200
// @Router /export/csv [get]
func (h *ExportHandler) CSV(c *gin.Context) {
	content, err := h.exports.ScheduleCSV(c.Request.Context(), queryFilter(c, h.defaultHorizon))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=home_ppr_schedule.csv")
	c.Data(http.StatusOK, "text/csv; charset=utf-8", content)
}

// PDF godoc
// @Summary Download the filtered schedule as PDF
// @Tags Export
// @Produce application/pdf
// @Param status query string false "Status filter (active, archived)"
// @Param q query string false "Free-text search"
// @Param horizon query int false "Upcoming horizon in days"
// @Success 200
// @Router /export/pdf [get]
func (h *ExportHandler) PDF(c *gin.Context) {
	content, err := h.exports.SchedulePDF(c.Request.Context(), queryFilter(c, h.defaultHorizon))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=home_ppr_schedule.pdf")
	c.Data(http.StatusOK, "application/pdf", content)
}
