package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kopytm/home-ppr-app/internal/models"
)

type fakeDashboardSrv struct {
	summary    *models.DashboardSummary
	series     []models.MonthCount
	err        error
	lastFilter models.EquipmentFilter
}

func (f *fakeDashboardSrv) Summary(_ context.Context, filter models.EquipmentFilter) (*models.DashboardSummary, error) {
	f.lastFilter = filter
	return f.summary, f.err
}

func (f *fakeDashboardSrv) Monthly(_ context.Context, filter models.EquipmentFilter) ([]models.MonthCount, error) {
	f.lastFilter = filter
	return f.series, f.err
}

func TestDashboardHandlerSummary(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeDashboardSrv{summary: &models.DashboardSummary{ActiveCount: 3, UpcomingCount: 1, OverdueCount: 2}}
	handler := NewDashboardHandler(srv, 60)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/summary?horizon=14", nil)

	handler.Summary(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 14, srv.lastFilter.HorizonDays)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, float64(3), envelope.Data["active_count"])
	assert.Equal(t, float64(2), envelope.Data["overdue_count"])
}

func TestDashboardHandlerMonthly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	month, err := models.ParseDate("2024-07-01")
	require.NoError(t, err)
	srv := &fakeDashboardSrv{series: []models.MonthCount{{Month: month, Count: 2}}}
	handler := NewDashboardHandler(srv, 60)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/monthly", nil)

	handler.Monthly(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2024-07-01")
}
