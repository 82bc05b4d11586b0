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
	"github.com/kopytm/home-ppr-app/internal/service"
)

type fakeExportSrv struct {
	ics         *service.ICSResult
	csv         []byte
	pdf         []byte
	err         error
	lastHorizon int
}

func (f *fakeExportSrv) BuildICS(_ context.Context, horizonDays int) (*service.ICSResult, error) {
	f.lastHorizon = horizonDays
	return f.ics, f.err
}

func (f *fakeExportSrv) ScheduleCSV(context.Context, models.EquipmentFilter) ([]byte, error) {
	return f.csv, f.err
}

func (f *fakeExportSrv) SchedulePDF(context.Context, models.EquipmentFilter) ([]byte, error) {
	return f.pdf, f.err
}

func TestExportHandlerICSDownload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeExportSrv{ics: &service.ICSResult{
		Content:    []byte("BEGIN:VCALENDAR\nEND:VCALENDAR\n"),
		EventCount: 2,
		Filename:   "home_ppr_reminders.ics",
	}}
	handler := NewExportHandler(srv, 60)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/export/ics?horizon=30", nil)

	handler.ICS(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 30, srv.lastHorizon)
	assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=home_ppr_reminders.ics", rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "BEGIN:VCALENDAR")
}

func TestExportHandlerICSDefaultHorizon(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeExportSrv{ics: &service.ICSResult{Content: []byte("x"), EventCount: 1, Filename: "f.ics"}}
	handler := NewExportHandler(srv, 60)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/export/ics", nil)

	handler.ICS(c)

	assert.Equal(t, 60, srv.lastHorizon)
}

func TestExportHandlerICSEmptyReturnsMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeExportSrv{ics: &service.ICSResult{Content: []byte("BEGIN:VCALENDAR\nEND:VCALENDAR\n")}}
	handler := NewExportHandler(srv, 60)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/export/ics", nil)

	handler.ICS(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Meta["message"])
}

func TestExportHandlerCSVDownload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeExportSrv{csv: []byte("ID,Name\n1,Boiler\n")}
	handler := NewExportHandler(srv, 60)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/export/csv", nil)

	handler.CSV(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "attachment; filename=home_ppr_schedule.csv", rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "Boiler")
}

func TestExportHandlerPDFDownload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeExportSrv{pdf: []byte("%PDF-1.4")}
	handler := NewExportHandler(srv, 60)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/export/pdf", nil)

	handler.PDF(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=home_ppr_schedule.pdf", rec.Header().Get("Content-Disposition"))
}
