package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kopytm/home-ppr-app/internal/models"
	"github.com/kopytm/home-ppr-app/internal/service"
	appErrors "github.com/kopytm/home-ppr-app/pkg/errors"
	"github.com/kopytm/home-ppr-app/pkg/response"
)

// equipmentService is the use-case surface the handler depends on.
type equipmentService interface {
	List(ctx context.Context, filter models.EquipmentFilter) (*service.Views, error)
	Get(ctx context.Context, id int64) (*models.EquipmentSchedule, error)
	Add(ctx context.Context, req service.AddEquipmentRequest) (*models.Equipment, error)
	Edit(ctx context.Context, id int64, req service.EditEquipmentRequest) (*models.Equipment, error)
	MarkServiced(ctx context.Context, id int64) (*models.Equipment, error)
	ToggleArchive(ctx context.Context, id int64) (*models.Equipment, error)
}

// EquipmentHandler exposes the equipment endpoints.
type EquipmentHandler struct {
	equipment      equipmentService
	defaultHorizon int
}

// NewEquipmentHandler constructs EquipmentHandler.
func NewEquipmentHandler(equipment equipmentService, defaultHorizon int) *EquipmentHandler {
	return &EquipmentHandler{equipment: equipment, defaultHorizon: defaultHorizon}
}

// List godoc
// @Summary List equipment with derived schedule
// @Tags Equipment
// @Produce json
// @Param status query string false "Status filter (active, archived)"
// @Param q query string false "Free-text search"
// @Param horizon query int false "Upcoming horizon in days"
// @Success 200 {object} response.Envelope
// @Router /equipment [get]
func (h *EquipmentHandler) List(c *gin.Context) {
	views, err := h.equipment.List(c.Request.Context(), queryFilter(c, h.defaultHorizon))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, views.Items)
}

// Upcoming godoc
// @Summary List records due within the horizon
// @Tags Equipment
// @Produce json
// @Param status query string false "Status filter (active, archived)"
// @Param q query string false "Free-text search"
// @Param horizon query int false "Upcoming horizon in days"
// @Success 200 {object} response.Envelope
// @Router /equipment/upcoming [get]
func (h *EquipmentHandler) Upcoming(c *gin.Context) {
	views, err := h.equipment.List(c.Request.Context(), queryFilter(c, h.defaultHorizon))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, views.Upcoming)
}

// Overdue godoc
// @Summary List records whose due date has passed
// @Tags Equipment
// @Produce json
// @Param status query string false "Status filter (active, archived)"
// @Param q query string false "Free-text search"
// @Success 200 {object} response.Envelope
// @Router /equipment/overdue [get]
func (h *EquipmentHandler) Overdue(c *gin.Context) {
	views, err := h.equipment.List(c.Request.Context(), queryFilter(c, h.defaultHorizon))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, views.Overdue)
}

// Get godoc
// @Summary Get one equipment record
// @Tags Equipment
// @Produce json
// @Param id path int true "Equipment ID"
// @Success 200 {object} response.Envelope
// @Router /equipment/{id} [get]
func (h *EquipmentHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	record, err := h.equipment.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Add godoc
// @Summary Add equipment
// @Tags Equipment
// @Accept json
// @Produce json
// @Param payload body service.AddEquipmentRequest true "Equipment payload"
// @Success 201 {object} response.Envelope
// @Router /equipment [post]
func (h *EquipmentHandler) Add(c *gin.Context) {
	var req service.AddEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.equipment.Add(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Edit godoc
// @Summary Overwrite the editable fields of a record
// @Tags Equipment
// @Accept json
// @Produce json
// @Param id path int true "Equipment ID"
// @Param payload body service.EditEquipmentRequest true "Equipment payload"
// @Success 200 {object} response.Envelope
// @Router /equipment/{id} [put]
func (h *EquipmentHandler) Edit(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.EditEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.equipment.Edit(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// MarkServiced godoc
// @Summary Stamp the last service date with today
// @Tags Equipment
// @Produce json
// @Param id path int true "Equipment ID"
// @Success 200 {object} response.Envelope
// @Router /equipment/{id}/service [post]
func (h *EquipmentHandler) MarkServiced(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	record, err := h.equipment.MarkServiced(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// ToggleArchive godoc
// @Summary Flip a record between active and archived
// @Tags Equipment
// @Produce json
// @Param id path int true "Equipment ID"
// @Success 200 {object} response.Envelope
// @Router /equipment/{id}/archive [post]
func (h *EquipmentHandler) ToggleArchive(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	record, err := h.equipment.ToggleArchive(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}
