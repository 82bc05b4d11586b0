package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kopytm/home-ppr-app/internal/models"
	appErrors "github.com/kopytm/home-ppr-app/pkg/errors"
)

// pathID parses the numeric :id path parameter.
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid equipment id")
	}
	return id, nil
}

// queryFilter assembles the view filter from query parameters:
// repeated or comma-separated "status", free-text "q", and the
// forward horizon in days.
func queryFilter(c *gin.Context, defaultHorizon int) models.EquipmentFilter {
	filter := models.EquipmentFilter{
		Query:       strings.TrimSpace(c.Query("q")),
		HorizonDays: defaultHorizon,
	}

	for _, raw := range c.QueryArray("status") {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			filter.Statuses = append(filter.Statuses, models.ParseStatus(part))
		}
	}

	if raw := c.Query("horizon"); raw != "" {
		if days, err := strconv.Atoi(raw); err == nil && days >= 0 {
			filter.HorizonDays = days
		}
	}

	return filter
}

// queryHorizon reads the export horizon falling back to the default.
func queryHorizon(c *gin.Context, fallback int) int {
	if raw := c.Query("horizon"); raw != "" {
		if days, err := strconv.Atoi(raw); err == nil && days >= 0 {
			return days
		}
	}
	return fallback
}
