package handler

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/kopytm/home-ppr-app/internal/models"
	appErrors "github.com/kopytm/home-ppr-app/pkg/errors"
	"github.com/kopytm/home-ppr-app/pkg/response"
)

type photoService interface {
	Attach(ctx context.Context, id int64, filename string, r io.Reader) (*models.Equipment, error)
	Open(ctx context.Context, id int64) (*os.File, error)
}

// PhotoHandler exposes equipment photo upload and retrieval.
type PhotoHandler struct {
	photos      photoService
	maxFileSize int64
}

// NewPhotoHandler constructs PhotoHandler.
func NewPhotoHandler(photos photoService, maxFileSize int64) *PhotoHandler {
	return &PhotoHandler{photos: photos, maxFileSize: maxFileSize}
}

// Upload godoc
// @Summary Attach a photo to a record
// @Tags Photos
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Equipment ID"
// @Param photo formData file true "JPEG or PNG photo"
// @Success 200 {object} response.Envelope
// @Router /equipment/{id}/photo [post]
func (h *PhotoHandler) Upload(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	header, err := c.FormFile("photo")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "photo file is required"))
		return
	}
	if h.maxFileSize > 0 && header.Size > h.maxFileSize {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "photo exceeds the size limit"))
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}
	defer file.Close() //nolint:errcheck

	record, err := h.photos.Attach(c.Request.Context(), id, header.Filename, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Get godoc
// @Summary Serve the stored photo of a record
// @Tags Photos
// @Produce image/jpeg
// @Param id path int true "Equipment ID"
// @Success 200
// @Router /equipment/{id}/photo [get]
func (h *PhotoHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	file, err := h.photos.Open(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	c.Header("Content-Type", "image/jpeg")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, file)
}
