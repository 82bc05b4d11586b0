package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/kopytm/home-ppr-app/internal/imaging"
	"github.com/kopytm/home-ppr-app/internal/models"
	appErrors "github.com/kopytm/home-ppr-app/pkg/errors"
	"github.com/kopytm/home-ppr-app/pkg/storage"
)

// PhotoService attaches photos to equipment records. Uploads are
// validated, downscaled and re-encoded before hitting disk; the file
// is keyed "{id}_{original filename}" and the path is persisted on
// the record.
type PhotoService struct {
	equipment *EquipmentService
	storage   *storage.LocalStorage
	logger    *zap.Logger
}

// NewPhotoService constructs the photo service.
func NewPhotoService(equipment *EquipmentService, store *storage.LocalStorage, logger *zap.Logger) *PhotoService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PhotoService{equipment: equipment, storage: store, logger: logger}
}

// Attach processes and stores an uploaded photo for the given record.
func (s *PhotoService) Attach(ctx context.Context, id int64, filename string, r io.Reader) (*models.Equipment, error) {
	if _, err := s.equipment.Get(ctx, id); err != nil {
		return nil, err
	}

	processed, err := imaging.Process(r)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid photo upload")
	}

	key := fmt.Sprintf("%d_%s", id, sanitizeFilename(filename))
	if _, err := s.storage.Save(key, processed); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store photo")
	}

	record, err := s.equipment.SetPhoto(ctx, id, key)
	if err != nil {
		return nil, err
	}
	s.logger.Info("photo attached", zap.Int64("id", id), zap.String("path", key))
	return record, nil
}

// Open returns a handle on the stored photo for the given record.
func (s *PhotoService) Open(ctx context.Context, id int64) (*os.File, error) {
	record, err := s.equipment.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Photo == "" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "equipment has no photo")
	}
	file, err := s.storage.Open(record.Photo)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "photo file missing")
	}
	return file, nil
}

// sanitizeFilename keeps only the base name so an upload can never
// escape the photos directory.
func sanitizeFilename(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "photo.jpg"
	}
	return base
}
