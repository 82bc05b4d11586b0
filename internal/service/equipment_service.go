package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kopytm/home-ppr-app/internal/models"
	appErrors "github.com/kopytm/home-ppr-app/pkg/errors"
)

// EquipmentStore is the persistence contract: the full table in, the
// full table out. Mutations always rewrite the whole record set so an
// out-of-view record can never be lost on save.
type EquipmentStore interface {
	Load(ctx context.Context) ([]models.Equipment, error)
	Save(ctx context.Context, records []models.Equipment) error
}

// AddEquipmentRequest holds payload for creating equipment.
type AddEquipmentRequest struct {
	Name            string       `json:"name" validate:"required"`
	Model           string       `json:"model"`
	Serial          string       `json:"serial"`
	LastServiceDate *models.Date `json:"last_service_date"`
	IntervalDays    int          `json:"interval_days" validate:"gte=0"`
	Consumables     string       `json:"consumables"`
	Notes           string       `json:"notes"`
	Status          string       `json:"status"`
}

// EditEquipmentRequest overwrites all editable fields in one atomic
// replace. The photo path is managed separately by the photo upload.
type EditEquipmentRequest struct {
	Name            string       `json:"name" validate:"required"`
	Model           string       `json:"model"`
	Serial          string       `json:"serial"`
	LastServiceDate *models.Date `json:"last_service_date"`
	IntervalDays    int          `json:"interval_days" validate:"gte=0"`
	Consumables     string       `json:"consumables"`
	Notes           string       `json:"notes"`
	Status          string       `json:"status"`
}

// EquipmentService implements the maintenance-tracking use-cases.
type EquipmentService struct {
	store     EquipmentStore
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() models.Date
}

// NewEquipmentService constructs the equipment service.
func NewEquipmentService(store EquipmentStore, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *EquipmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EquipmentService{
		store:     store,
		cache:     cache,
		validator: validate,
		logger:    logger,
		now:       models.Today,
	}
}

// List returns the filtered full/upcoming/overdue views as of today.
func (s *EquipmentService) List(ctx context.Context, filter models.EquipmentFilter) (*Views, error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load equipment")
	}
	views := ApplyFilter(records, filter, s.now())
	return &views, nil
}

// Get returns one record with its derived schedule.
func (s *EquipmentService) Get(ctx context.Context, id int64) (*models.EquipmentSchedule, error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load equipment")
	}
	i := findByID(records, id)
	if i < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "equipment not found")
	}
	scheduled := Schedule(records[i], s.now())
	return &scheduled, nil
}

// Add registers a new record with the next free id.
func (s *EquipmentService) Add(ctx context.Context, req AddEquipmentRequest) (*models.Equipment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid equipment payload")
	}

	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load equipment")
	}

	record := models.Equipment{
		ID:              nextID(records),
		Name:            req.Name,
		Model:           req.Model,
		Serial:          req.Serial,
		LastServiceDate: req.LastServiceDate,
		IntervalDays:    req.IntervalDays,
		Consumables:     req.Consumables,
		Notes:           req.Notes,
		Status:          models.ParseStatus(req.Status),
	}
	records = append(records, record)

	if err := s.persist(ctx, records); err != nil {
		return nil, err
	}
	s.logger.Info("equipment added", zap.Int64("id", record.ID), zap.String("name", record.Name))
	return &record, nil
}

// Edit overwrites the editable fields of the targeted record.
func (s *EquipmentService) Edit(ctx context.Context, id int64, req EditEquipmentRequest) (*models.Equipment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid equipment payload")
	}

	return s.mutate(ctx, id, func(record *models.Equipment) {
		record.Name = req.Name
		record.Model = req.Model
		record.Serial = req.Serial
		record.LastServiceDate = req.LastServiceDate
		record.IntervalDays = req.IntervalDays
		record.Consumables = req.Consumables
		record.Notes = req.Notes
		record.Status = models.ParseStatus(req.Status)
	})
}

// MarkServiced stamps the record's last service date with today.
func (s *EquipmentService) MarkServiced(ctx context.Context, id int64) (*models.Equipment, error) {
	today := s.now()
	return s.mutate(ctx, id, func(record *models.Equipment) {
		record.LastServiceDate = &today
	})
}

// ToggleArchive flips the record between active and archived.
func (s *EquipmentService) ToggleArchive(ctx context.Context, id int64) (*models.Equipment, error) {
	return s.mutate(ctx, id, func(record *models.Equipment) {
		record.Status = record.Status.Toggle()
	})
}

// SetPhoto stores the photo path on the targeted record.
func (s *EquipmentService) SetPhoto(ctx context.Context, id int64, path string) (*models.Equipment, error) {
	return s.mutate(ctx, id, func(record *models.Equipment) {
		record.Photo = path
	})
}

func (s *EquipmentService) mutate(ctx context.Context, id int64, apply func(*models.Equipment)) (*models.Equipment, error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load equipment")
	}

	i := findByID(records, id)
	if i < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "equipment not found")
	}

	apply(&records[i])
	record := records[i]

	if err := s.persist(ctx, records); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *EquipmentService) persist(ctx context.Context, records []models.Equipment) error {
	if err := s.store.Save(ctx, records); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save equipment")
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, "dashboard:*"); err != nil {
			s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
		}
	}
	return nil
}

func findByID(records []models.Equipment, id int64) int {
	for i, record := range records {
		if record.ID == id {
			return i
		}
	}
	return -1
}

func nextID(records []models.Equipment) int64 {
	var max int64
	for _, record := range records {
		if record.ID > max {
			max = record.ID
		}
	}
	return max + 1
}
