package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kopytm/home-ppr-app/internal/models"
	appErrors "github.com/kopytm/home-ppr-app/pkg/errors"
)

// DashboardService produces the headline counters and the monthly
// chart series. Responses are optionally cached; every mutation
// invalidates the whole dashboard:* keyspace.
type DashboardService struct {
	store  EquipmentStore
	cache  *CacheService
	logger *zap.Logger
	now    func() models.Date
}

// NewDashboardService constructs a dashboard service.
func NewDashboardService(store EquipmentStore, cache *CacheService, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{store: store, cache: cache, logger: logger, now: models.Today}
}

// Summary returns the active/upcoming/overdue counters. The active
// counter spans the whole table; upcoming and overdue respect the
// filter, matching what the tracked dashboard displays.
func (s *DashboardService) Summary(ctx context.Context, filter models.EquipmentFilter) (*models.DashboardSummary, error) {
	today := s.now()
	key := cacheKey("dashboard:summary", filter, today)

	var cached models.DashboardSummary
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load equipment")
	}

	summary := models.DashboardSummary{}
	for _, record := range records {
		if record.Status == models.StatusActive {
			summary.ActiveCount++
		}
	}

	views := ApplyFilter(records, filter, today)
	summary.UpcomingCount = len(views.Upcoming)
	summary.OverdueCount = len(views.Overdue)

	if err := s.cache.Set(ctx, key, summary, 0); err != nil {
		s.logger.Debug("summary cache write failed", zap.Error(err))
	}
	return &summary, nil
}

// Monthly returns the sparse month-to-count chart series for the
// filtered record set.
func (s *DashboardService) Monthly(ctx context.Context, filter models.EquipmentFilter) ([]models.MonthCount, error) {
	today := s.now()
	key := cacheKey("dashboard:monthly", filter, today)

	var cached []models.MonthCount
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load equipment")
	}

	views := ApplyFilter(records, filter, today)
	series := MonthlyCounts(views.Items)

	if err := s.cache.Set(ctx, key, series, 0); err != nil {
		s.logger.Debug("monthly cache write failed", zap.Error(err))
	}
	return series, nil
}

// cacheKey folds the filter and today's date into the key so a cached
// view can never leak across calendar days.
func cacheKey(prefix string, filter models.EquipmentFilter, today models.Date) string {
	statuses := make([]string, 0, len(filter.Statuses))
	for _, status := range filter.Statuses {
		statuses = append(statuses, string(status))
	}
	return fmt.Sprintf("%s:%s:%s:%d:%s",
		prefix, strings.Join(statuses, ","), strings.ToLower(filter.Query), filter.HorizonDays, today)
}
