package service

import (
	"context"
	"time"

	"github.com/kopytm/home-ppr-app/internal/models"
)

// instrumentedStore decorates an EquipmentStore with load/save timing.
type instrumentedStore struct {
	inner   EquipmentStore
	metrics *MetricsService
}

// InstrumentStore wraps a store so table operations report their
// duration. A nil metrics service returns the store unchanged.
func InstrumentStore(inner EquipmentStore, metrics *MetricsService) EquipmentStore {
	if metrics == nil {
		return inner
	}
	return &instrumentedStore{inner: inner, metrics: metrics}
}

func (s *instrumentedStore) Load(ctx context.Context) ([]models.Equipment, error) {
	start := time.Now()
	records, err := s.inner.Load(ctx)
	s.metrics.ObserveStoreOperation("load", time.Since(start))
	return records, err
}

func (s *instrumentedStore) Save(ctx context.Context, records []models.Equipment) error {
	start := time.Now()
	err := s.inner.Save(ctx, records)
	s.metrics.ObserveStoreOperation("save", time.Since(start))
	return err
}
