package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kopytm/home-ppr-app/internal/models"
	appErrors "github.com/kopytm/home-ppr-app/pkg/errors"
)

type mockStore struct {
	records []models.Equipment
	loadErr error
	saveErr error
	saves   int
}

func (m *mockStore) Load(ctx context.Context) ([]models.Equipment, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]models.Equipment, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *mockStore) Save(ctx context.Context, records []models.Equipment) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records = records
	m.saves++
	return nil
}

func newEquipmentService(t *testing.T, store *mockStore, today string) *EquipmentService {
	t.Helper()
	svc := NewEquipmentService(store, nil, validator.New(), zap.NewNop())
	svc.now = func() models.Date { return date(t, today) }
	return svc
}

func TestEquipmentServiceAddAssignsNextID(t *testing.T) {
	store := &mockStore{records: []models.Equipment{
		{ID: 1, Name: "Boiler", Status: models.StatusActive},
		{ID: 7, Name: "Filter", Status: models.StatusActive},
	}}
	svc := newEquipmentService(t, store, "2024-06-20")

	record, err := svc.Add(context.Background(), AddEquipmentRequest{Name: "Pump", IntervalDays: 30})
	require.NoError(t, err)
	assert.Equal(t, int64(8), record.ID)
	assert.Equal(t, models.StatusActive, record.Status)
	assert.Len(t, store.records, 3)
}

func TestEquipmentServiceAddFirstRecord(t *testing.T) {
	store := &mockStore{}
	svc := newEquipmentService(t, store, "2024-06-20")

	record, err := svc.Add(context.Background(), AddEquipmentRequest{Name: "Boiler"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), record.ID)
}

func TestEquipmentServiceAddRequiresName(t *testing.T) {
	store := &mockStore{}
	svc := newEquipmentService(t, store, "2024-06-20")

	_, err := svc.Add(context.Background(), AddEquipmentRequest{IntervalDays: 30})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, store.saves)
}

func TestEquipmentServiceEditOverwritesFields(t *testing.T) {
	store := &mockStore{records: []models.Equipment{
		{ID: 1, Name: "Boiler", Notes: "old", Status: models.StatusActive},
	}}
	svc := newEquipmentService(t, store, "2024-06-20")

	record, err := svc.Edit(context.Background(), 1, EditEquipmentRequest{
		Name:            "Boiler mk2",
		LastServiceDate: datePtr(t, "2024-05-01"),
		IntervalDays:    90,
	})
	require.NoError(t, err)
	assert.Equal(t, "Boiler mk2", record.Name)
	assert.Empty(t, record.Notes)
	require.NotNil(t, record.LastServiceDate)
	assert.Equal(t, "2024-05-01", record.LastServiceDate.String())
	assert.Equal(t, 1, store.saves)
}

func TestEquipmentServiceEditNotFound(t *testing.T) {
	svc := newEquipmentService(t, &mockStore{}, "2024-06-20")

	_, err := svc.Edit(context.Background(), 42, EditEquipmentRequest{Name: "Ghost"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEquipmentServiceMarkServicedStampsToday(t *testing.T) {
	store := &mockStore{records: []models.Equipment{
		{ID: 1, Name: "Boiler", LastServiceDate: datePtr(t, "2024-01-01"), IntervalDays: 180, Status: models.StatusActive},
	}}
	svc := newEquipmentService(t, store, "2024-06-20")

	record, err := svc.MarkServiced(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, record.LastServiceDate)
	assert.Equal(t, "2024-06-20", record.LastServiceDate.String())
}

func TestEquipmentServiceToggleArchiveRoundTrip(t *testing.T) {
	store := &mockStore{records: []models.Equipment{
		{ID: 1, Name: "Boiler", Status: models.StatusActive},
	}}
	svc := newEquipmentService(t, store, "2024-06-20")

	record, err := svc.ToggleArchive(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusArchived, record.Status)

	record, err = svc.ToggleArchive(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, record.Status)
}

func TestEquipmentServiceGetComputesSchedule(t *testing.T) {
	store := &mockStore{records: []models.Equipment{
		{ID: 1, Name: "Boiler", LastServiceDate: datePtr(t, "2024-01-01"), IntervalDays: 180, Status: models.StatusActive},
	}}
	svc := newEquipmentService(t, store, "2024-06-20")

	scheduled, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, scheduled.NextServiceDate)
	assert.Equal(t, "2024-06-29", scheduled.NextServiceDate.String())
	require.NotNil(t, scheduled.DaysToNext)
	assert.Equal(t, 9, *scheduled.DaysToNext)
}

func TestEquipmentServiceListPropagatesStoreError(t *testing.T) {
	svc := newEquipmentService(t, &mockStore{loadErr: errors.New("disk gone")}, "2024-06-20")

	_, err := svc.List(context.Background(), models.EquipmentFilter{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestEquipmentServiceSetPhoto(t *testing.T) {
	store := &mockStore{records: []models.Equipment{
		{ID: 1, Name: "Boiler", Status: models.StatusActive},
	}}
	svc := newEquipmentService(t, store, "2024-06-20")

	record, err := svc.SetPhoto(context.Background(), 1, "1_boiler.jpg")
	require.NoError(t, err)
	assert.Equal(t, "1_boiler.jpg", record.Photo)
	assert.Equal(t, "1_boiler.jpg", store.records[0].Photo)
}
