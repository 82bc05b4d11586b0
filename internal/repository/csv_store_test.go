package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kopytm/home-ppr-app/internal/models"
)

func tempStore(t *testing.T) (*CSVStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "equipment.csv")
	return NewCSVStore(path, zap.NewNop()), path
}

func writeTable(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCSVStoreBootstrapsMissingFile(t *testing.T) {
	store, path := tempStore(t)

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(models.Columns, ","), strings.TrimSpace(string(raw)))
}

func TestCSVStoreRoundTrip(t *testing.T) {
	store, path := tempStore(t)
	date, err := models.ParseDate("2024-01-01")
	require.NoError(t, err)

	in := []models.Equipment{
		{ID: 1, Name: "Boiler", Model: "B-200", LastServiceDate: &date, IntervalDays: 180, Status: models.StatusActive},
		{ID: 2, Name: "Filter, coarse", Notes: "replace \"both\" cartridges", Status: models.StatusArchived},
	}
	require.NoError(t, store.Save(context.Background(), in))

	// Fresh store instance, forcing a re-read from disk.
	reread := NewCSVStore(path, zap.NewNop())
	out, err := reread.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestCSVStoreLoadReturnsCopies(t *testing.T) {
	store, _ := tempStore(t)
	date, err := models.ParseDate("2024-01-01")
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), []models.Equipment{
		{ID: 1, Name: "Boiler", LastServiceDate: &date, IntervalDays: 90, Status: models.StatusActive},
	}))

	first, err := store.Load(context.Background())
	require.NoError(t, err)
	first[0].Name = "mutated"
	mutated := first[0].LastServiceDate.AddDays(10)
	*first[0].LastServiceDate = mutated

	second, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Boiler", second[0].Name)
	assert.Equal(t, "2024-01-01", second[0].LastServiceDate.String())
}

func TestCSVStoreCoercesMalformedCells(t *testing.T) {
	store, path := tempStore(t)
	writeTable(t, path, strings.Join([]string{
		"id,name,model,serial,last_service_date,interval_days,consumables,notes,photo,status",
		"1,Boiler,,,not-a-date,ninety,,,,active",
		"2,Filter,,,2024-01-01,-5,,,,paused",
		"",
	}, "\n"))

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Nil(t, records[0].LastServiceDate)
	assert.Zero(t, records[0].IntervalDays)
	assert.Zero(t, records[1].IntervalDays)
	assert.Equal(t, models.StatusActive, records[1].Status, "unknown status coerces to active")
}

func TestCSVStoreNumbersRowsWithoutIDs(t *testing.T) {
	store, path := tempStore(t)
	writeTable(t, path, strings.Join([]string{
		"id,name,model,serial,last_service_date,interval_days,consumables,notes,photo,status",
		",Boiler,,,,0,,,,active",
		",Filter,,,,0,,,,active",
		"",
	}, "\n"))

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(1), records[0].ID)
	assert.Equal(t, int64(2), records[1].ID)
}

func TestCSVStoreNumbersGapsFromMax(t *testing.T) {
	store, path := tempStore(t)
	writeTable(t, path, strings.Join([]string{
		"id,name,model,serial,last_service_date,interval_days,consumables,notes,photo,status",
		"5,Boiler,,,,0,,,,active",
		",Filter,,,,0,,,,active",
		"",
	}, "\n"))

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(5), records[0].ID)
	assert.Equal(t, int64(6), records[1].ID)
}

func TestCSVStoreRenumbersDuplicateIDs(t *testing.T) {
	store, path := tempStore(t)
	writeTable(t, path, strings.Join([]string{
		"id,name,model,serial,last_service_date,interval_days,consumables,notes,photo,status",
		"3,Boiler,,,,0,,,,active",
		"3,Filter,,,,0,,,,active",
		"7,Pump,,,,0,,,,active",
		"",
	}, "\n"))

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, int64(3), records[0].ID)
	assert.Equal(t, int64(8), records[1].ID, "second claim on an id is renumbered past the max")
	assert.Equal(t, int64(7), records[2].ID)

	ids := map[int64]bool{}
	for _, record := range records {
		assert.False(t, ids[record.ID])
		ids[record.ID] = true
	}
}

func TestCSVStoreToleratesShortRows(t *testing.T) {
	store, path := tempStore(t)
	writeTable(t, path, strings.Join([]string{
		"id,name,model,serial,last_service_date,interval_days,consumables,notes,photo,status",
		"1,Boiler",
		"",
	}, "\n"))

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Boiler", records[0].Name)
	assert.Equal(t, models.StatusActive, records[0].Status)
}

func TestCSVStoreSaveReflectedByNextLoad(t *testing.T) {
	store, _ := tempStore(t)
	require.NoError(t, store.Save(context.Background(), []models.Equipment{
		{ID: 1, Name: "Boiler", Status: models.StatusActive},
	}))

	records, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	records[0].Status = records[0].Status.Toggle()
	require.NoError(t, store.Save(context.Background(), records))

	after, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StatusArchived, after[0].Status)
}
