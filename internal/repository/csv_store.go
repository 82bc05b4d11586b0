package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/kopytm/home-ppr-app/internal/models"
)

// CSVStore persists the equipment table as a flat CSV file. The whole
// table is read and rewritten on every operation; an explicit
// in-memory copy is kept between loads and refreshed on every save so
// reads after a write always reflect it.
type CSVStore struct {
	path   string
	logger *zap.Logger

	mu    sync.Mutex
	cache []models.Equipment
	warm  bool
}

// NewCSVStore constructs a store backed by the file at path.
func NewCSVStore(path string, logger *zap.Logger) *CSVStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSVStore{path: path, logger: logger}
}

// Load returns the full record set. A missing backing file is
// bootstrapped as an empty table with the canonical header. Malformed
// intervals, dates and statuses are coerced, never fatal.
func (s *CSVStore) Load(ctx context.Context) ([]models.Equipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.warm {
		return cloneRecords(s.cache), nil
	}

	if err := s.ensureFile(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open equipment table: %w", err)
	}
	defer file.Close() //nolint:errcheck

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read equipment table: %w", err)
	}

	records := s.parseRows(rows)
	s.cache = records
	s.warm = true
	return cloneRecords(records), nil
}

// Save overwrites the backing file with the full record set and
// refreshes the in-memory copy.
func (s *CSVStore) Save(ctx context.Context, records []models.Equipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("prepare data directory: %w", err)
	}

	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("rewrite equipment table: %w", err)
	}
	defer file.Close() //nolint:errcheck

	writer := csv.NewWriter(file)
	if err := writer.Write(models.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(formatRow(record)); err != nil {
			return fmt.Errorf("write record %d: %w", record.ID, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush equipment table: %w", err)
	}

	s.cache = cloneRecords(records)
	s.warm = true
	return nil
}

func (s *CSVStore) ensureFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat equipment table: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("prepare data directory: %w", err)
	}

	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("bootstrap equipment table: %w", err)
	}
	defer file.Close() //nolint:errcheck

	writer := csv.NewWriter(file)
	if err := writer.Write(models.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

func (s *CSVStore) parseRows(rows [][]string) []models.Equipment {
	if len(rows) == 0 {
		return []models.Equipment{}
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[name] = i
	}
	cell := func(row []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]models.Equipment, 0, len(rows)-1)
	maxID := int64(0)
	anyID := false
	seen := make(map[int64]struct{}, len(rows)-1)
	for n, row := range rows[1:] {
		record := models.Equipment{
			Name:        cell(row, "name"),
			Model:       cell(row, "model"),
			Serial:      cell(row, "serial"),
			Consumables: cell(row, "consumables"),
			Notes:       cell(row, "notes"),
			Photo:       cell(row, "photo"),
			Status:      models.ParseStatus(cell(row, "status")),
		}

		if id, err := strconv.ParseInt(cell(row, "id"), 10, 64); err == nil && id > 0 {
			if _, dup := seen[id]; dup {
				// The later row loses its id and gets renumbered below.
				s.logger.Debug("duplicate equipment id",
					zap.Int("row", n+1), zap.Int64("id", id))
			} else {
				seen[id] = struct{}{}
				record.ID = id
				anyID = true
				if id > maxID {
					maxID = id
				}
			}
		}

		rawInterval := cell(row, "interval_days")
		if interval, err := strconv.Atoi(rawInterval); err == nil && interval >= 0 {
			record.IntervalDays = interval
		} else if rawInterval != "" {
			s.logger.Debug("coerced malformed interval",
				zap.Int("row", n+1), zap.String("value", rawInterval))
		}

		rawDate := cell(row, "last_service_date")
		if rawDate != "" {
			if date, err := models.ParseDate(rawDate); err == nil {
				record.LastServiceDate = &date
			} else {
				s.logger.Debug("coerced malformed date",
					zap.Int("row", n+1), zap.String("value", rawDate))
			}
		}

		records = append(records, record)
	}

	// Rows without usable ids, duplicates included, get numbered:
	// sequentially from 1 when the whole column was empty, from max+1
	// otherwise.
	next := maxID + 1
	if !anyID {
		next = 1
	}
	for i := range records {
		if records[i].ID == 0 {
			records[i].ID = next
			next++
		}
	}

	return records
}

func formatRow(e models.Equipment) []string {
	date := ""
	if e.LastServiceDate != nil {
		date = e.LastServiceDate.String()
	}
	return []string{
		strconv.FormatInt(e.ID, 10),
		e.Name,
		e.Model,
		e.Serial,
		date,
		strconv.Itoa(e.IntervalDays),
		e.Consumables,
		e.Notes,
		e.Photo,
		string(e.Status),
	}
}

func cloneRecords(records []models.Equipment) []models.Equipment {
	out := make([]models.Equipment, len(records))
	copy(out, records)
	for i := range out {
		if out[i].LastServiceDate != nil {
			date := *out[i].LastServiceDate
			out[i].LastServiceDate = &date
		}
	}
	return out
}
