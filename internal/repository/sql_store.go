package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/kopytm/home-ppr-app/internal/models"
)

// SQLStore keeps the equipment table in PostgreSQL with the same
// full-rewrite contract as the flat file: Save replaces the whole
// table in one transaction.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore constructs a SQLStore.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

const schema = `CREATE TABLE IF NOT EXISTS equipment (
    id BIGINT PRIMARY KEY,
    name TEXT NOT NULL,
    model TEXT NOT NULL DEFAULT '',
    serial TEXT NOT NULL DEFAULT '',
    last_service_date DATE,
    interval_days INTEGER NOT NULL DEFAULT 0,
    consumables TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    photo TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'active'
)`

// EnsureSchema creates the equipment table when missing.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure equipment schema: %w", err)
	}
	return nil
}

type equipmentRow struct {
	ID              int64          `db:"id"`
	Name            string         `db:"name"`
	Model           string         `db:"model"`
	Serial          string         `db:"serial"`
	LastServiceDate sql.NullString `db:"last_service_date"`
	IntervalDays    int            `db:"interval_days"`
	Consumables     string         `db:"consumables"`
	Notes           string         `db:"notes"`
	Photo           string         `db:"photo"`
	Status          string         `db:"status"`
}

// Load returns the full record set ordered by id.
func (s *SQLStore) Load(ctx context.Context) ([]models.Equipment, error) {
	const query = `SELECT id, name, model, serial,
        to_char(last_service_date, 'YYYY-MM-DD') AS last_service_date,
        interval_days, consumables, notes, photo, status
        FROM equipment ORDER BY id`

	var rows []equipmentRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("load equipment: %w", err)
	}

	records := make([]models.Equipment, 0, len(rows))
	for _, row := range rows {
		record := models.Equipment{
			ID:          row.ID,
			Name:        row.Name,
			Model:       row.Model,
			Serial:      row.Serial,
			Consumables: row.Consumables,
			Notes:       row.Notes,
			Photo:       row.Photo,
			Status:      models.ParseStatus(row.Status),
		}
		if row.IntervalDays >= 0 {
			record.IntervalDays = row.IntervalDays
		}
		if row.LastServiceDate.Valid && row.LastServiceDate.String != "" {
			if date, err := models.ParseDate(row.LastServiceDate.String); err == nil {
				record.LastServiceDate = &date
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// Save replaces the table content with the provided record set.
func (s *SQLStore) Save(ctx context.Context, records []models.Equipment) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM equipment"); err != nil {
		return fmt.Errorf("clear equipment: %w", err)
	}

	const insert = `INSERT INTO equipment
        (id, name, model, serial, last_service_date, interval_days, consumables, notes, photo, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for _, record := range records {
		var date interface{}
		if record.LastServiceDate != nil {
			date = record.LastServiceDate.String()
		}
		if _, err := tx.ExecContext(ctx, insert,
			record.ID, record.Name, record.Model, record.Serial, date,
			record.IntervalDays, record.Consumables, record.Notes,
			record.Photo, string(record.Status),
		); err != nil {
			return fmt.Errorf("insert equipment %d: %w", record.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}
