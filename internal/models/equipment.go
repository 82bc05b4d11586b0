package models

import "strings"

// Status is the archival state of an equipment record. Exactly two
// values exist; anything else in stored data is a data-entry bug and
// is coerced to StatusActive on load.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// ParseStatus normalises raw status input.
func ParseStatus(raw string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusArchived:
		return StatusArchived
	default:
		return StatusActive
	}
}

// Toggle flips between the two states.
func (s Status) Toggle() Status {
	if s == StatusArchived {
		return StatusActive
	}
	return StatusArchived
}

// Equipment is one physical item under a recurring maintenance
// routine. IntervalDays of zero means no recurring schedule.
type Equipment struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Model           string `json:"model"`
	Serial          string `json:"serial"`
	LastServiceDate *Date  `json:"last_service_date"`
	IntervalDays    int    `json:"interval_days"`
	Consumables     string `json:"consumables"`
	Notes           string `json:"notes"`
	Photo           string `json:"photo"`
	Status          Status `json:"status"`
}

// EquipmentSchedule carries a record together with its derived
// schedule fields. The derived fields are never persisted.
type EquipmentSchedule struct {
	Equipment
	NextServiceDate *Date `json:"next_service_date,omitempty"`
	DaysToNext      *int  `json:"days_to_next,omitempty"`
}

// EquipmentFilter holds view filtering parameters.
type EquipmentFilter struct {
	Statuses    []Status
	Query       string
	HorizonDays int
}

// MonthCount is one bucket of the monthly chart series.
type MonthCount struct {
	Month Date `json:"month"`
	Count int  `json:"count"`
}

// DashboardSummary carries the headline counters.
type DashboardSummary struct {
	ActiveCount   int `json:"active_count"`
	UpcomingCount int `json:"upcoming_count"`
	OverdueCount  int `json:"overdue_count"`
}

// Columns is the canonical persisted column set, in order.
var Columns = []string{
	"id", "name", "model", "serial", "last_service_date",
	"interval_days", "consumables", "notes", "photo", "status",
}
