package service

import "github.com/kopytm/home-ppr-app/internal/models"

// NextServiceDate derives the next due date for a record: last
// service date plus the interval, defined only when the date is
// present and the interval is positive. Absence is not an error.
func NextServiceDate(e models.Equipment) *models.Date {
	if e.LastServiceDate == nil || e.IntervalDays <= 0 {
		return nil
	}
	next := e.LastServiceDate.AddDays(e.IntervalDays)
	return &next
}

// DaysToNext counts whole days from today until the next due date.
// Negative values mean overdue. It must be recomputed against a fresh
// "today" on every request, never cached across calendar days.
func DaysToNext(next *models.Date, today models.Date) *int {
	if next == nil {
		return nil
	}
	days := today.DaysUntil(*next)
	return &days
}

// Schedule decorates a record with its derived schedule fields.
func Schedule(e models.Equipment, today models.Date) models.EquipmentSchedule {
	next := NextServiceDate(e)
	return models.EquipmentSchedule{
		Equipment:       e,
		NextServiceDate: next,
		DaysToNext:      DaysToNext(next, today),
	}
}
