package service

import (
	"sort"
	"strings"

	"github.com/kopytm/home-ppr-app/internal/models"
)

// Views are the three record sets derived from one filter pass.
// Upcoming and Overdue only ever contain records with a computable
// next-service-date and are disjoint by construction.
type Views struct {
	Items    []models.EquipmentSchedule `json:"items"`
	Upcoming []models.EquipmentSchedule `json:"upcoming"`
	Overdue  []models.EquipmentSchedule `json:"overdue"`
}

// ApplyFilter runs the status/text/horizon pipeline over the full
// record set as of today.
func ApplyFilter(records []models.Equipment, filter models.EquipmentFilter, today models.Date) Views {
	statuses := filter.Statuses
	if len(statuses) == 0 {
		statuses = []models.Status{models.StatusActive}
	}
	statusSet := make(map[models.Status]struct{}, len(statuses))
	for _, status := range statuses {
		statusSet[status] = struct{}{}
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	horizon := today.AddDays(filter.HorizonDays)

	views := Views{
		Items:    []models.EquipmentSchedule{},
		Upcoming: []models.EquipmentSchedule{},
		Overdue:  []models.EquipmentSchedule{},
	}

	for _, record := range records {
		if _, ok := statusSet[record.Status]; !ok {
			continue
		}
		if query != "" && !matchesQuery(record, query) {
			continue
		}

		scheduled := Schedule(record, today)
		views.Items = append(views.Items, scheduled)

		if scheduled.NextServiceDate == nil {
			continue
		}
		due := *scheduled.NextServiceDate
		switch {
		case due.Before(today):
			views.Overdue = append(views.Overdue, scheduled)
		case !due.After(horizon):
			views.Upcoming = append(views.Upcoming, scheduled)
		}
	}

	sortByNextDate(views.Upcoming)
	sortByNextDate(views.Overdue)
	return views
}

func matchesQuery(e models.Equipment, query string) bool {
	for _, field := range []string{e.Name, e.Model, e.Serial, e.Consumables, e.Notes} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func sortByNextDate(items []models.EquipmentSchedule) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := *items[i].NextServiceDate, *items[j].NextServiceDate
		if a.Equal(b) {
			return items[i].ID < items[j].ID
		}
		return a.Before(b)
	})
}

// MonthlyCounts buckets records by the calendar month of their next
// due date. The series is chronological and sparse: months with no
// work are omitted on purpose, the chart renders only what exists.
func MonthlyCounts(items []models.EquipmentSchedule) []models.MonthCount {
	buckets := make(map[models.Date]int)
	for _, item := range items {
		if item.NextServiceDate == nil {
			continue
		}
		buckets[item.NextServiceDate.MonthStart()]++
	}

	series := make([]models.MonthCount, 0, len(buckets))
	for month, count := range buckets {
		series = append(series, models.MonthCount{Month: month, Count: count})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Month.Before(series[j].Month)
	})
	return series
}
