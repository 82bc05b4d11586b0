package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kopytm/home-ppr-app/internal/models"
	appErrors "github.com/kopytm/home-ppr-app/pkg/errors"
	"github.com/kopytm/home-ppr-app/pkg/export"
)

// ICSResult is a rendered calendar export. EventCount of zero is an
// informational outcome, not an error.
type ICSResult struct {
	Content    []byte
	EventCount int
	Filename   string
}

// ExportService renders reminder and table downloads.
type ExportService struct {
	store     EquipmentStore
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	productID string
	uidDomain string
	logger    *zap.Logger
	now       func() models.Date
	clock     func() time.Time
}

// NewExportService constructs an export service.
func NewExportService(store EquipmentStore, csv *export.CSVExporter, pdf *export.PDFExporter, productID, uidDomain string, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if productID == "" {
		productID = "-//Home PPR//UA//EN"
	}
	if uidDomain == "" {
		uidDomain = "home-ppr.local"
	}
	return &ExportService{
		store:     store,
		csv:       csv,
		pdf:       pdf,
		productID: productID,
		uidDomain: uidDomain,
		logger:    logger,
		now:       models.Today,
		clock:     time.Now,
	}
}

// BuildICS renders one all-day VEVENT per record whose next service
// date falls within [today, today+horizon]. The horizon here is the
// export's own parameter, independent of any view filter.
func (s *ExportService) BuildICS(ctx context.Context, horizonDays int) (*ICSResult, error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load equipment")
	}

	today := s.now()
	end := today.AddDays(horizonDays)

	due := make([]models.EquipmentSchedule, 0, len(records))
	for _, record := range records {
		next := NextServiceDate(record)
		if next == nil || next.Before(today) || next.After(end) {
			continue
		}
		due = append(due, models.EquipmentSchedule{Equipment: record, NextServiceDate: next})
	}
	sortByNextDate(due)

	dtstamp := s.clock().UTC().Format("20060102T150405Z")
	var b strings.Builder
	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:"+s.productID)

	for _, item := range due {
		description := strings.Join([]string{
			"Model: " + item.Model,
			"Consumables: " + item.Consumables,
			"Notes: " + item.Notes,
		}, "\n")

		writeLine(&b, "BEGIN:VEVENT")
		writeLine(&b, fmt.Sprintf("UID:%d@%s", item.ID, s.uidDomain))
		writeLine(&b, "DTSTAMP:"+dtstamp)
		writeLine(&b, "DTSTART;VALUE=DATE:"+item.NextServiceDate.Format("20060102"))
		writeLine(&b, "SUMMARY:"+escapeICSText("PPR: "+item.Name))
		writeLine(&b, "DESCRIPTION:"+escapeICSText(description))
		writeLine(&b, "END:VEVENT")
	}

	writeLine(&b, "END:VCALENDAR")

	return &ICSResult{
		Content:    []byte(b.String()),
		EventCount: len(due),
		Filename:   "home_ppr_reminders.ics",
	}, nil
}

// ScheduleCSV renders the filtered schedule as a CSV table.
func (s *ExportService) ScheduleCSV(ctx context.Context, filter models.EquipmentFilter) ([]byte, error) {
	dataset, err := s.scheduleDataset(ctx, filter)
	if err != nil {
		return nil, err
	}
	content, err := s.csv.Render(*dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return content, nil
}

// SchedulePDF renders the filtered schedule as a tabular PDF.
func (s *ExportService) SchedulePDF(ctx context.Context, filter models.EquipmentFilter) ([]byte, error) {
	dataset, err := s.scheduleDataset(ctx, filter)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Render(*dataset, "Maintenance schedule")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return content, nil
}

func (s *ExportService) scheduleDataset(ctx context.Context, filter models.EquipmentFilter) (*export.Dataset, error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load equipment")
	}

	views := ApplyFilter(records, filter, s.now())
	items := make([]models.EquipmentSchedule, len(views.Items))
	copy(items, views.Items)
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

	headers := []string{"ID", "Name", "Model", "Serial", "Last service", "Interval (days)", "Next service", "Days left", "Status"}
	rows := make([]map[string]string, 0, len(items))
	for _, item := range items {
		row := map[string]string{
			"ID":              strconv.FormatInt(item.ID, 10),
			"Name":            item.Name,
			"Model":           item.Model,
			"Serial":          item.Serial,
			"Interval (days)": strconv.Itoa(item.IntervalDays),
			"Status":          string(item.Status),
		}
		if item.LastServiceDate != nil {
			row["Last service"] = item.LastServiceDate.String()
		}
		if item.NextServiceDate != nil {
			row["Next service"] = item.NextServiceDate.String()
		}
		if item.DaysToNext != nil {
			row["Days left"] = strconv.Itoa(*item.DaysToNext)
		}
		rows = append(rows, row)
	}

	return &export.Dataset{Headers: headers, Rows: rows}, nil
}

// escapeICSText applies the full calendar text escaping rules:
// backslash first, then newline, comma and semicolon.
func escapeICSText(text string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		"\n", `\n`,
		",", `\,`,
		";", `\;`,
	)
	return replacer.Replace(text)
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\n")
}
