package timesheet

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/timesheet"
)

const dateLayout = "2006-01-02"

// ValidatePeriod rejects a year/month pair outside the calendar.
func ValidatePeriod(year, month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d must be between 1 and 12", timesheet.ErrInvalidPeriod, month)
	}
	if year < 1 || year > 9999 {
		return fmt.Errorf("%w: year %d must be between 1 and 9999", timesheet.ErrInvalidPeriod, year)
	}
	return nil
}

// Aggregate evaluates every calendar day of the month against the records.
// Records are matched by their literal YYYY-MM-DD date. When several records share
// a date the first one in the given order is used and the rest are skipped.
func (c Calculator) Aggregate(year, month int, records []timesheet.DayRecord) (timesheet.MonthlySheet, error) {
	if err := ValidatePeriod(year, month); err != nil {
		return timesheet.MonthlySheet{}, err
	}

	byDate := make(map[string]*timesheet.DayRecord, len(records))
	for i := range records {
		r := &records[i]
		if _, exists := byDate[r.Date]; exists {
			slog.Warn("duplicate attendance record for date, keeping first",
				slog.String("date", r.Date),
			)
			continue
		}
		byDate[r.Date] = r
	}

	m := time.Month(month)
	n := timesheet.DaysInMonth(year, m)
	sheet := timesheet.MonthlySheet{
		Year:  year,
		Month: m,
		Days:  make([]timesheet.DayEntry, 0, n),
	}

	for day := 1; day <= n; day++ {
		date := time.Date(year, m, day, 0, 0, 0, 0, time.UTC)
		entry := timesheet.DayEntry{Day: day, Date: date}

		if r, ok := byDate[date.Format(dateLayout)]; ok {
			rec := *r
			entry.Record = &rec
			entry.Stats = c.ComputeRecord(rec)
		}

		sheet.Totals.Add(entry.Stats)
		sheet.Days = append(sheet.Days, entry)
	}

	return sheet, nil
}

// MonthRange returns the first and last calendar day of the month.
func MonthRange(year, month int) (time.Time, time.Time) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}
