package timesheet

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
)

// ParseClock parses a strict 24-hour HH:MM string, the same format request
// validation accepts. Empty input is an absent event and returns (nil, nil).
func ParseClock(s string) (*timesheet.Clock, error) {
	if s == "" {
		return nil, nil
	}
	if !validator.IsValidClock(s) {
		return nil, fmt.Errorf("%w: %q", timesheet.ErrMalformedTime, s)
	}

	hour, _ := strconv.Atoi(s[:2])
	minute, _ := strconv.Atoi(s[3:])
	return &timesheet.Clock{Hour: hour, Minute: minute}, nil
}

// Normalize parses the four clock slots of a record. A malformed slot is logged
// and treated as absent so that one bad cell only zeroes its own day.
func Normalize(record timesheet.DayRecord) timesheet.DayClocks {
	return timesheet.DayClocks{
		ClockIn:    normalizeSlot(record.Date, "clock_in", record.ClockIn),
		ClockOut:   normalizeSlot(record.Date, "clock_out", record.ClockOut),
		BreakStart: normalizeSlot(record.Date, "break_start", record.BreakStart),
		BreakEnd:   normalizeSlot(record.Date, "break_end", record.BreakEnd),
	}
}

func normalizeSlot(date, field, raw string) *timesheet.Clock {
	c, err := ParseClock(raw)
	if err != nil {
		slog.Warn("ignoring malformed clock value",
			slog.String("date", date),
			slog.String("field", field),
			slog.String("value", raw),
		)
		return nil
	}
	return c
}
