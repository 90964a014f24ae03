package attendance

import (
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/timesheet"
)

// Attendance is one employee-day. Clock fields hold the HH:MM wall-clock value
// exactly as captured; nil means the event has not happened.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	ClockIn    *string
	ClockOut   *string
	BreakStart *string
	BreakEnd   *string
	PhotoKey   *string // storage key of the clock-in photo
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
}

// DayRecord converts the stored row into the time accounting input.
func (a Attendance) DayRecord() timesheet.DayRecord {
	return timesheet.DayRecord{
		Date:       a.Date.Format("2006-01-02"),
		ClockIn:    deref(a.ClockIn),
		ClockOut:   deref(a.ClockOut),
		BreakStart: deref(a.BreakStart),
		BreakEnd:   deref(a.BreakEnd),
	}
}

// Status reports where the day stands in the clock-in/break/clock-out cycle.
func (a *Attendance) Status() Status {
	switch {
	case a == nil || a.ClockIn == nil:
		return StatusNotStarted
	case a.ClockOut != nil:
		return StatusFinished
	case a.BreakStart != nil && a.BreakEnd == nil:
		return StatusOnBreak
	default:
		return StatusWorking
	}
}

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusWorking    Status = "working"
	StatusOnBreak    Status = "on_break"
	StatusFinished   Status = "finished"
)

// DayRecords converts a slice of rows, preserving order.
func DayRecords(rows []Attendance) []timesheet.DayRecord {
	out := make([]timesheet.DayRecord, len(rows))
	for i, r := range rows {
		out[i] = r.DayRecord()
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
