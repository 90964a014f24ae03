package timesheet

import (
	"fmt"
	"time"
)

const MinutesPerDay = 24 * 60

// Clock is a wall-clock time of day without date or timezone.
type Clock struct {
	Hour   int
	Minute int
}

// Minutes returns the minutes elapsed since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// DayRecord is one employee-day as handed over by the store. Empty strings mean absent.
// Date is a YYYY-MM-DD lookup key and is never parsed by the calculator.
type DayRecord struct {
	Date       string
	ClockIn    string
	ClockOut   string
	BreakStart string
	BreakEnd   string
}

// DayClocks holds the parsed clock events of a day; nil means absent.
type DayClocks struct {
	ClockIn    *Clock
	ClockOut   *Clock
	BreakStart *Clock
	BreakEnd   *Clock
}

// DayStats is the derived result of evaluating one DayRecord.
type DayStats struct {
	NetHours      float64 `json:"net_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	NightHours    float64 `json:"night_hours"`

	// NetMinutes is the integer source of NetHours, kept for exact payroll arithmetic.
	NetMinutes int `json:"net_minutes"`
}

// IsZero reports whether the day contributed nothing.
func (s DayStats) IsZero() bool {
	return s.NetMinutes == 0 && s.OvertimeHours == 0 && s.NightHours == 0
}

// MonthlyTotals is the sum of DayStats over every day of a month.
type MonthlyTotals struct {
	TotalNet      float64 `json:"total_net"`
	TotalOvertime float64 `json:"total_overtime"`
	TotalNight    float64 `json:"total_night"`
	NetMinutes    int     `json:"net_minutes"`
}

// Add folds one day into the totals.
func (t *MonthlyTotals) Add(s DayStats) {
	t.TotalNet += s.NetHours
	t.TotalOvertime += s.OvertimeHours
	t.TotalNight += s.NightHours
	t.NetMinutes += s.NetMinutes
}

// DayEntry is one calendar day of a MonthlySheet. Record is nil when nothing was stored.
type DayEntry struct {
	Day    int
	Date   time.Time
	Record *DayRecord
	Stats  DayStats
}

// MonthlySheet is the aggregator output for a single employee-month.
type MonthlySheet struct {
	Year   int
	Month  time.Month
	Days   []DayEntry
	Totals MonthlyTotals
}

// DaysInMonth returns the Gregorian day count of the month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
