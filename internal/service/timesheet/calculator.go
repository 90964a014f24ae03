package timesheet

import (
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/timesheet"
)

// Calculator turns one day's clock events into worked, overtime and night hours.
// It holds no state besides its settings and is safe for concurrent use.
type Calculator struct {
	Settings timesheet.Settings
}

func NewCalculator(settings timesheet.Settings) Calculator {
	return Calculator{Settings: settings}
}

// Compute evaluates a single day. A missing clock-in or clock-out yields zero stats.
func (c Calculator) Compute(in, out, breakStart, breakEnd *timesheet.Clock) timesheet.DayStats {
	if in == nil || out == nil {
		return timesheet.DayStats{}
	}

	start := in.Minutes()
	end := out.Minutes()
	if end < start {
		end += timesheet.MinutesPerDay
	}

	breakMinutes := 0
	if breakStart != nil && breakEnd != nil {
		bs := breakStart.Minutes()
		be := breakEnd.Minutes()
		if be < bs {
			be += timesheet.MinutesPerDay
		}
		breakMinutes = be - bs
	}

	net := max(0, end-start-breakMinutes)
	netHours := float64(net) / 60
	overtime := max(0, netHours-c.Settings.StandardDayHours)

	return timesheet.DayStats{
		NetHours:      netHours,
		OvertimeHours: overtime,
		NightHours:    float64(c.nightMinutes(start, end)) / 60,
		NetMinutes:    net,
	}
}

// ComputeRecord normalizes a stored record and evaluates it.
func (c Calculator) ComputeRecord(record timesheet.DayRecord) timesheet.DayStats {
	clocks := Normalize(record)
	return c.Compute(clocks.ClockIn, clocks.ClockOut, clocks.BreakStart, clocks.BreakEnd)
}

// nightMinutes counts the minutes of [start, end) that fall in the night window.
// end is at most one day past midnight, so night windows anchored on the first
// and second day cover every possible overlap.
func (c Calculator) nightMinutes(start, end int) int {
	total := 0
	for _, day := range []int{0, timesheet.MinutesPerDay} {
		for _, w := range c.nightWindows(day) {
			total += overlap(start, end, w[0], w[1])
		}
	}
	return total
}

func (c Calculator) nightWindows(day int) [][2]int {
	s := c.Settings.NightStartHour * 60
	e := c.Settings.NightEndHour * 60

	switch {
	case s > e:
		return [][2]int{{day, day + e}, {day + s, day + timesheet.MinutesPerDay}}
	case s < e:
		return [][2]int{{day + s, day + e}}
	default:
		return nil
	}
}

func overlap(aStart, aEnd, bStart, bEnd int) int {
	return max(0, min(aEnd, bEnd)-max(aStart, bStart))
}
