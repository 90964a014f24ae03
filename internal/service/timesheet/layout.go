package timesheet

import (
	"fmt"
	"math"
	"strconv"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/timesheet"
)

// Monday-first weekday labels.
var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var columnGroups = []timesheet.ColumnGroup{
	{Label: "Day", From: timesheet.ColDate, To: timesheet.ColWeekday},
	{Label: "Attendance", From: timesheet.ColClockIn, To: timesheet.ColBreak},
	{Label: "Hours", From: timesheet.ColWorkHours, To: timesheet.ColNight},
	{Label: "", From: timesheet.ColRemarks, To: timesheet.ColRemarks},
}

// Render lays a month out as a fixed grid. The totals row is taken from the
// aggregated totals, not recomputed from the rows.
func Render(header timesheet.ReportHeader, sheet timesheet.MonthlySheet) timesheet.ReportGrid {
	grid := timesheet.ReportGrid{
		Title:        fmt.Sprintf("Attendance Report %04d-%02d", sheet.Year, int(sheet.Month)),
		EmployeeID:   header.EmployeeID,
		EmployeeName: header.EmployeeName,
		Period:       fmt.Sprintf("%04d-%02d", sheet.Year, int(sheet.Month)),
		Groups:       append([]timesheet.ColumnGroup(nil), columnGroups...),
		Header:       append([]string(nil), timesheet.ColumnHeaders...),
		Rows:         make([][]string, 0, len(sheet.Days)),
	}

	for _, d := range sheet.Days {
		row := make([]string, timesheet.ColumnCount)
		row[timesheet.ColDate] = strconv.Itoa(d.Day)
		row[timesheet.ColWeekday] = weekdayLabels[(int(d.Date.Weekday())+6)%7]
		if d.Record != nil {
			row[timesheet.ColClockIn] = d.Record.ClockIn
			row[timesheet.ColClockOut] = d.Record.ClockOut
			row[timesheet.ColBreak] = breakMarker(d.Record.BreakStart, d.Record.BreakEnd)
		}
		row[timesheet.ColWorkHours] = FormatHours(d.Stats.NetHours)
		row[timesheet.ColOvertime] = FormatHours(d.Stats.OvertimeHours)
		row[timesheet.ColNight] = FormatHours(d.Stats.NightHours)
		grid.Rows = append(grid.Rows, row)
	}

	totals := make([]string, timesheet.ColumnCount)
	totals[timesheet.ColDate] = "Total"
	totals[timesheet.ColWorkHours] = FormatHours(sheet.Totals.TotalNet)
	totals[timesheet.ColOvertime] = FormatHours(sheet.Totals.TotalOvertime)
	totals[timesheet.ColNight] = FormatHours(sheet.Totals.TotalNight)
	grid.Totals = totals

	return grid
}

// FormatHours renders fractional hours as HH:MM. Zero renders as "" to tell
// "no activity" apart from a real value.
func FormatHours(h float64) string {
	if h == 0 {
		return ""
	}
	hours := int(h)
	minutes := int(math.Round((h - float64(hours)) * 60))
	if minutes == 60 {
		hours++
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

func breakMarker(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + "-" + end
	case start != "":
		return start + "-"
	default:
		return ""
	}
}
