package timesheet

import (
	"testing"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatHours(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, ""},
		{7.5, "07:30"},
		{0.25, "00:15"},
		{8, "08:00"},
		{1.0 / 60, "00:01"},
		{2.9999, "03:00"},
		{123.75, "123:45"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatHours(tt.in), "FormatHours(%v)", tt.in)
	}
}

func TestRender(t *testing.T) {
	calc := NewCalculator(timesheet.DefaultSettings())
	sheet, err := calc.Aggregate(2024, 2, []timesheet.DayRecord{
		{Date: "2024-02-01", ClockIn: "09:00", ClockOut: "18:00", BreakStart: "12:00", BreakEnd: "13:00"},
		{Date: "2024-02-02", ClockIn: "23:00", ClockOut: "02:00", BreakStart: "00:30"},
		{Date: "2024-02-03", ClockIn: "09:00"},
	})
	require.NoError(t, err)

	grid := Render(timesheet.ReportHeader{EmployeeID: "emp-1", EmployeeName: "Sato Hanako"}, sheet)

	assert.Equal(t, "Sato Hanako", grid.EmployeeName)
	assert.Equal(t, "2024-02", grid.Period)
	assert.Equal(t, timesheet.ColumnHeaders, grid.Header)
	require.Len(t, grid.Rows, 29)
	for _, row := range grid.Rows {
		assert.Len(t, row, timesheet.ColumnCount)
		assert.Empty(t, row[timesheet.ColRemarks])
	}

	// 2024-02-01 is a Thursday.
	assert.Equal(t, []string{"1", "Thu", "09:00", "18:00", "12:00-13:00", "08:00", "00:30", "", ""}, grid.Rows[0])
	assert.Equal(t, []string{"2", "Fri", "23:00", "02:00", "00:30-", "03:00", "", "03:00", ""}, grid.Rows[1])
	assert.Equal(t, []string{"3", "Sat", "09:00", "", "", "", "", "", ""}, grid.Rows[2])
	assert.Equal(t, "Mon", grid.Cell(4, timesheet.ColWeekday))
	assert.Equal(t, "Sun", grid.Cell(3, timesheet.ColWeekday))
	assert.Equal(t, "", grid.Cell(99, timesheet.ColDate))

	assert.Equal(t, "Total", grid.Totals[timesheet.ColDate])
	assert.Equal(t, "11:00", grid.Totals[timesheet.ColWorkHours])
	assert.Equal(t, "00:30", grid.Totals[timesheet.ColOvertime])
	assert.Equal(t, "03:00", grid.Totals[timesheet.ColNight])
	assert.Empty(t, grid.Totals[timesheet.ColRemarks])
}

func TestRender_TotalsComeFromSheet(t *testing.T) {
	sheet := timesheet.MonthlySheet{
		Year:   2024,
		Month:  1,
		Totals: timesheet.MonthlyTotals{TotalNet: 1.5, TotalOvertime: 0, TotalNight: 0.25},
	}
	grid := Render(timesheet.ReportHeader{}, sheet)
	assert.Empty(t, grid.Rows)
	assert.Equal(t, "01:30", grid.Totals[timesheet.ColWorkHours])
	assert.Equal(t, "", grid.Totals[timesheet.ColOvertime])
	assert.Equal(t, "00:15", grid.Totals[timesheet.ColNight])
}

func TestRender_GroupsCoverEveryColumn(t *testing.T) {
	grid := Render(timesheet.ReportHeader{}, timesheet.MonthlySheet{Year: 2024, Month: 1})
	covered := 0
	next := 0
	for _, g := range grid.Groups {
		assert.Equal(t, next, g.From)
		covered += g.To - g.From + 1
		next = g.To + 1
	}
	assert.Equal(t, timesheet.ColumnCount, covered)
}
