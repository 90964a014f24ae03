package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleGrid() timesheet.ReportGrid {
	return timesheet.ReportGrid{
		Title:        "Attendance Report 2024-02",
		EmployeeName: "Sato Hanako",
		Period:       "2024-02",
		Groups: []timesheet.ColumnGroup{
			{Label: "Day", From: 0, To: 1},
			{Label: "Attendance", From: 2, To: 4},
			{Label: "Hours", From: 5, To: 7},
			{Label: "", From: 8, To: 8},
		},
		Header: timesheet.ColumnHeaders,
		Rows: [][]string{
			{"1", "Thu", "09:00", "18:00", "12:00-13:00", "08:00", "00:30", "", ""},
			{"2", "Fri", "", "", "", "", "", "", ""},
		},
		Totals: []string{"Total", "", "", "", "", "08:00", "00:30", "", ""},
	}
}

func TestWriteMonthlyReport(t *testing.T) {
	data, err := WriteMonthlyReport(sampleGrid())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(ReportSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Attendance Report 2024-02", title)

	name, _ := f.GetCellValue(ReportSheet, "B2")
	assert.Equal(t, "Sato Hanako", name)

	group, _ := f.GetCellValue(ReportSheet, "C4")
	assert.Equal(t, "Attendance", group)

	hdr, _ := f.GetCellValue(ReportSheet, "F5")
	assert.Equal(t, "Work Hours", hdr)

	brk, _ := f.GetCellValue(ReportSheet, "E6")
	assert.Equal(t, "12:00-13:00", brk)

	total, _ := f.GetCellValue(ReportSheet, "A8")
	assert.Equal(t, "Total", total)
	totalNet, _ := f.GetCellValue(ReportSheet, "F8")
	assert.Equal(t, "08:00", totalNet)

	merged, err := f.GetMergeCells(ReportSheet)
	require.NoError(t, err)
	starts := make([]string, 0, len(merged))
	for _, m := range merged {
		starts = append(starts, m.GetStartAxis())
	}
	assert.ElementsMatch(t, []string{"A1", "A4", "C4", "F4"}, starts)
}

func TestWriteTable(t *testing.T) {
	data, err := WriteTable(AttendanceSheet,
		[]string{"Name", "Date", "Clock In", "Clock Out"},
		[][]string{
			{"Sato Hanako", "2024-02-01", "09:00", "18:00"},
			{"Suzuki Ichiro", "2024-02-01", "22:00", ""},
		})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(AttendanceSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Name", "Date", "Clock In", "Clock Out"}, rows[0])
	assert.Equal(t, "Suzuki Ichiro", rows[2][0])
	assert.Equal(t, "22:00", rows[2][2])
}

func TestWriteAttendanceList(t *testing.T) {
	data, err := WriteAttendanceList([]AttendanceRow{
		{Name: "Sato Hanako", Date: "2024-02-01", ClockIn: "09:00", ClockOut: "18:00", PayBasis: "hourly", Salary: "1200.00"},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(AttendanceSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Name", "Date", "Clock In", "Clock Out", "Pay Basis", "Salary"}, rows[0])
	assert.Equal(t, []string{"Sato Hanako", "2024-02-01", "09:00", "18:00", "hourly", "1200.00"}, rows[1])
}
