package spreadsheet

import (
	"fmt"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/timesheet"
	"github.com/xuri/excelize/v2"
)

const (
	ReportSheet     = "Report"
	AttendanceSheet = "Attendance"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Row layout of a monthly report workbook (1-based, as in excelize).
const (
	titleRow  = 1
	metaRow   = 2
	groupRow  = 4
	headerRow = 5
	firstDay  = 6
)

// WriteMonthlyReport renders a monthly report grid into an xlsx workbook.
func WriteMonthlyReport(grid timesheet.ReportGrid) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ReportSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	lastCol := len(grid.Header)
	if lastCol == 0 {
		lastCol = 1
	}

	if err := setRow(f, ReportSheet, titleRow, []string{grid.Title}); err != nil {
		return nil, err
	}
	if err := mergeRow(f, ReportSheet, titleRow, 1, lastCol); err != nil {
		return nil, err
	}
	if err := styleRow(f, ReportSheet, titleRow, 1, 1, bold); err != nil {
		return nil, err
	}

	if err := setRow(f, ReportSheet, metaRow, []string{"Employee", grid.EmployeeName, "", "Period", grid.Period}); err != nil {
		return nil, err
	}

	for _, g := range grid.Groups {
		cell, err := excelize.CoordinatesToCellName(g.From+1, groupRow)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(ReportSheet, cell, g.Label); err != nil {
			return nil, err
		}
		if g.To > g.From {
			if err := mergeRow(f, ReportSheet, groupRow, g.From+1, g.To+1); err != nil {
				return nil, err
			}
		}
	}
	if len(grid.Groups) > 0 {
		if err := styleRow(f, ReportSheet, groupRow, 1, lastCol, header); err != nil {
			return nil, err
		}
	}

	if err := setRow(f, ReportSheet, headerRow, grid.Header); err != nil {
		return nil, err
	}
	if err := styleRow(f, ReportSheet, headerRow, 1, lastCol, header); err != nil {
		return nil, err
	}

	for i, row := range grid.Rows {
		if err := setRow(f, ReportSheet, firstDay+i, row); err != nil {
			return nil, err
		}
	}

	totalsRow := firstDay + len(grid.Rows)
	if err := setRow(f, ReportSheet, totalsRow, grid.Totals); err != nil {
		return nil, err
	}
	if err := styleRow(f, ReportSheet, totalsRow, 1, lastCol, bold); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(ReportSheet, "A", "I", 12); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	return write(f)
}

// AttendanceRow is one line of the flat attendance export.
type AttendanceRow struct {
	Name     string
	Date     string
	ClockIn  string
	ClockOut string
	PayBasis string
	Salary   string
}

var attendanceListHeader = []string{"Name", "Date", "Clock In", "Clock Out", "Pay Basis", "Salary"}

// WriteAttendanceList writes the flat attendance export.
func WriteAttendanceList(rows []AttendanceRow) ([]byte, error) {
	table := make([][]string, len(rows))
	for i, r := range rows {
		table[i] = []string{r.Name, r.Date, r.ClockIn, r.ClockOut, r.PayBasis, r.Salary}
	}
	return WriteTable(AttendanceSheet, attendanceListHeader, table)
}

// WriteTable writes a flat table with a bold header row into a single-sheet workbook.
func WriteTable(sheet string, header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	if err := setRow(f, sheet, 1, header); err != nil {
		return nil, err
	}
	if len(header) > 0 {
		if err := styleRow(f, sheet, 1, 1, len(header), bold); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	return write(f)
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

func mergeRow(f *excelize.File, sheet string, row, fromCol, toCol int) error {
	from, err := excelize.CoordinatesToCellName(fromCol, row)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(toCol, row)
	if err != nil {
		return err
	}
	if err := f.MergeCell(sheet, from, to); err != nil {
		return fmt.Errorf("failed to merge %s:%s: %w", from, to, err)
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row, fromCol, toCol, style int) error {
	from, err := excelize.CoordinatesToCellName(fromCol, row)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(toCol, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, from, to, style)
}

func write(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
