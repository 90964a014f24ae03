package timesheet

// Report grid columns, in export order.
const (
	ColDate = iota
	ColWeekday
	ColClockIn
	ColClockOut
	ColBreak
	ColWorkHours
	ColOvertime
	ColNight
	ColRemarks

	ColumnCount
)

var ColumnHeaders = []string{
	"Date",
	"Weekday",
	"Clock In",
	"Clock Out",
	"Break",
	"Work Hours",
	"Overtime",
	"Night",
	"Remarks",
}

// ColumnGroup is a merged header spanning columns From..To inclusive.
type ColumnGroup struct {
	Label string `json:"label"`
	From  int    `json:"from"`
	To    int    `json:"to"`
}

// ReportHeader carries the presentation metadata printed above the grid.
type ReportHeader struct {
	EmployeeID   string
	EmployeeName string
}

// ReportGrid is the fixed monthly layout: one row per day plus a totals row.
type ReportGrid struct {
	Title        string        `json:"title"`
	EmployeeID   string        `json:"employee_id"`
	EmployeeName string        `json:"employee_name"`
	Period       string        `json:"period"`
	Groups       []ColumnGroup `json:"groups"`
	Header       []string      `json:"header"`
	Rows         [][]string    `json:"rows"`
	Totals       []string      `json:"totals"`
}

// Cell returns the value at a day row (0-based) and column, or "" when out of range.
func (g ReportGrid) Cell(row, col int) string {
	if row < 0 || row >= len(g.Rows) || col < 0 || col >= len(g.Rows[row]) {
		return ""
	}
	return g.Rows[row][col]
}
