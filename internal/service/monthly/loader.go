package monthly

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/timesheet"
	timesheetsvc "github.com/cmlabs-hris/kintai-backend-go/internal/service/timesheet"
)

// Loader reads an employee's month from storage and aggregates it.
type Loader struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	calc           timesheetsvc.Calculator
}

func NewLoader(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	settings timesheet.Settings,
) *Loader {
	return &Loader{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		calc:           timesheetsvc.NewCalculator(settings),
	}
}

// Load returns the employee and their aggregated sheet for the month.
func (l *Loader) Load(ctx context.Context, employeeID string, year, month int) (employee.Employee, timesheet.MonthlySheet, error) {
	if err := timesheetsvc.ValidatePeriod(year, month); err != nil {
		return employee.Employee{}, timesheet.MonthlySheet{}, err
	}

	emp, err := l.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return employee.Employee{}, timesheet.MonthlySheet{}, err
	}

	sheet, err := l.LoadSheet(ctx, emp.ID, year, month)
	if err != nil {
		return employee.Employee{}, timesheet.MonthlySheet{}, err
	}
	return emp, sheet, nil
}

// LoadSheet aggregates a month without looking the employee up.
func (l *Loader) LoadSheet(ctx context.Context, employeeID string, year, month int) (timesheet.MonthlySheet, error) {
	first, last := timesheetsvc.MonthRange(year, month)
	rows, err := l.attendanceRepo.ListByEmployeeAndRange(ctx, employeeID, first, last)
	if err != nil {
		return timesheet.MonthlySheet{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	return l.calc.Aggregate(year, month, attendance.DayRecords(rows))
}

// Calculator exposes the configured day calculator.
func (l *Loader) Calculator() timesheetsvc.Calculator {
	return l.calc
}
