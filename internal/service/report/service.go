package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/kintai-backend-go/internal/service/monthly"
	timesheetsvc "github.com/cmlabs-hris/kintai-backend-go/internal/service/timesheet"
	"golang.org/x/sync/errgroup"
)

// archiveConcurrency bounds the number of workbooks rendered at once.
const archiveConcurrency = 4

type ReportServiceImpl struct {
	loader         *monthly.Loader
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	storage        storage.FileStorage
	now            func() time.Time
}

func NewReportService(
	loader *monthly.Loader,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	fileStorage storage.FileStorage,
) report.ReportService {
	return &ReportServiceImpl{
		loader:         loader,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		storage:        fileStorage,
		now:            time.Now,
	}
}

// ArchiveKey is where the archived workbook of an employee's month is stored.
func ArchiveKey(year, month int, employeeID string) string {
	return fmt.Sprintf("reports/%04d-%02d/%s.xlsx", year, month, employeeID)
}

// MonthlyReport implements report.ReportService.
func (s *ReportServiceImpl) MonthlyReport(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReportResponse{}, err
	}

	emp, sheet, err := s.loader.Load(ctx, req.EmployeeID, req.Year, req.Month)
	if err != nil {
		return report.MonthlyReportResponse{}, err
	}

	return report.MonthlyReportResponse{
		EmployeeID:  emp.ID,
		Year:        req.Year,
		Month:       req.Month,
		GeneratedAt: s.now().Format(time.RFC3339),
		Totals:      sheet.Totals,
		Grid:        renderGrid(emp, sheet),
	}, nil
}

// MonthlyReportXLSX implements report.ReportService.
func (s *ReportServiceImpl) MonthlyReportXLSX(ctx context.Context, req report.MonthlyReportRequest) (report.ExportFile, error) {
	if err := req.Validate(); err != nil {
		return report.ExportFile{}, err
	}

	emp, sheet, err := s.loader.Load(ctx, req.EmployeeID, req.Year, req.Month)
	if err != nil {
		return report.ExportFile{}, err
	}

	data, err := spreadsheet.WriteMonthlyReport(renderGrid(emp, sheet))
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	return report.ExportFile{
		Filename:    fmt.Sprintf("attendance_report_%04d-%02d_%s.xlsx", req.Year, req.Month, emp.ID),
		ContentType: spreadsheet.ContentType,
		Data:        data,
	}, nil
}

// AttendanceExport implements report.ReportService.
func (s *ReportServiceImpl) AttendanceExport(ctx context.Context, req report.AttendanceExportRequest) (report.ExportFile, error) {
	if err := req.Validate(); err != nil {
		return report.ExportFile{}, err
	}
	start, end, _ := validator.IsValidDateRange(req.StartDate, req.EndDate)

	records, err := s.attendanceRepo.ListByRange(ctx, start, end)
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	if len(records) == 0 {
		return report.ExportFile{}, report.ErrNoDataFound
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("failed to list employees: %w", err)
	}
	byID := make(map[string]employee.Employee, len(employees))
	for _, e := range employees {
		byID[e.ID] = e
	}

	rows := make([]spreadsheet.AttendanceRow, 0, len(records))
	for _, r := range records {
		// Deleted employees are left out of the export.
		e, ok := byID[r.EmployeeID]
		if !ok {
			continue
		}
		rows = append(rows, spreadsheet.AttendanceRow{
			Name:     e.FullName,
			Date:     r.Date.Format("2006-01-02"),
			ClockIn:  deref(r.ClockIn),
			ClockOut: deref(r.ClockOut),
			PayBasis: string(e.PayBasis),
			Salary:   e.Salary.StringFixed(2),
		})
	}
	if len(rows) == 0 {
		return report.ExportFile{}, report.ErrNoDataFound
	}

	data, err := spreadsheet.WriteAttendanceList(rows)
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	return report.ExportFile{
		Filename:    fmt.Sprintf("attendance_%s_%s.xlsx", req.StartDate, req.EndDate),
		ContentType: spreadsheet.ContentType,
		Data:        data,
	}, nil
}

// ArchiveMonth implements report.ReportService.
func (s *ReportServiceImpl) ArchiveMonth(ctx context.Context, year, month int) (report.ArchiveResult, error) {
	result := report.ArchiveResult{Period: fmt.Sprintf("%04d-%02d", year, month)}
	if err := timesheetsvc.ValidatePeriod(year, month); err != nil {
		return result, err
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list employees: %w", err)
	}

	var archived, skipped atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(archiveConcurrency)

	for _, emp := range employees {
		g.Go(func() error {
			key := ArchiveKey(year, month, emp.ID)

			exists, err := s.storage.Exists(gctx, key)
			if err != nil {
				return fmt.Errorf("failed to check archive %s: %w", key, err)
			}
			if exists {
				skipped.Add(1)
				return nil
			}

			sheet, err := s.loader.LoadSheet(gctx, emp.ID, year, month)
			if err != nil {
				return fmt.Errorf("failed to load month for %s: %w", emp.ID, err)
			}

			data, err := spreadsheet.WriteMonthlyReport(renderGrid(emp, sheet))
			if err != nil {
				return fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
			}

			if _, err := s.storage.Upload(gctx, bytes.NewReader(data), key, spreadsheet.ContentType); err != nil {
				return fmt.Errorf("failed to upload archive %s: %w", key, err)
			}
			archived.Add(1)
			return nil
		})
	}

	err = g.Wait()
	result.Archived = int(archived.Load())
	result.Skipped = int(skipped.Load())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Warn("report archive interrupted", slog.String("period", result.Period))
		}
		return result, err
	}

	slog.Info("report archive completed",
		slog.String("period", result.Period),
		slog.Int("archived", result.Archived),
		slog.Int("skipped", result.Skipped),
	)
	return result, nil
}

func renderGrid(emp employee.Employee, sheet timesheet.MonthlySheet) timesheet.ReportGrid {
	return timesheetsvc.Render(timesheet.ReportHeader{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
	}, sheet)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
