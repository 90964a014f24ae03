package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// MonthlyReport renders one employee's month as a grid
	MonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReportResponse, error)

	// MonthlyReportXLSX renders the same grid as a spreadsheet
	MonthlyReportXLSX(ctx context.Context, req MonthlyReportRequest) (ExportFile, error)

	// AttendanceExport writes every employee's records in a date range as a flat sheet
	AttendanceExport(ctx context.Context, req AttendanceExportRequest) (ExportFile, error)

	// ArchiveMonth stores a workbook per active employee for the month, skipping
	// employees whose archive already exists
	ArchiveMonth(ctx context.Context, year, month int) (ArchiveResult, error)
}
