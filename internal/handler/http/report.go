package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/kintai-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// Monthly timesheet of one employee as a JSON grid
	GetMonthlyReport(w http.ResponseWriter, r *http.Request)

	// Same timesheet as an xlsx download
	ExportMonthlyReport(w http.ResponseWriter, r *http.Request)

	// Flat attendance list for a date range as an xlsx download
	ExportAttendance(w http.ResponseWriter, r *http.Request)

	// Archive every active employee's month into storage
	ArchiveMonth(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// parsePeriod reads the year and month query parameters.
func parsePeriod(w http.ResponseWriter, r *http.Request) (year, month int, ok bool) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		response.BadRequest(w, "invalid month parameter", nil)
		return 0, 0, false
	}

	year, err = strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "invalid year parameter", nil)
		return 0, 0, false
	}

	return year, month, true
}

func monthlyReportRequest(w http.ResponseWriter, r *http.Request) (report.MonthlyReportRequest, bool) {
	year, month, ok := parsePeriod(w, r)
	if !ok {
		return report.MonthlyReportRequest{}, false
	}
	return report.MonthlyReportRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Year:       year,
		Month:      month,
	}, true
}

// GetMonthlyReport handles GET /reports/monthly
func (h *reportHandlerImpl) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	req, ok := monthlyReportRequest(w, r)
	if !ok {
		return
	}

	result, err := h.reportService.MonthlyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportMonthlyReport handles GET /reports/monthly/export
func (h *reportHandlerImpl) ExportMonthlyReport(w http.ResponseWriter, r *http.Request) {
	req, ok := monthlyReportRequest(w, r)
	if !ok {
		return
	}

	file, err := h.reportService.MonthlyReportXLSX(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Data)
}

// ExportAttendance handles GET /reports/attendance/export
func (h *reportHandlerImpl) ExportAttendance(w http.ResponseWriter, r *http.Request) {
	req := report.AttendanceExportRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	file, err := h.reportService.AttendanceExport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Filename, file.ContentType, file.Data)
}

// ArchiveMonth handles POST /reports/archive
func (h *reportHandlerImpl) ArchiveMonth(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parsePeriod(w, r)
	if !ok {
		return
	}

	if errs := report.ValidatePeriod(year, month); len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	result, err := h.reportService.ArchiveMonth(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Monthly reports archived", result)
}
