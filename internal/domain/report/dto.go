package report

import (
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
)

// ========================================
// MONTHLY REPORT
// ========================================

type MonthlyReportRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	errs = append(errs, ValidatePeriod(r.Year, r.Month)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidatePeriod checks a year/month pair for request validation.
func ValidatePeriod(year, month int) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if month < 1 || month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if year < 1 || year > 9999 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 1 and 9999",
		})
	}
	return errs
}

type MonthlyReportResponse struct {
	EmployeeID  string                  `json:"employee_id"`
	Year        int                     `json:"year"`
	Month       int                     `json:"month"`
	GeneratedAt string                  `json:"generated_at"`
	Totals      timesheet.MonthlyTotals `json:"totals"`
	Grid        timesheet.ReportGrid    `json:"grid"`
}

// ========================================
// ATTENDANCE EXPORT
// ========================================

type AttendanceExportRequest struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

func (r *AttendanceExportRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if len(errs) == 0 {
		if _, _, ok := validator.IsValidDateRange(r.StartDate, r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: ErrInvalidDateRange.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ExportFile is a rendered workbook ready to be sent as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ArchiveResult summarises one archive run.
type ArchiveResult struct {
	Period   string `json:"period"`
	Archived int    `json:"archived"`
	Skipped  int    `json:"skipped"`
}
