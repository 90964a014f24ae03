package payroll

import (
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
)

type EstimateRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
}

func (r *EstimateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	errs = append(errs, report.ValidatePeriod(r.Year, r.Month)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EstimateResponse struct {
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	PayBasis       string  `json:"pay_basis"`
	Rate           string  `json:"rate"`
	NetHours       float64 `json:"net_hours"`
	OvertimeHours  float64 `json:"overtime_hours"`
	NightHours     float64 `json:"night_hours"`
	Amount         string  `json:"amount"`
	Transportation string  `json:"transportation"`
}
