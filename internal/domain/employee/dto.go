package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	FullName       string          `json:"full_name"`
	BirthDate      *string         `json:"birth_date,omitempty"` // YYYY-MM-DD
	EmploymentType string          `json:"employment_type"`
	PayBasis       string          `json:"pay_basis"`
	Salary         decimal.Decimal `json:"salary"`
	Transportation decimal.Decimal `json:"transportation"`
	PIN            string          `json:"pin"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.FullName = strings.TrimSpace(r.FullName)
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	} else if len(r.FullName) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not exceed 100 characters",
		})
	}

	if r.BirthDate != nil && *r.BirthDate != "" {
		if d, valid := validator.IsValidDate(*r.BirthDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "birth_date",
				Message: "birth_date must be in YYYY-MM-DD format",
			})
		} else if d.After(time.Now()) {
			errs = append(errs, validator.ValidationError{
				Field:   "birth_date",
				Message: ErrFutureDateNotAllowed.Error(),
			})
		}
	}

	if r.EmploymentType == "" {
		r.EmploymentType = string(EmploymentTypeRegular)
	}
	if !EmploymentType(r.EmploymentType).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "employment_type",
			Message: "employment_type must be one of: regular, part_time",
		})
	}

	if !PayBasis(r.PayBasis).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "pay_basis",
			Message: ErrInvalidPayBasis.Error(),
		})
	}

	if r.Salary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "salary",
			Message: "salary must not be negative",
		})
	}

	if r.Transportation.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "transportation",
			Message: "transportation must not be negative",
		})
	}

	if !validator.IsValidPIN(r.PIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: ErrInvalidPIN.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeFilter struct {
	Search   *string `json:"search,omitempty"`
	PayBasis *string `json:"pay_basis,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.PayBasis != nil && !PayBasis(*f.PayBasis).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "pay_basis",
			Message: ErrInvalidPayBasis.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	FullName       string  `json:"full_name"`
	BirthDate      *string `json:"birth_date,omitempty"`
	EmploymentType string  `json:"employment_type"`
	PayBasis       string  `json:"pay_basis"`
	Salary         string  `json:"salary"`
	Transportation string  `json:"transportation"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}
