package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID             string
	FullName       string
	BirthDate      *time.Time
	EmploymentType EmploymentType
	PayBasis       PayBasis
	// Salary is the monthly amount for PayBasisMonthly and the hourly rate for PayBasisHourly.
	Salary         decimal.Decimal
	Transportation decimal.Decimal
	PINHash        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

type EmploymentType string

const (
	EmploymentTypeRegular  EmploymentType = "regular"
	EmploymentTypePartTime EmploymentType = "part_time"
)

type PayBasis string

const (
	PayBasisMonthly PayBasis = "monthly"
	PayBasisHourly  PayBasis = "hourly"
)

func (b PayBasis) IsValid() bool {
	return b == PayBasisMonthly || b == PayBasisHourly
}

func (t EmploymentType) IsValid() bool {
	return t == EmploymentTypeRegular || t == EmploymentTypePartTime
}
