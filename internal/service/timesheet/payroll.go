package timesheet

import (
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

var minutesPerHour = decimal.NewFromInt(60)

// PayrollEstimate is the gross amount for a month and the basis it was computed on.
type PayrollEstimate struct {
	Amount   decimal.Decimal
	Basis    employee.PayBasis
	NetHours float64
}

// Estimate computes a month's pay. Monthly staff get their salary unchanged;
// hourly staff get floor(net hours x rate). Overtime carries no premium.
func Estimate(emp employee.Employee, totals timesheet.MonthlyTotals) PayrollEstimate {
	est := PayrollEstimate{
		Basis:    emp.PayBasis,
		NetHours: totals.TotalNet,
	}

	switch emp.PayBasis {
	case employee.PayBasisHourly:
		est.Amount = decimal.NewFromInt(int64(totals.NetMinutes)).
			Mul(emp.Salary).
			Div(minutesPerHour).
			Floor()
	default:
		est.Amount = emp.Salary
	}

	return est
}
