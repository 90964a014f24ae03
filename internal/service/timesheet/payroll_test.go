package timesheet

import (
	"testing"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEstimate_MonthlyIgnoresHours(t *testing.T) {
	emp := employee.Employee{PayBasis: employee.PayBasisMonthly, Salary: decimal.NewFromInt(300000)}

	for _, minutes := range []int{0, 60, 160 * 60, 400 * 60} {
		totals := timesheet.MonthlyTotals{TotalNet: float64(minutes) / 60, NetMinutes: minutes}
		got := Estimate(emp, totals)
		assert.True(t, got.Amount.Equal(decimal.NewFromInt(300000)), got.Amount.String())
		assert.Equal(t, employee.PayBasisMonthly, got.Basis)
	}
}

func TestEstimate_HourlyFloors(t *testing.T) {
	tests := []struct {
		name    string
		rate    decimal.Decimal
		minutes int
		want    int64
	}{
		{"160 hours at 1200", decimal.NewFromInt(1200), 160 * 60, 192000},
		{"no hours", decimal.NewFromInt(1200), 0, 0},
		{"partial hour floors", decimal.NewFromInt(1000), 61, 1016},
		{"fractional rate", decimal.RequireFromString("1050.5"), 90, 1575},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emp := employee.Employee{PayBasis: employee.PayBasisHourly, Salary: tt.rate}
			totals := timesheet.MonthlyTotals{TotalNet: float64(tt.minutes) / 60, NetMinutes: tt.minutes}

			got := Estimate(emp, totals)
			assert.True(t, got.Amount.Equal(decimal.NewFromInt(tt.want)), "got %s", got.Amount)
			assert.Equal(t, employee.PayBasisHourly, got.Basis)
			assert.InDelta(t, totals.TotalNet, got.NetHours, 1e-9)
		})
	}
}

func TestEstimate_OvertimeHasNoPremium(t *testing.T) {
	emp := employee.Employee{PayBasis: employee.PayBasisHourly, Salary: decimal.NewFromInt(1000)}
	base := Estimate(emp, timesheet.MonthlyTotals{TotalNet: 10, NetMinutes: 600})
	withOT := Estimate(emp, timesheet.MonthlyTotals{TotalNet: 10, TotalOvertime: 5, NetMinutes: 600})
	assert.True(t, base.Amount.Equal(withOT.Amount))
}
