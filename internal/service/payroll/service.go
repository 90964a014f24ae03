package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/kintai-backend-go/internal/service/monthly"
	timesheetsvc "github.com/cmlabs-hris/kintai-backend-go/internal/service/timesheet"
)

type PayrollServiceImpl struct {
	loader *monthly.Loader
	loc    *time.Location
	now    func() time.Time
}

func NewPayrollService(loader *monthly.Loader, loc *time.Location) payroll.PayrollService {
	if loc == nil {
		loc = time.UTC
	}
	return &PayrollServiceImpl{
		loader: loader,
		loc:    loc,
		now:    time.Now,
	}
}

// Estimate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Estimate(ctx context.Context, req payroll.EstimateRequest) (payroll.EstimateResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.EstimateResponse{}, err
	}

	emp, sheet, err := s.loader.Load(ctx, req.EmployeeID, req.Year, req.Month)
	if err != nil {
		return payroll.EstimateResponse{}, err
	}

	est := timesheetsvc.Estimate(emp, sheet.Totals)

	return payroll.EstimateResponse{
		EmployeeID:     emp.ID,
		EmployeeName:   emp.FullName,
		Year:           req.Year,
		Month:          req.Month,
		PayBasis:       string(est.Basis),
		Rate:           emp.Salary.StringFixed(2),
		NetHours:       sheet.Totals.TotalNet,
		OvertimeHours:  sheet.Totals.TotalOvertime,
		NightHours:     sheet.Totals.TotalNight,
		Amount:         est.Amount.String(),
		Transportation: emp.Transportation.StringFixed(2),
	}, nil
}

// MyEstimate implements payroll.PayrollService.
func (s *PayrollServiceImpl) MyEstimate(ctx context.Context) (payroll.EstimateResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.EstimateResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	if claims.EmployeeID == "" {
		return payroll.EstimateResponse{}, attendance.ErrEmployeeRequired
	}

	now := s.now().In(s.loc)
	return s.Estimate(ctx, payroll.EstimateRequest{
		EmployeeID: claims.EmployeeID,
		Year:       now.Year(),
		Month:      int(now.Month()),
	})
}
