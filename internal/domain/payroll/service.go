package payroll

import "context"

// PayrollService estimates gross pay from tracked hours.
type PayrollService interface {
	// Estimate computes an employee's pay for a month (admin)
	Estimate(ctx context.Context, req EstimateRequest) (EstimateResponse, error)

	// MyEstimate computes the current month for the employee in the access token
	MyEstimate(ctx context.Context) (EstimateResponse, error)
}
