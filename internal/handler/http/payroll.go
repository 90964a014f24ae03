package http

import (
	"net/http"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/kintai-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Estimate(w http.ResponseWriter, r *http.Request)
	MyEstimate(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// Estimate handles GET /payroll/estimate
func (h *payrollHandlerImpl) Estimate(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parsePeriod(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.Estimate(r.Context(), payroll.EstimateRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Year:       year,
		Month:      month,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MyEstimate handles GET /payroll/me
func (h *payrollHandlerImpl) MyEstimate(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.MyEstimate(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
