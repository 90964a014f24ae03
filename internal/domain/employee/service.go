package employee

import (
	"context"
)

// EmployeeService defines business logic for staff management (admin only)
type EmployeeService interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id string) error
}
