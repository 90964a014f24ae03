package employee

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	withTx       postgresql.TxRunner
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(withTx postgresql.TxRunner, employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		withTx:       withTx,
		employeeRepo: employeeRepo,
	}
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	var birthDate *string
	if emp.BirthDate != nil {
		s := emp.BirthDate.Format("2006-01-02")
		birthDate = &s
	}

	return employee.EmployeeResponse{
		ID:             emp.ID,
		FullName:       emp.FullName,
		BirthDate:      birthDate,
		EmploymentType: string(emp.EmploymentType),
		PayBasis:       string(emp.PayBasis),
		Salary:         emp.Salary.StringFixed(2),
		Transportation: emp.Transportation.StringFixed(2),
		CreatedAt:      emp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      emp.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	pinHash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash pin: %w", err)
	}

	var birthDate *time.Time
	if req.BirthDate != nil && *req.BirthDate != "" {
		parsed, _ := time.Parse("2006-01-02", *req.BirthDate)
		birthDate = &parsed
	}

	newEmployee := employee.Employee{
		ID:             uuid.New().String(),
		FullName:       req.FullName,
		BirthDate:      birthDate,
		EmploymentType: employee.EmploymentType(req.EmploymentType),
		PayBasis:       employee.PayBasis(req.PayBasis),
		Salary:         req.Salary,
		Transportation: req.Transportation,
		PINHash:        string(pinHash),
	}

	var created employee.Employee
	err = s.withTx(ctx, func(txCtx context.Context) error {
		exists, err := s.employeeRepo.ExistsByName(txCtx, newEmployee.FullName)
		if err != nil {
			return fmt.Errorf("failed to check employee name: %w", err)
		}
		if exists {
			return employee.ErrEmployeeNameExists
		}

		created, err = s.employeeRepo.Create(txCtx, newEmployee)
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("employee created",
		slog.String("employee_id", created.ID),
		slog.String("pay_basis", string(created.PayBasis)),
	)

	return mapEmployeeToResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Employees:  responses,
	}, nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}
