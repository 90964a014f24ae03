package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	ExistsByName(ctx context.Context, fullName string) (bool, error)

	// List returns non-deleted employees matching the filter and the total match count.
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)

	// ListActive returns every non-deleted employee ordered by name.
	ListActive(ctx context.Context) ([]Employee, error)

	// Delete soft deletes the employee.
	Delete(ctx context.Context, id string) error
}
