package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate retrieves the earliest-created record of an employee on a date.
	// Returns nil without error when there is none.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// Update overwrites the clock fields and photo of an existing record
	Update(ctx context.Context, attendance Attendance) error

	Delete(ctx context.Context, id string) error

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// ListByEmployeeAndRange returns an employee's records between start and end inclusive,
	// ordered by date, created_at, id.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)

	// ListByRange returns every employee's records between start and end inclusive with
	// EmployeeName populated, ordered by date, employee name.
	ListByRange(ctx context.Context, start, end time.Time) ([]Attendance, error)
}
