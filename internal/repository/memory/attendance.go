// Package memory holds in-memory repositories used by service and handler tests.
package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
)

type AttendanceRepository struct {
	mu        sync.Mutex
	seq       int
	rows      []attendance.Attendance
	employees *EmployeeRepository
}

// NewAttendanceRepository returns an empty store. When employees is set, rows
// listed by range carry the employee name.
func NewAttendanceRepository(employees *EmployeeRepository) *AttendanceRepository {
	return &AttendanceRepository{employees: employees}
}

// Seed inserts rows as-is, duplicates included.
func (r *AttendanceRepository) Seed(rows ...attendance.Attendance) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range rows {
		r.seq++
		if row.ID == "" {
			row.ID = "att-" + strconv.Itoa(r.seq)
		}
		if row.CreatedAt.IsZero() {
			row.CreatedAt = time.Unix(int64(r.seq), 0).UTC()
			row.UpdatedAt = row.CreatedAt
		}
		r.rows = append(r.rows, row)
	}
}

func (r *AttendanceRepository) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.EmployeeID == a.EmployeeID && row.Date.Equal(a.Date) {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
	}
	r.seq++
	a.ID = "att-" + strconv.Itoa(r.seq)
	a.CreatedAt = time.Unix(int64(r.seq), 0).UTC()
	a.UpdatedAt = a.CreatedAt
	r.rows = append(r.rows, a)
	return a, nil
}

func (r *AttendanceRepository) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (r *AttendanceRepository) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.EmployeeID == employeeID && row.Date.Equal(date) {
			found := row
			return &found, nil
		}
	}
	return nil, nil
}

func (r *AttendanceRepository) Update(_ context.Context, a attendance.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows {
		if row.ID == a.ID {
			r.rows[i] = a
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (r *AttendanceRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows {
		if row.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (r *AttendanceRepository) List(_ context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []attendance.Attendance
	for _, row := range r.rows {
		if filter.EmployeeID != nil && row.EmployeeID != *filter.EmployeeID {
			continue
		}
		date := row.Date.Format("2006-01-02")
		if filter.StartDate != nil && *filter.StartDate != "" && date < *filter.StartDate {
			continue
		}
		if filter.EndDate != nil && *filter.EndDate != "" && date > *filter.EndDate {
			continue
		}
		out = append(out, r.withName(row))
	}

	desc := strings.ToLower(filter.SortOrder) != "asc"
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Date.Before(out[j].Date)
	})

	total := int64(len(out))
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		start := min((page-1)*filter.Limit, len(out))
		end := min(start+filter.Limit, len(out))
		out = out[start:end]
	}
	return out, total, nil
}

func (r *AttendanceRepository) ListByEmployeeAndRange(_ context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []attendance.Attendance
	for _, row := range r.rows {
		if row.EmployeeID == employeeID && inRange(row.Date, start, end) {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *AttendanceRepository) ListByRange(_ context.Context, start, end time.Time) ([]attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []attendance.Attendance
	for _, row := range r.rows {
		if inRange(row.Date, start, end) {
			out = append(out, r.withName(row))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return name(out[i]) < name(out[j])
	})
	return out, nil
}

func (r *AttendanceRepository) withName(row attendance.Attendance) attendance.Attendance {
	if r.employees == nil {
		return row
	}
	if e, ok := r.employees.get(row.EmployeeID); ok {
		n := e.FullName
		row.EmployeeName = &n
	}
	return row
}

func inRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

func name(a attendance.Attendance) string {
	if a.EmployeeName == nil {
		return ""
	}
	return *a.EmployeeName
}
