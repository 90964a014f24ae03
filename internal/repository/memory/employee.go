package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
)

type EmployeeRepository struct {
	mu        sync.Mutex
	employees map[string]employee.Employee
}

func NewEmployeeRepository(seed ...employee.Employee) *EmployeeRepository {
	r := &EmployeeRepository{employees: make(map[string]employee.Employee, len(seed))}
	for _, e := range seed {
		r.employees[e.ID] = e
	}
	return r
}

func (r *EmployeeRepository) get(id string) (employee.Employee, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	return e, ok && e.DeletedAt == nil
}

func (r *EmployeeRepository) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.employees {
		if existing.DeletedAt == nil && existing.FullName == e.FullName {
			return employee.Employee{}, employee.ErrEmployeeNameExists
		}
	}
	now := time.Now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now
	r.employees[e.ID] = e
	return e, nil
}

func (r *EmployeeRepository) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := r.get(id)
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *EmployeeRepository) ExistsByName(_ context.Context, fullName string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.employees {
		if e.DeletedAt == nil && e.FullName == fullName {
			return true, nil
		}
	}
	return false, nil
}

func (r *EmployeeRepository) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	all, _ := r.ListActive(ctx)

	var out []employee.Employee
	for _, e := range all {
		if filter.Search != nil && !strings.Contains(strings.ToLower(e.FullName), strings.ToLower(*filter.Search)) {
			continue
		}
		if filter.PayBasis != nil && string(e.PayBasis) != *filter.PayBasis {
			continue
		}
		out = append(out, e)
	}

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

func (r *EmployeeRepository) ListActive(_ context.Context) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]employee.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		if e.DeletedAt == nil {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r *EmployeeRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok || e.DeletedAt != nil {
		return employee.ErrEmployeeNotFound
	}
	now := time.Now().UTC()
	e.DeletedAt = &now
	r.employees[id] = e
	return nil
}

// PassthroughTx runs fn without a transaction.
func PassthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
