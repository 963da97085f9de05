package hr

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// mockRepository backs the package tests with plain maps; reads apply the
// same non-deleted filtering contract as the GORM implementation.
type mockRepository struct {
	mu          sync.RWMutex
	departments map[uuid.UUID]*Department
	employees   map[uuid.UUID]*Employee
	attendances map[uuid.UUID]*Attendance
	leaves      map[uuid.UUID]*LeaveRequest
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		departments: make(map[uuid.UUID]*Department),
		employees:   make(map[uuid.UUID]*Employee),
		attendances: make(map[uuid.UUID]*Attendance),
		leaves:      make(map[uuid.UUID]*LeaveRequest),
	}
}

func stamp(id *uuid.UUID, createdAt *time.Time, version *int) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	*createdAt = time.Now()
	*version = 1
}

func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (r *mockRepository) CreateDepartment(_ context.Context, d *Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stamp(&d.ID, &d.CreatedAt, &d.Version)
	r.departments[d.ID] = d
	return nil
}

func (r *mockRepository) GetDepartment(_ context.Context, id uuid.UUID) (*Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.departments[id]
	if !ok || d.IsDeleted {
		return nil, ErrNotFound
	}
	clone := *d
	return &clone, nil
}

func (r *mockRepository) GetAnyDepartment(_ context.Context, id uuid.UUID) (*Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.departments[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *d
	return &clone, nil
}

func (r *mockRepository) ListDepartments(_ context.Context, f DepartmentFilter) ([]Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Department
	for _, d := range r.departments {
		if d.IsDeleted {
			continue
		}
		if f.IsActive != nil && d.IsActive != *f.IsActive {
			continue
		}
		out = append(out, *d)
	}
	return paginate(out, f.Offset, f.Limit), nil
}

func (r *mockRepository) SaveDepartment(_ context.Context, d *Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d.Version++
	clone := *d
	r.departments[d.ID] = &clone
	return nil
}

func (r *mockRepository) CreateEmployee(_ context.Context, e *Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.employees {
		if other.EmployeeNumber == e.EmployeeNumber && !other.IsDeleted {
			return ErrEmployeeNumberTaken
		}
	}
	stamp(&e.ID, &e.CreatedAt, &e.Version)
	r.employees[e.ID] = e
	return nil
}

func (r *mockRepository) GetEmployee(_ context.Context, id uuid.UUID) (*Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.employees[id]
	if !ok || e.IsDeleted {
		return nil, ErrNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *mockRepository) FindEmployeeByNumber(_ context.Context, number string) (*Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.employees {
		if e.EmployeeNumber == number && !e.IsDeleted {
			clone := *e
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *mockRepository) ListEmployees(_ context.Context, f EmployeeFilter) ([]Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Employee
	for _, e := range r.employees {
		if e.IsDeleted {
			continue
		}
		if f.DepartmentID != nil && (e.DepartmentID == nil || *e.DepartmentID != *f.DepartmentID) {
			continue
		}
		if f.IsActive != nil && e.IsActive != *f.IsActive {
			continue
		}
		out = append(out, *e)
	}
	return paginate(out, f.Offset, f.Limit), nil
}

func (r *mockRepository) SaveEmployee(_ context.Context, e *Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.Version++
	clone := *e
	r.employees[e.ID] = &clone
	return nil
}

func (r *mockRepository) CreateAttendance(_ context.Context, a *Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.attendances {
		if other.EmployeeID == a.EmployeeID && other.AttendanceDate.Equal(a.AttendanceDate) && !other.IsDeleted {
			return ErrAttendanceExists
		}
	}
	stamp(&a.ID, &a.CreatedAt, &a.Version)
	r.attendances[a.ID] = a
	return nil
}

func (r *mockRepository) GetAttendance(_ context.Context, id uuid.UUID) (*Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.attendances[id]
	if !ok || a.IsDeleted {
		return nil, ErrNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *mockRepository) FindAttendanceByDate(_ context.Context, employeeID uuid.UUID, date time.Time) (*Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.attendances {
		if a.EmployeeID == employeeID && a.AttendanceDate.Equal(date) && !a.IsDeleted {
			clone := *a
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *mockRepository) ListAttendance(_ context.Context, f AttendanceFilter) ([]Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Attendance
	for _, a := range r.attendances {
		if a.IsDeleted {
			continue
		}
		if f.EmployeeID != nil && a.EmployeeID != *f.EmployeeID {
			continue
		}
		if f.StartDate != nil && a.AttendanceDate.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && a.AttendanceDate.After(*f.EndDate) {
			continue
		}
		out = append(out, *a)
	}
	return paginate(out, f.Offset, f.Limit), nil
}

func (r *mockRepository) SaveAttendance(_ context.Context, a *Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.Version++
	clone := *a
	r.attendances[a.ID] = &clone
	return nil
}

func (r *mockRepository) CreateLeaveRequest(_ context.Context, l *LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stamp(&l.ID, &l.CreatedAt, &l.Version)
	r.leaves[l.ID] = l
	return nil
}

func (r *mockRepository) GetLeaveRequest(_ context.Context, id uuid.UUID) (*LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.leaves[id]
	if !ok || l.IsDeleted {
		return nil, ErrNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *mockRepository) ListLeaveRequests(_ context.Context, f LeaveFilter) ([]LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []LeaveRequest
	for _, l := range r.leaves {
		if l.IsDeleted {
			continue
		}
		if f.EmployeeID != nil && l.EmployeeID != *f.EmployeeID {
			continue
		}
		if f.Status != "" && l.Status != f.Status {
			continue
		}
		out = append(out, *l)
	}
	return paginate(out, f.Offset, f.Limit), nil
}

func (r *mockRepository) SaveLeaveRequest(_ context.Context, l *LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.Version++
	clone := *l
	r.leaves[l.ID] = &clone
	return nil
}
