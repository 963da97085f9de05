package hr

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultListLimit = 100

type DepartmentFilter struct {
	IsActive *bool
	Offset   int
	Limit    int
}

type EmployeeFilter struct {
	DepartmentID *uuid.UUID
	IsActive     *bool
	Offset       int
	Limit        int
}

type AttendanceFilter struct {
	EmployeeID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Offset     int
	Limit      int
}

type LeaveFilter struct {
	EmployeeID *uuid.UUID
	Status     string
	Offset     int
	Limit      int
}

// Repository persists the four HR tables. Every read filters soft-deleted
// rows; GetAnyDepartment is the unfiltered audit lookup mirroring the one on
// the user store.
type Repository interface {
	CreateDepartment(ctx context.Context, d *Department) error
	GetDepartment(ctx context.Context, id uuid.UUID) (*Department, error)
	GetAnyDepartment(ctx context.Context, id uuid.UUID) (*Department, error)
	ListDepartments(ctx context.Context, f DepartmentFilter) ([]Department, error)
	SaveDepartment(ctx context.Context, d *Department) error

	CreateEmployee(ctx context.Context, e *Employee) error
	GetEmployee(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindEmployeeByNumber(ctx context.Context, number string) (*Employee, error)
	ListEmployees(ctx context.Context, f EmployeeFilter) ([]Employee, error)
	SaveEmployee(ctx context.Context, e *Employee) error

	CreateAttendance(ctx context.Context, a *Attendance) error
	GetAttendance(ctx context.Context, id uuid.UUID) (*Attendance, error)
	FindAttendanceByDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*Attendance, error)
	ListAttendance(ctx context.Context, f AttendanceFilter) ([]Attendance, error)
	SaveAttendance(ctx context.Context, a *Attendance) error

	CreateLeaveRequest(ctx context.Context, l *LeaveRequest) error
	GetLeaveRequest(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	ListLeaveRequests(ctx context.Context, f LeaveFilter) ([]LeaveRequest, error)
	SaveLeaveRequest(ctx context.Context, l *LeaveRequest) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func notDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = FALSE")
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}

func (r *repository) CreateDepartment(ctx context.Context, d *Department) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) GetDepartment(ctx context.Context, id uuid.UUID) (*Department, error) {
	var d Department
	err := notDeleted(r.db.WithContext(ctx)).Where("id = ?", id).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *repository) GetAnyDepartment(ctx context.Context, id uuid.UUID) (*Department, error) {
	var d Department
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *repository) ListDepartments(ctx context.Context, f DepartmentFilter) ([]Department, error) {
	q := notDeleted(r.db.WithContext(ctx).Model(&Department{}))
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}

	var out []Department
	err := q.Offset(f.Offset).Limit(limitOrDefault(f.Limit)).Find(&out).Error
	return out, err
}

func (r *repository) SaveDepartment(ctx context.Context, d *Department) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *repository) CreateEmployee(ctx context.Context, e *Employee) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmployeeNumberTaken
		}
		return err
	}
	return nil
}

func (r *repository) GetEmployee(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var e Employee
	err := notDeleted(r.db.WithContext(ctx)).Where("id = ?", id).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindEmployeeByNumber(ctx context.Context, number string) (*Employee, error) {
	var e Employee
	err := notDeleted(r.db.WithContext(ctx)).Where("employee_number = ?", number).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *repository) ListEmployees(ctx context.Context, f EmployeeFilter) ([]Employee, error) {
	q := notDeleted(r.db.WithContext(ctx).Model(&Employee{}))
	if f.DepartmentID != nil {
		q = q.Where("department_id = ?", *f.DepartmentID)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}

	var out []Employee
	err := q.Offset(f.Offset).Limit(limitOrDefault(f.Limit)).Find(&out).Error
	return out, err
}

func (r *repository) SaveEmployee(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) CreateAttendance(ctx context.Context, a *Attendance) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAttendanceExists
		}
		return err
	}
	return nil
}

func (r *repository) GetAttendance(ctx context.Context, id uuid.UUID) (*Attendance, error) {
	var a Attendance
	err := notDeleted(r.db.WithContext(ctx)).Where("id = ?", id).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindAttendanceByDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*Attendance, error) {
	var a Attendance
	err := notDeleted(r.db.WithContext(ctx)).
		Where("employee_id = ? AND attendance_date = ?", employeeID, date).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *repository) ListAttendance(ctx context.Context, f AttendanceFilter) ([]Attendance, error) {
	q := notDeleted(r.db.WithContext(ctx).Model(&Attendance{}))
	if f.EmployeeID != nil {
		q = q.Where("employee_id = ?", *f.EmployeeID)
	}
	if f.StartDate != nil {
		q = q.Where("attendance_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("attendance_date <= ?", *f.EndDate)
	}

	var out []Attendance
	err := q.Order("attendance_date DESC").
		Offset(f.Offset).Limit(limitOrDefault(f.Limit)).
		Find(&out).Error
	return out, err
}

func (r *repository) SaveAttendance(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) CreateLeaveRequest(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) GetLeaveRequest(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	var l LeaveRequest
	err := notDeleted(r.db.WithContext(ctx)).Where("id = ?", id).First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *repository) ListLeaveRequests(ctx context.Context, f LeaveFilter) ([]LeaveRequest, error) {
	q := notDeleted(r.db.WithContext(ctx).Model(&LeaveRequest{}))
	if f.EmployeeID != nil {
		q = q.Where("employee_id = ?", *f.EmployeeID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var out []LeaveRequest
	err := q.Order("created_at DESC").
		Offset(f.Offset).Limit(limitOrDefault(f.Limit)).
		Find(&out).Error
	return out, err
}

func (r *repository) SaveLeaveRequest(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Save(l).Error
}
