package hr

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service exposes the HR record operations. Each one maps a request onto a
// single-table query or mutation guarded by existence/uniqueness checks; all
// state beyond that lives in the store.
type Service struct {
	log        *zap.Logger
	repository Repository
	now        func() time.Time
}

func NewService(log *zap.Logger, repo Repository) *Service {
	return &Service{
		log:        log,
		repository: repo,
		now:        time.Now,
	}
}

// Patch structs carry optional fields applied one by one: a nil field means
// "leave as is". No reflection.

type DepartmentPatch struct {
	Name        *string
	Code        *string
	ParentID    *uuid.UUID
	ManagerID   *uuid.UUID
	Description *string
	IsActive    *bool
}

type EmployeePatch struct {
	DepartmentID     *uuid.UUID
	JobTitle         *string
	EmploymentType   *EmploymentType
	ConfirmationDate *time.Time
	ResignationDate  *time.Time
	LastWorkingDate  *time.Time
	ManagerID        *uuid.UUID
	CurrentSalary    *decimal.Decimal
	Currency         *string

	AnnualLeaveBalance *decimal.Decimal
	SickLeaveBalance   *decimal.Decimal
	CasualLeaveBalance *decimal.Decimal

	EmergencyContactName     *string
	EmergencyContactPhone    *string
	EmergencyContactRelation *string

	CurrentAddress   *string
	PermanentAddress *string

	IsActive *bool
}

type AttendancePatch struct {
	CheckIn       *time.Time
	CheckOut      *time.Time
	WorkedHours   *decimal.Decimal
	OvertimeHours *decimal.Decimal
	IsPresent     *bool
	IsLate        *bool
	IsHalfDay     *bool
	Notes         *string
}

type LeaveRequestPatch struct {
	Status          *string
	RejectionReason *string
}

func (s *Service) ListDepartments(ctx context.Context, f DepartmentFilter) ([]Department, error) {
	return s.repository.ListDepartments(ctx, f)
}

func (s *Service) CreateDepartment(ctx context.Context, d *Department) (*Department, error) {
	if err := s.repository.CreateDepartment(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) GetDepartment(ctx context.Context, id uuid.UUID) (*Department, error) {
	return s.repository.GetDepartment(ctx, id)
}

func (s *Service) UpdateDepartment(ctx context.Context, id uuid.UUID, patch DepartmentPatch) (*Department, error) {
	d, err := s.repository.GetDepartment(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.Code != nil {
		d.Code = *patch.Code
	}
	if patch.ParentID != nil {
		d.ParentID = patch.ParentID
	}
	if patch.ManagerID != nil {
		d.ManagerID = patch.ManagerID
	}
	if patch.Description != nil {
		d.Description = *patch.Description
	}
	if patch.IsActive != nil {
		d.IsActive = *patch.IsActive
	}

	if err := s.repository.SaveDepartment(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// DeleteDepartment soft-deletes the record. Employees assigned to the
// department are left untouched.
func (s *Service) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	d, err := s.repository.GetDepartment(ctx, id)
	if err != nil {
		return err
	}

	d.SoftDelete(s.now())
	return s.repository.SaveDepartment(ctx, d)
}

func (s *Service) ListEmployees(ctx context.Context, f EmployeeFilter) ([]Employee, error) {
	return s.repository.ListEmployees(ctx, f)
}

func (s *Service) CreateEmployee(ctx context.Context, e *Employee) (*Employee, error) {
	if _, err := s.repository.FindEmployeeByNumber(ctx, e.EmployeeNumber); err == nil {
		return nil, ErrEmployeeNumberTaken
	} else if err != ErrNotFound {
		return nil, err
	}

	if e.EmploymentType == "" {
		e.EmploymentType = EmploymentFullTime
	}
	if e.Currency == "" {
		e.Currency = "INR"
	}

	if err := s.repository.CreateEmployee(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) GetEmployee(ctx context.Context, id uuid.UUID) (*Employee, error) {
	return s.repository.GetEmployee(ctx, id)
}

func (s *Service) UpdateEmployee(ctx context.Context, id uuid.UUID, patch EmployeePatch) (*Employee, error) {
	e, err := s.repository.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.DepartmentID != nil {
		e.DepartmentID = patch.DepartmentID
	}
	if patch.JobTitle != nil {
		e.JobTitle = *patch.JobTitle
	}
	if patch.EmploymentType != nil {
		e.EmploymentType = *patch.EmploymentType
	}
	if patch.ConfirmationDate != nil {
		e.ConfirmationDate = patch.ConfirmationDate
	}
	if patch.ResignationDate != nil {
		e.ResignationDate = patch.ResignationDate
	}
	if patch.LastWorkingDate != nil {
		e.LastWorkingDate = patch.LastWorkingDate
	}
	if patch.ManagerID != nil {
		e.ManagerID = patch.ManagerID
	}
	if patch.CurrentSalary != nil {
		e.CurrentSalary = patch.CurrentSalary
	}
	if patch.Currency != nil {
		e.Currency = *patch.Currency
	}
	if patch.AnnualLeaveBalance != nil {
		e.AnnualLeaveBalance = *patch.AnnualLeaveBalance
	}
	if patch.SickLeaveBalance != nil {
		e.SickLeaveBalance = *patch.SickLeaveBalance
	}
	if patch.CasualLeaveBalance != nil {
		e.CasualLeaveBalance = *patch.CasualLeaveBalance
	}
	if patch.EmergencyContactName != nil {
		e.EmergencyContactName = *patch.EmergencyContactName
	}
	if patch.EmergencyContactPhone != nil {
		e.EmergencyContactPhone = *patch.EmergencyContactPhone
	}
	if patch.EmergencyContactRelation != nil {
		e.EmergencyContactRelation = *patch.EmergencyContactRelation
	}
	if patch.CurrentAddress != nil {
		e.CurrentAddress = *patch.CurrentAddress
	}
	if patch.PermanentAddress != nil {
		e.PermanentAddress = *patch.PermanentAddress
	}
	if patch.IsActive != nil {
		e.IsActive = *patch.IsActive
	}

	if err := s.repository.SaveEmployee(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	e, err := s.repository.GetEmployee(ctx, id)
	if err != nil {
		return err
	}

	e.SoftDelete(s.now())
	return s.repository.SaveEmployee(ctx, e)
}

func (s *Service) ListAttendance(ctx context.Context, f AttendanceFilter) ([]Attendance, error) {
	return s.repository.ListAttendance(ctx, f)
}

func (s *Service) CreateAttendance(ctx context.Context, a *Attendance) (*Attendance, error) {
	if _, err := s.repository.FindAttendanceByDate(ctx, a.EmployeeID, a.AttendanceDate); err == nil {
		return nil, ErrAttendanceExists
	} else if err != ErrNotFound {
		return nil, err
	}

	if err := s.repository.CreateAttendance(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) GetAttendance(ctx context.Context, id uuid.UUID) (*Attendance, error) {
	return s.repository.GetAttendance(ctx, id)
}

func (s *Service) UpdateAttendance(ctx context.Context, id uuid.UUID, patch AttendancePatch) (*Attendance, error) {
	a, err := s.repository.GetAttendance(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.CheckIn != nil {
		a.CheckIn = patch.CheckIn
	}
	if patch.CheckOut != nil {
		a.CheckOut = patch.CheckOut
	}
	if patch.WorkedHours != nil {
		a.WorkedHours = patch.WorkedHours
	}
	if patch.OvertimeHours != nil {
		a.OvertimeHours = *patch.OvertimeHours
	}
	if patch.IsPresent != nil {
		a.IsPresent = *patch.IsPresent
	}
	if patch.IsLate != nil {
		a.IsLate = *patch.IsLate
	}
	if patch.IsHalfDay != nil {
		a.IsHalfDay = *patch.IsHalfDay
	}
	if patch.Notes != nil {
		a.Notes = *patch.Notes
	}

	if err := s.repository.SaveAttendance(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) ListLeaveRequests(ctx context.Context, f LeaveFilter) ([]LeaveRequest, error) {
	return s.repository.ListLeaveRequests(ctx, f)
}

func (s *Service) CreateLeaveRequest(ctx context.Context, l *LeaveRequest) (*LeaveRequest, error) {
	if l.EndDate.Before(l.StartDate) {
		return nil, ErrInvalidDateRange
	}
	if !l.DaysCount.IsPositive() {
		return nil, ErrInvalidDaysCount
	}

	if l.Status == "" {
		l.Status = LeaveStatusPending
	}

	if err := s.repository.CreateLeaveRequest(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) GetLeaveRequest(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	return s.repository.GetLeaveRequest(ctx, id)
}

// UpdateLeaveRequest applies an approve/reject decision. A status change is
// stamped with the deciding user and the decision time.
func (s *Service) UpdateLeaveRequest(ctx context.Context, id uuid.UUID, patch LeaveRequestPatch, decidedBy uuid.UUID) (*LeaveRequest, error) {
	l, err := s.repository.GetLeaveRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil {
		now := s.now()
		l.Status = *patch.Status
		l.ApprovedBy = &decidedBy
		l.ApprovedAt = &now
	}
	if patch.RejectionReason != nil {
		l.RejectionReason = *patch.RejectionReason
	}

	if err := s.repository.SaveLeaveRequest(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}
