package hr

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/peopleops/corehr/internal/model"
)

type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full_time"
	EmploymentPartTime EmploymentType = "part_time"
	EmploymentContract EmploymentType = "contract"
	EmploymentIntern   EmploymentType = "intern"
)

const (
	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"
)

// Department is an organizational unit; parent and manager links are
// optional and not cascaded on soft delete.
type Department struct {
	model.Entity

	Name        string     `gorm:"size:100;not null;index" json:"name"`
	Code        string     `gorm:"size:20" json:"code,omitempty"`
	ParentID    *uuid.UUID `gorm:"type:uuid" json:"parent_id,omitempty"`
	ManagerID   *uuid.UUID `gorm:"type:uuid" json:"manager_id,omitempty"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
}

func (Department) TableName() string {
	return "departments"
}

// Employee is the HR record linked one-to-one to a user account.
type Employee struct {
	model.Entity

	UserID         uuid.UUID      `gorm:"type:uuid;not null" json:"user_id"`
	EmployeeNumber string         `gorm:"size:50;not null;index" json:"employee_number"`
	DepartmentID   *uuid.UUID     `gorm:"type:uuid;index" json:"department_id,omitempty"`
	JobTitle       string         `gorm:"size:100" json:"job_title,omitempty"`
	EmploymentType EmploymentType `gorm:"size:20;default:full_time" json:"employment_type"`

	JoiningDate      time.Time  `gorm:"type:date;not null" json:"joining_date"`
	ConfirmationDate *time.Time `gorm:"type:date" json:"confirmation_date,omitempty"`
	ResignationDate  *time.Time `gorm:"type:date" json:"resignation_date,omitempty"`
	LastWorkingDate  *time.Time `gorm:"type:date" json:"last_working_date,omitempty"`

	ManagerID *uuid.UUID `gorm:"type:uuid" json:"manager_id,omitempty"`

	CurrentSalary *decimal.Decimal `gorm:"type:numeric(12,2)" json:"current_salary,omitempty"`
	Currency      string           `gorm:"size:3;default:INR" json:"currency"`

	AnnualLeaveBalance decimal.Decimal `gorm:"type:numeric(5,2);default:0" json:"annual_leave_balance"`
	SickLeaveBalance   decimal.Decimal `gorm:"type:numeric(5,2);default:0" json:"sick_leave_balance"`
	CasualLeaveBalance decimal.Decimal `gorm:"type:numeric(5,2);default:0" json:"casual_leave_balance"`

	EmergencyContactName     string `gorm:"size:100" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone    string `gorm:"size:20" json:"emergency_contact_phone,omitempty"`
	EmergencyContactRelation string `gorm:"size:50" json:"emergency_contact_relation,omitempty"`

	CurrentAddress   string `gorm:"type:text" json:"current_address,omitempty"`
	PermanentAddress string `gorm:"type:text" json:"permanent_address,omitempty"`

	IsActive bool `gorm:"not null;default:true;index" json:"is_active"`
}

func (Employee) TableName() string {
	return "employees"
}

// Attendance is one day's record per employee; the (employee, date) pair is
// unique among non-deleted rows.
type Attendance struct {
	model.Entity

	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;index" json:"employee_id"`
	AttendanceDate time.Time `gorm:"type:date;not null;index" json:"attendance_date"`

	CheckIn  *time.Time `json:"check_in,omitempty"`
	CheckOut *time.Time `json:"check_out,omitempty"`

	WorkedHours   *decimal.Decimal `gorm:"type:numeric(5,2)" json:"worked_hours,omitempty"`
	OvertimeHours decimal.Decimal  `gorm:"type:numeric(5,2);default:0" json:"overtime_hours"`

	IsPresent bool `gorm:"default:true" json:"is_present"`
	IsLate    bool `gorm:"default:false" json:"is_late"`
	IsHalfDay bool `gorm:"default:false" json:"is_half_day"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`
}

func (Attendance) TableName() string {
	return "attendances"
}

type LeaveRequest struct {
	model.Entity

	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index" json:"employee_id"`
	LeaveType  string    `gorm:"size:50;not null" json:"leave_type"`

	StartDate time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time       `gorm:"type:date;not null" json:"end_date"`
	DaysCount decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"days_count"`

	Reason string `gorm:"type:text" json:"reason,omitempty"`
	Status string `gorm:"size:20;default:pending;index" json:"status"`

	ApprovedBy      *uuid.UUID `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason,omitempty"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
