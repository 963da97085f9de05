package hr

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/peopleops/corehr/internal/apierror"
	"github.com/peopleops/corehr/internal/auth"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

// Register attaches the HR routes to an already-authenticated router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	dept := rg.Group("/departments")
	dept.GET("", h.ListDepartments)
	dept.POST("", h.CreateDepartment)
	dept.GET("/:id", h.GetDepartment)
	dept.PATCH("/:id", h.UpdateDepartment)
	dept.DELETE("/:id", h.DeleteDepartment)

	emp := rg.Group("/employees")
	emp.GET("", h.ListEmployees)
	emp.POST("", h.CreateEmployee)
	emp.GET("/:id", h.GetEmployee)
	emp.PATCH("/:id", h.UpdateEmployee)
	emp.DELETE("/:id", h.DeleteEmployee)

	att := rg.Group("/attendance")
	att.GET("", h.ListAttendance)
	att.POST("", h.CreateAttendance)
	att.GET("/:id", h.GetAttendance)
	att.PATCH("/:id", h.UpdateAttendance)

	leave := rg.Group("/leave-requests")
	leave.GET("", h.ListLeaveRequests)
	leave.POST("", h.CreateLeaveRequest)
	leave.GET("/:id", h.GetLeaveRequest)
	leave.PATCH("/:id", h.UpdateLeaveRequest)
}

type CreateDepartmentRequest struct {
	Name        string     `json:"name" binding:"required,max=100"`
	Code        string     `json:"code" binding:"max=20"`
	ParentID    *uuid.UUID `json:"parent_id"`
	ManagerID   *uuid.UUID `json:"manager_id"`
	Description string     `json:"description"`
}

type UpdateDepartmentRequest struct {
	Name        *string    `json:"name"`
	Code        *string    `json:"code"`
	ParentID    *uuid.UUID `json:"parent_id"`
	ManagerID   *uuid.UUID `json:"manager_id"`
	Description *string    `json:"description"`
	IsActive    *bool      `json:"is_active"`
}

func (h *Handler) ListDepartments(c *gin.Context) {
	f := DepartmentFilter{
		IsActive: boolQuery(c, "is_active"),
		Offset:   intQuery(c, "skip", 0),
		Limit:    intQuery(c, "limit", defaultListLimit),
	}

	out, err := h.service.ListDepartments(c.Request.Context(), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateDepartment(c *gin.Context) {
	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid request body"))
		return
	}

	dept, err := h.service.CreateDepartment(c.Request.Context(), &Department{
		Name:        req.Name,
		Code:        req.Code,
		ParentID:    req.ParentID,
		ManagerID:   req.ManagerID,
		Description: req.Description,
		IsActive:    true,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dept)
}

func (h *Handler) GetDepartment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	dept, err := h.service.GetDepartment(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dept)
}

func (h *Handler) UpdateDepartment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid request body"))
		return
	}

	dept, err := h.service.UpdateDepartment(c.Request.Context(), id, DepartmentPatch{
		Name:        req.Name,
		Code:        req.Code,
		ParentID:    req.ParentID,
		ManagerID:   req.ManagerID,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dept)
}

func (h *Handler) DeleteDepartment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteDepartment(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type CreateEmployeeRequest struct {
	UserID         uuid.UUID  `json:"user_id" binding:"required"`
	EmployeeNumber string     `json:"employee_number" binding:"required,max=50"`
	DepartmentID   *uuid.UUID `json:"department_id"`
	JobTitle       string     `json:"job_title"`
	EmploymentType string     `json:"employment_type"`
	JoiningDate    string     `json:"joining_date" binding:"required,datetime=2006-01-02"`
	ManagerID      *uuid.UUID `json:"manager_id"`

	CurrentSalary *decimal.Decimal `json:"current_salary"`
	Currency      string           `json:"currency"`

	AnnualLeaveBalance *decimal.Decimal `json:"annual_leave_balance"`
	SickLeaveBalance   *decimal.Decimal `json:"sick_leave_balance"`
	CasualLeaveBalance *decimal.Decimal `json:"casual_leave_balance"`

	EmergencyContactName     string `json:"emergency_contact_name"`
	EmergencyContactPhone    string `json:"emergency_contact_phone"`
	EmergencyContactRelation string `json:"emergency_contact_relation"`

	CurrentAddress   string `json:"current_address"`
	PermanentAddress string `json:"permanent_address"`
}

type UpdateEmployeeRequest struct {
	DepartmentID     *uuid.UUID `json:"department_id"`
	JobTitle         *string    `json:"job_title"`
	EmploymentType   *string    `json:"employment_type"`
	ConfirmationDate *string    `json:"confirmation_date" binding:"omitempty,datetime=2006-01-02"`
	ResignationDate  *string    `json:"resignation_date" binding:"omitempty,datetime=2006-01-02"`
	LastWorkingDate  *string    `json:"last_working_date" binding:"omitempty,datetime=2006-01-02"`
	ManagerID        *uuid.UUID `json:"manager_id"`

	CurrentSalary *decimal.Decimal `json:"current_salary"`
	Currency      *string          `json:"currency"`

	AnnualLeaveBalance *decimal.Decimal `json:"annual_leave_balance"`
	SickLeaveBalance   *decimal.Decimal `json:"sick_leave_balance"`
	CasualLeaveBalance *decimal.Decimal `json:"casual_leave_balance"`

	EmergencyContactName     *string `json:"emergency_contact_name"`
	EmergencyContactPhone    *string `json:"emergency_contact_phone"`
	EmergencyContactRelation *string `json:"emergency_contact_relation"`

	CurrentAddress   *string `json:"current_address"`
	PermanentAddress *string `json:"permanent_address"`

	IsActive *bool `json:"is_active"`
}

func (h *Handler) ListEmployees(c *gin.Context) {
	f := EmployeeFilter{
		DepartmentID: uuidQuery(c, "department_id"),
		IsActive:     boolQuery(c, "is_active"),
		Offset:       intQuery(c, "skip", 0),
		Limit:        intQuery(c, "limit", defaultListLimit),
	}

	out, err := h.service.ListEmployees(c.Request.Context(), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateEmployee(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid request body"))
		return
	}

	joining, _ := time.Parse(dateLayout, req.JoiningDate)

	var balances [3]decimal.Decimal
	for i, d := range []*decimal.Decimal{req.AnnualLeaveBalance, req.SickLeaveBalance, req.CasualLeaveBalance} {
		if d != nil {
			balances[i] = *d
		}
	}

	emp, err := h.service.CreateEmployee(c.Request.Context(), &Employee{
		UserID:                   req.UserID,
		EmployeeNumber:           req.EmployeeNumber,
		DepartmentID:             req.DepartmentID,
		JobTitle:                 req.JobTitle,
		EmploymentType:           EmploymentType(req.EmploymentType),
		JoiningDate:              joining,
		ManagerID:                req.ManagerID,
		CurrentSalary:            req.CurrentSalary,
		Currency:                 req.Currency,
		AnnualLeaveBalance:       balances[0],
		SickLeaveBalance:         balances[1],
		CasualLeaveBalance:       balances[2],
		EmergencyContactName:     req.EmergencyContactName,
		EmergencyContactPhone:    req.EmergencyContactPhone,
		EmergencyContactRelation: req.EmergencyContactRelation,
		CurrentAddress:           req.CurrentAddress,
		PermanentAddress:         req.PermanentAddress,
		IsActive:                 true,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, emp)
}

func (h *Handler) GetEmployee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	emp, err := h.service.GetEmployee(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

func (h *Handler) UpdateEmployee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid request body"))
		return
	}

	patch := EmployeePatch{
		DepartmentID:             req.DepartmentID,
		JobTitle:                 req.JobTitle,
		ConfirmationDate:         parseOptionalDate(req.ConfirmationDate),
		ResignationDate:          parseOptionalDate(req.ResignationDate),
		LastWorkingDate:          parseOptionalDate(req.LastWorkingDate),
		ManagerID:                req.ManagerID,
		CurrentSalary:            req.CurrentSalary,
		Currency:                 req.Currency,
		AnnualLeaveBalance:       req.AnnualLeaveBalance,
		SickLeaveBalance:         req.SickLeaveBalance,
		CasualLeaveBalance:       req.CasualLeaveBalance,
		EmergencyContactName:     req.EmergencyContactName,
		EmergencyContactPhone:    req.EmergencyContactPhone,
		EmergencyContactRelation: req.EmergencyContactRelation,
		CurrentAddress:           req.CurrentAddress,
		PermanentAddress:         req.PermanentAddress,
		IsActive:                 req.IsActive,
	}
	if req.EmploymentType != nil {
		et := EmploymentType(*req.EmploymentType)
		patch.EmploymentType = &et
	}

	emp, err := h.service.UpdateEmployee(c.Request.Context(), id, patch)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

func (h *Handler) DeleteEmployee(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteEmployee(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type CreateAttendanceRequest struct {
	EmployeeID     uuid.UUID  `json:"employee_id" binding:"required"`
	AttendanceDate string     `json:"attendance_date" binding:"required,datetime=2006-01-02"`
	CheckIn        *time.Time `json:"check_in"`
	CheckOut       *time.Time `json:"check_out"`

	WorkedHours   *decimal.Decimal `json:"worked_hours"`
	OvertimeHours *decimal.Decimal `json:"overtime_hours"`

	IsPresent *bool  `json:"is_present"`
	IsLate    *bool  `json:"is_late"`
	IsHalfDay *bool  `json:"is_half_day"`
	Notes     string `json:"notes"`
}

type UpdateAttendanceRequest struct {
	CheckIn  *time.Time `json:"check_in"`
	CheckOut *time.Time `json:"check_out"`

	WorkedHours   *decimal.Decimal `json:"worked_hours"`
	OvertimeHours *decimal.Decimal `json:"overtime_hours"`

	IsPresent *bool   `json:"is_present"`
	IsLate    *bool   `json:"is_late"`
	IsHalfDay *bool   `json:"is_half_day"`
	Notes     *string `json:"notes"`
}

func (h *Handler) ListAttendance(c *gin.Context) {
	f := AttendanceFilter{
		EmployeeID: uuidQuery(c, "employee_id"),
		StartDate:  dateQuery(c, "start_date"),
		EndDate:    dateQuery(c, "end_date"),
		Offset:     intQuery(c, "skip", 0),
		Limit:      intQuery(c, "limit", defaultListLimit),
	}

	out, err := h.service.ListAttendance(c.Request.Context(), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateAttendance(c *gin.Context) {
	var req CreateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid request body"))
		return
	}

	date, _ := time.Parse(dateLayout, req.AttendanceDate)

	att := &Attendance{
		EmployeeID:     req.EmployeeID,
		AttendanceDate: date,
		CheckIn:        req.CheckIn,
		CheckOut:       req.CheckOut,
		WorkedHours:    req.WorkedHours,
		IsPresent:      true,
		Notes:          req.Notes,
	}
	if req.OvertimeHours != nil {
		att.OvertimeHours = *req.OvertimeHours
	}
	if req.IsPresent != nil {
		att.IsPresent = *req.IsPresent
	}
	if req.IsLate != nil {
		att.IsLate = *req.IsLate
	}
	if req.IsHalfDay != nil {
		att.IsHalfDay = *req.IsHalfDay
	}

	created, err := h.service.CreateAttendance(c.Request.Context(), att)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetAttendance(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	att, err := h.service.GetAttendance(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, att)
}

func (h *Handler) UpdateAttendance(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid request body"))
		return
	}

	att, err := h.service.UpdateAttendance(c.Request.Context(), id, AttendancePatch{
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		WorkedHours:   req.WorkedHours,
		OvertimeHours: req.OvertimeHours,
		IsPresent:     req.IsPresent,
		IsLate:        req.IsLate,
		IsHalfDay:     req.IsHalfDay,
		Notes:         req.Notes,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, att)
}

type CreateLeaveRequestRequest struct {
	EmployeeID uuid.UUID       `json:"employee_id" binding:"required"`
	LeaveType  string          `json:"leave_type" binding:"required,max=50"`
	StartDate  string          `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate    string          `json:"end_date" binding:"required,datetime=2006-01-02"`
	DaysCount  decimal.Decimal `json:"days_count" binding:"required"`
	Reason     string          `json:"reason"`
}

type UpdateLeaveRequestRequest struct {
	Status          *string `json:"status" binding:"omitempty,oneof=pending approved rejected"`
	RejectionReason *string `json:"rejection_reason"`
}

func (h *Handler) ListLeaveRequests(c *gin.Context) {
	f := LeaveFilter{
		EmployeeID: uuidQuery(c, "employee_id"),
		Status:     c.Query("status"),
		Offset:     intQuery(c, "skip", 0),
		Limit:      intQuery(c, "limit", defaultListLimit),
	}

	out, err := h.service.ListLeaveRequests(c.Request.Context(), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateLeaveRequest(c *gin.Context) {
	var req CreateLeaveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid request body"))
		return
	}

	start, _ := time.Parse(dateLayout, req.StartDate)
	end, _ := time.Parse(dateLayout, req.EndDate)

	leave, err := h.service.CreateLeaveRequest(c.Request.Context(), &LeaveRequest{
		EmployeeID: req.EmployeeID,
		LeaveType:  req.LeaveType,
		StartDate:  start,
		EndDate:    end,
		DaysCount:  req.DaysCount,
		Reason:     req.Reason,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, leave)
}

func (h *Handler) GetLeaveRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	leave, err := h.service.GetLeaveRequest(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, leave)
}

func (h *Handler) UpdateLeaveRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user := auth.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("authentication required"))
		return
	}

	var req UpdateLeaveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid request body"))
		return
	}

	leave, err := h.service.UpdateLeaveRequest(c.Request.Context(), id, LeaveRequestPatch{
		Status:          req.Status,
		RejectionReason: req.RejectionReason,
	}, user.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, leave)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New("record not found"))
	case errors.Is(err, ErrEmployeeNumberTaken), errors.Is(err, ErrAttendanceExists):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, ErrInvalidDateRange), errors.Is(err, ErrInvalidDaysCount):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	default:
		h.log.Error("hr request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierror.New("internal error"))
	}
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return uuid.Nil, false
	}
	return id, true
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}

func boolQuery(c *gin.Context, key string) *bool {
	v, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

func intQuery(c *gin.Context, key string, fallback int) int {
	v, ok := c.GetQuery(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func uuidQuery(c *gin.Context, key string) *uuid.UUID {
	v, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

func dateQuery(c *gin.Context, key string) *time.Time {
	v, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil
	}
	return &t
}
