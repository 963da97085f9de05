package hr

import "errors"

var (
	ErrNotFound            = errors.New("record not found")
	ErrEmployeeNumberTaken = errors.New("employee number already exists")
	ErrAttendanceExists    = errors.New("attendance record for this date already exists")
	ErrInvalidDateRange    = errors.New("end date must not precede start date")
	ErrInvalidDaysCount    = errors.New("days count must be positive")
)
