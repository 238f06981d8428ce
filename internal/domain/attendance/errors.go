package attendance

import "errors"

// Attendance domain errors
var (
	ErrMonthlyRecordNotFound  = errors.New("attendance not found")
	ErrMonthlyRecordExists    = errors.New("attendance for this month already exists")
	ErrConcurrentModification = errors.New("attendance for this month is being modified, try again")
	ErrInvalidWeekNumber      = errors.New("Invalid week number")
)
