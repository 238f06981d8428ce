package attendance

import (
	"context"
)

// AttendanceService defines business logic for monthly, weekly and daily attendance
type AttendanceService interface {
	// Submit stores the employee's own monthly figures and the selected present dates.
	// The submitted workedDays is kept as given.
	Submit(ctx context.Context, req SubmitAttendanceRequest) (SubmitAttendanceResponse, error)

	// ListWeeks recomputes every week of the month from the day ledger, then reconciles the monthly record
	ListWeeks(ctx context.Context, req EmployeeMonthRequest) ([]WeeklySummaryResponse, error)

	// CorrectWeek replaces the present days of one week, then reconciles the monthly record
	CorrectWeek(ctx context.Context, req CorrectWeekRequest) error

	ListByEmployee(ctx context.Context, employeeID int64) ([]MonthlyRecordResponse, error)
	ListAll(ctx context.Context) ([]MonthlyRecordResponse, error)
	ListEmployeesAttendance(ctx context.Context) ([]EmployeeAttendanceResponse, error)
	ListPresentDates(ctx context.Context, req EmployeeMonthRequest) (PresentDatesResponse, error)

	// UpdateRecord applies an admin partial update
	UpdateRecord(ctx context.Context, req UpdateAttendanceRequest) (MonthlyRecordResponse, error)

	DeleteRecord(ctx context.Context, id int64) error

	// RefreshWeeklySnapshots re-derives the snapshots of every record of the period without reconciling.
	// It returns the number of records refreshed.
	RefreshWeeklySnapshots(ctx context.Context, period Period) (int, error)
}

// EventPublisher announces committed attendance changes.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// Locker serialises writers of one employee's month.
type Locker interface {
	// Acquire fails with lock.ErrLocked when another holder has the key
	Acquire(ctx context.Context, key string) (release func(), err error)
}
