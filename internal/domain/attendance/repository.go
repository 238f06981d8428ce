package attendance

import (
	"context"
	"time"
)

// MonthlyRecordRepository persists monthly summaries.
type MonthlyRecordRepository interface {
	// Create inserts a record; a second record for the same employee and period fails with ErrMonthlyRecordExists
	Create(ctx context.Context, record MonthlyRecord) (MonthlyRecord, error)

	// Update overwrites the day counts and availability of an existing record
	Update(ctx context.Context, record MonthlyRecord) (MonthlyRecord, error)

	GetByID(ctx context.Context, id int64) (MonthlyRecord, error)

	// GetByEmployeeAndPeriod returns ErrMonthlyRecordNotFound when the employee has no record for the period
	GetByEmployeeAndPeriod(ctx context.Context, employeeID int64, month, year int) (MonthlyRecord, error)

	ListByEmployee(ctx context.Context, employeeID int64) ([]MonthlyRecord, error)
	ListAll(ctx context.Context) ([]MonthlyRecord, error)
	ListByPeriod(ctx context.Context, month, year int) ([]MonthlyRecord, error)

	// ListWithEmployees joins every record with its employee; a nil period lists all periods
	ListWithEmployees(ctx context.Context, period *Period) ([]EmployeeAttendance, error)

	// Delete removes the record and, by cascade, its weekly snapshots
	Delete(ctx context.Context, id int64) error
}

// DayRecordRepository is the storage of the day ledger.
type DayRecordRepository interface {
	Create(ctx context.Context, day DayRecord) (DayRecord, error)

	// DeleteByDate removes the row for (employeeID, date) if there is one
	DeleteByDate(ctx context.Context, employeeID int64, date time.Time) error

	// DeleteRange removes every row in the inclusive range and returns how many were removed
	DeleteRange(ctx context.Context, employeeID int64, start, end time.Time) (int64, error)

	CountInRange(ctx context.Context, employeeID int64, start, end time.Time) (int, error)
	Exists(ctx context.Context, employeeID int64, date time.Time) (bool, error)
	ListDates(ctx context.Context, employeeID int64, start, end time.Time) ([]time.Time, error)
}

// WeeklySnapshotRepository persists the weekly cache.
type WeeklySnapshotRepository interface {
	// Upsert inserts or overwrites the snapshot keyed by (monthly record, year, month, week number)
	Upsert(ctx context.Context, snapshot WeeklySnapshot) (WeeklySnapshot, error)

	ListByMonthlyRecord(ctx context.Context, monthlyRecordID int64) ([]WeeklySnapshot, error)
	ListByPeriod(ctx context.Context, month, year int) ([]WeeklySnapshot, error)
}

// Period is a calendar month.
type Period struct {
	Month int
	Year  int
}
