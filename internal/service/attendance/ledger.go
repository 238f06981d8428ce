package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
)

// DayLedger answers "was the employee present on date D". A day is present when
// exactly one row exists for it; absence is the lack of a row.
type DayLedger struct {
	repo attendance.DayRecordRepository
}

func NewDayLedger(repo attendance.DayRecordRepository) *DayLedger {
	return &DayLedger{repo: repo}
}

// RecordPresence leaves exactly one present row for (employeeID, date).
func (l *DayLedger) RecordPresence(ctx context.Context, employeeID int64, date time.Time) error {
	date = calendar.Truncate(date)

	if err := l.repo.DeleteByDate(ctx, employeeID, date); err != nil {
		return err
	}

	_, err := l.repo.Create(ctx, attendance.DayRecord{
		EmployeeID: employeeID,
		Date:       date,
		Status:     attendance.DayStatusPresent,
	})
	return err
}

// PresentDays counts present rows in the inclusive range.
func (l *DayLedger) PresentDays(ctx context.Context, employeeID int64, start, end time.Time) (int, error) {
	return l.repo.CountInRange(ctx, employeeID, calendar.Truncate(start), calendar.Truncate(end))
}

func (l *DayLedger) IsPresent(ctx context.Context, employeeID int64, date time.Time) (bool, error) {
	return l.repo.Exists(ctx, employeeID, calendar.Truncate(date))
}

// ClearRange removes every present row in the inclusive range.
func (l *DayLedger) ClearRange(ctx context.Context, employeeID int64, start, end time.Time) error {
	if _, err := l.repo.DeleteRange(ctx, employeeID, calendar.Truncate(start), calendar.Truncate(end)); err != nil {
		return fmt.Errorf("clear %s..%s: %w", start.Format(calendar.DateLayout), end.Format(calendar.DateLayout), err)
	}
	return nil
}

// PresentDates lists present dates in the inclusive range, ascending.
func (l *DayLedger) PresentDates(ctx context.Context, employeeID int64, start, end time.Time) ([]time.Time, error) {
	return l.repo.ListDates(ctx, employeeID, calendar.Truncate(start), calendar.Truncate(end))
}
