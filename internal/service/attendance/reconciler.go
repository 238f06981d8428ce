package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
)

// MonthlyReconciler rewrites a monthly record from the day ledger. It is the only
// place where ledger derived totals flow into monthly records.
type MonthlyReconciler struct {
	ledger  *DayLedger
	records attendance.MonthlyRecordRepository
}

func NewMonthlyReconciler(ledger *DayLedger, records attendance.MonthlyRecordRepository) *MonthlyReconciler {
	return &MonthlyReconciler{ledger: ledger, records: records}
}

// Reconcile sets workedDays to the number of ledger rows in the whole calendar month
// and recomputes availability against the stored totalWorkingDays.
func (r *MonthlyReconciler) Reconcile(ctx context.Context, record attendance.MonthlyRecord) (attendance.MonthlyRecord, error) {
	start, end := calendar.MonthBounds(record.Year, time.Month(record.Month))

	worked, err := r.ledger.PresentDays(ctx, record.EmployeeID, start, end)
	if err != nil {
		return attendance.MonthlyRecord{}, fmt.Errorf("count present days: %w", err)
	}

	record.SetWorkedDays(worked)

	updated, err := r.records.Update(ctx, record)
	if err != nil {
		return attendance.MonthlyRecord{}, fmt.Errorf("reconcile attendance %d: %w", record.ID, err)
	}
	return updated, nil
}
