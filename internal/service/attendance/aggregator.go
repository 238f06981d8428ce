package attendance

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
)

// WeeklyAggregator derives week counts from the day ledger and caches them as snapshots.
type WeeklyAggregator struct {
	ledger    *DayLedger
	snapshots attendance.WeeklySnapshotRepository
}

func NewWeeklyAggregator(ledger *DayLedger, snapshots attendance.WeeklySnapshotRepository) *WeeklyAggregator {
	return &WeeklyAggregator{ledger: ledger, snapshots: snapshots}
}

// ComputeWeekCounts counts the weekdays of the range and how many of them are present.
// Weekend rows in the ledger are ignored here.
func (a *WeeklyAggregator) ComputeWeekCounts(ctx context.Context, employeeID int64, week calendar.WeekRange) (attendance.WeekCounts, error) {
	var counts attendance.WeekCounts

	for _, day := range calendar.WorkingDays(week.Start, week.End) {
		counts.WorkingDays++

		present, err := a.ledger.IsPresent(ctx, employeeID, day)
		if err != nil {
			return attendance.WeekCounts{}, err
		}
		if present {
			counts.WorkedDays++
		}
	}

	return counts, nil
}

// UpsertWeeklySnapshot overwrites the snapshot of week for record. Availability uses
// the week's own working days as denominator.
func (a *WeeklyAggregator) UpsertWeeklySnapshot(ctx context.Context, record attendance.MonthlyRecord, week calendar.WeekRange, counts attendance.WeekCounts) (attendance.WeeklySnapshot, error) {
	return a.snapshots.Upsert(ctx, attendance.WeeklySnapshot{
		EmployeeID:       record.EmployeeID,
		MonthlyRecordID:  record.ID,
		Month:            record.Month,
		Year:             record.Year,
		WeekNumber:       week.Number,
		TotalWorkingDays: counts.WorkingDays,
		WorkedDays:       counts.WorkedDays,
		Availability:     attendance.Availability(counts.WorkedDays, counts.WorkingDays),
		WeekStart:        week.Start,
		WeekEnd:          week.End,
	})
}

// RefreshMonth recomputes and upserts every week of the record's month in week order.
func (a *WeeklyAggregator) RefreshMonth(ctx context.Context, record attendance.MonthlyRecord) ([]attendance.WeeklySnapshot, error) {
	weeks := calendar.WeekRanges(record.Year, time.Month(record.Month))
	snapshots := make([]attendance.WeeklySnapshot, 0, len(weeks))

	for _, week := range weeks {
		counts, err := a.ComputeWeekCounts(ctx, record.EmployeeID, week)
		if err != nil {
			return nil, err
		}

		snapshot, err := a.UpsertWeeklySnapshot(ctx, record, week, counts)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}
