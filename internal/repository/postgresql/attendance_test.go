package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jan(day int) time.Time {
	return time.Date(2025, time.January, day, 0, 0, 0, 0, time.UTC)
}

func TestMonthlyRecordRepository_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewMonthlyRecordRepository(db)
	ctx := context.Background()
	emp := createTestEmployee(t, db, "monthly@example.com")

	record := attendance.MonthlyRecord{EmployeeID: emp.ID, Month: 1, Year: 2025, TotalDays: 31, TotalWorkingDays: 22}
	record.SetWorkedDays(11)

	created, err := repo.Create(ctx, record)
	require.NoError(t, err)
	assert.Equal(t, 50, created.Availability)

	_, err = repo.Create(ctx, record)
	assert.ErrorIs(t, err, attendance.ErrMonthlyRecordExists)

	created.SetWorkedDays(22)
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, 100, updated.Availability)

	got, err := repo.GetByEmployeeAndPeriod(ctx, emp.ID, 1, 2025)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = repo.GetByEmployeeAndPeriod(ctx, emp.ID, 2, 2025)
	assert.ErrorIs(t, err, attendance.ErrMonthlyRecordNotFound)

	joined, err := repo.ListWithEmployees(ctx, &attendance.Period{Month: 1, Year: 2025})
	require.NoError(t, err)
	require.Len(t, joined, 1)
	assert.Equal(t, "Test Employee", joined[0].Name)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), attendance.ErrMonthlyRecordNotFound)
}

func TestDayRecordRepository_Ranges(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewDayRecordRepository(db)
	ctx := context.Background()
	emp := createTestEmployee(t, db, "days@example.com")

	for _, d := range []int{2, 3, 4, 15} {
		_, err := repo.Create(ctx, attendance.DayRecord{EmployeeID: emp.ID, Date: jan(d), Status: attendance.DayStatusPresent})
		require.NoError(t, err)
	}

	start, end := calendar.MonthBounds(2025, time.January)
	count, err := repo.CountInRange(ctx, emp.ID, start, end)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	exists, err := repo.Exists(ctx, emp.ID, jan(4))
	require.NoError(t, err)
	assert.True(t, exists)

	removed, err := repo.DeleteRange(ctx, emp.ID, jan(1), jan(5))
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	dates, err := repo.ListDates(ctx, emp.ID, start, end)
	require.NoError(t, err)
	require.Len(t, dates, 1)
	assert.Equal(t, "2025-01-15", dates[0].Format(calendar.DateLayout))

	require.NoError(t, repo.DeleteByDate(ctx, emp.ID, jan(15)))
	count, err = repo.CountInRange(ctx, emp.ID, start, end)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestWeeklySnapshotRepository_Upsert(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	emp := createTestEmployee(t, db, "weekly@example.com")

	record, err := postgresql.NewMonthlyRecordRepository(db).Create(ctx, attendance.MonthlyRecord{
		EmployeeID: emp.ID, Month: 1, Year: 2025, TotalDays: 31, TotalWorkingDays: 22,
	})
	require.NoError(t, err)

	repo := postgresql.NewWeeklySnapshotRepository(db)
	snapshot := attendance.WeeklySnapshot{
		EmployeeID: emp.ID, MonthlyRecordID: record.ID, Month: 1, Year: 2025, WeekNumber: 1,
		TotalWorkingDays: 3, WorkedDays: 1, Availability: 33, WeekStart: jan(1), WeekEnd: jan(5),
	}
	first, err := repo.Upsert(ctx, snapshot)
	require.NoError(t, err)

	snapshot.WorkedDays = 3
	snapshot.Availability = 100
	second, err := repo.Upsert(ctx, snapshot)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	list, err := repo.ListByMonthlyRecord(ctx, record.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 100, list[0].Availability)

	byPeriod, err := repo.ListByPeriod(ctx, 1, 2025)
	require.NoError(t, err)
	assert.Len(t, byPeriod, 1)
}

func TestTransactor_RollsBack(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	emp := createTestEmployee(t, db, "tx@example.com")
	days := postgresql.NewDayRecordRepository(db)
	boom := errors.New("boom")

	err := postgresql.NewTransactor(db).WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := days.Create(ctx, attendance.DayRecord{EmployeeID: emp.ID, Date: jan(2), Status: attendance.DayStatusPresent}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	exists, err := days.Exists(ctx, emp.ID, jan(2))
	require.NoError(t, err)
	assert.False(t, exists)
}
