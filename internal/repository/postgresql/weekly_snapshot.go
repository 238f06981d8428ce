package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const weeklySnapshotColumns = `id, employee_id, attendance_id, month, year, week_number,
	total_working_days, worked_days, availability, week_start, week_end, updated_at`

type weeklySnapshotRepositoryImpl struct {
	db *database.DB
}

func NewWeeklySnapshotRepository(db *database.DB) attendance.WeeklySnapshotRepository {
	return &weeklySnapshotRepositoryImpl{db: db}
}

func scanWeeklySnapshot(row pgx.Row) (attendance.WeeklySnapshot, error) {
	var s attendance.WeeklySnapshot
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.MonthlyRecordID, &s.Month, &s.Year, &s.WeekNumber,
		&s.TotalWorkingDays, &s.WorkedDays, &s.Availability, &s.WeekStart, &s.WeekEnd, &s.UpdatedAt,
	)
	return s, err
}

func collectWeeklySnapshots(rows pgx.Rows) ([]attendance.WeeklySnapshot, error) {
	defer rows.Close()

	snapshots := make([]attendance.WeeklySnapshot, 0)
	for rows.Next() {
		s, err := scanWeeklySnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snapshots, nil
}

// Upsert implements attendance.WeeklySnapshotRepository.
func (r *weeklySnapshotRepositoryImpl) Upsert(ctx context.Context, snapshot attendance.WeeklySnapshot) (attendance.WeeklySnapshot, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_weekly (
			employee_id, attendance_id, month, year, week_number,
			total_working_days, worked_days, availability, week_start, week_end
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT ON CONSTRAINT attendance_weekly_record_week_key DO UPDATE SET
			employee_id = EXCLUDED.employee_id,
			total_working_days = EXCLUDED.total_working_days,
			worked_days = EXCLUDED.worked_days,
			availability = EXCLUDED.availability,
			week_start = EXCLUDED.week_start,
			week_end = EXCLUDED.week_end,
			updated_at = NOW()
		RETURNING ` + weeklySnapshotColumns

	saved, err := scanWeeklySnapshot(q.QueryRow(ctx, query,
		snapshot.EmployeeID, snapshot.MonthlyRecordID, snapshot.Month, snapshot.Year, snapshot.WeekNumber,
		snapshot.TotalWorkingDays, snapshot.WorkedDays, snapshot.Availability, snapshot.WeekStart, snapshot.WeekEnd,
	))
	if err != nil {
		return attendance.WeeklySnapshot{}, fmt.Errorf("failed to upsert week %d of attendance %d: %w",
			snapshot.WeekNumber, snapshot.MonthlyRecordID, err)
	}
	return saved, nil
}

// ListByMonthlyRecord implements attendance.WeeklySnapshotRepository.
func (r *weeklySnapshotRepositoryImpl) ListByMonthlyRecord(ctx context.Context, monthlyRecordID int64) ([]attendance.WeeklySnapshot, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + weeklySnapshotColumns + `
		FROM attendance_weekly
		WHERE attendance_id = $1
		ORDER BY week_number
	`

	rows, err := q.Query(ctx, query, monthlyRecordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly attendance of %d: %w", monthlyRecordID, err)
	}
	return collectWeeklySnapshots(rows)
}

// ListByPeriod implements attendance.WeeklySnapshotRepository.
func (r *weeklySnapshotRepositoryImpl) ListByPeriod(ctx context.Context, month, year int) ([]attendance.WeeklySnapshot, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + weeklySnapshotColumns + `
		FROM attendance_weekly
		WHERE month = $1 AND year = $2
		ORDER BY attendance_id, week_number
	`

	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly attendance for %d-%02d: %w", year, month, err)
	}
	return collectWeeklySnapshots(rows)
}
