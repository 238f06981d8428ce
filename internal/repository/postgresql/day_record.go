package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type dayRecordRepositoryImpl struct {
	db *database.DB
}

func NewDayRecordRepository(db *database.DB) attendance.DayRecordRepository {
	return &dayRecordRepositoryImpl{db: db}
}

// Create implements attendance.DayRecordRepository.
func (r *dayRecordRepositoryImpl) Create(ctx context.Context, day attendance.DayRecord) (attendance.DayRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_days (employee_id, attendance_date, status)
		VALUES ($1, $2, $3)
		RETURNING id, employee_id, attendance_date, status, created_at
	`

	var created attendance.DayRecord
	err := q.QueryRow(ctx, query, day.EmployeeID, day.Date, day.Status).Scan(
		&created.ID, &created.EmployeeID, &created.Date, &created.Status, &created.CreatedAt,
	)
	if err != nil {
		return attendance.DayRecord{}, fmt.Errorf("failed to create attendance day %s for employee %d: %w",
			day.Date.Format("2006-01-02"), day.EmployeeID, err)
	}
	return created, nil
}

// DeleteByDate implements attendance.DayRecordRepository.
func (r *dayRecordRepositoryImpl) DeleteByDate(ctx context.Context, employeeID int64, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM attendance_days WHERE employee_id = $1 AND attendance_date = $2`, employeeID, date)
	if err != nil {
		return fmt.Errorf("failed to delete attendance day for employee %d: %w", employeeID, err)
	}
	return nil
}

// DeleteRange implements attendance.DayRecordRepository.
func (r *dayRecordRepositoryImpl) DeleteRange(ctx context.Context, employeeID int64, start, end time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM attendance_days
		WHERE employee_id = $1 AND attendance_date BETWEEN $2 AND $3
	`

	tag, err := q.Exec(ctx, query, employeeID, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to clear attendance days for employee %d: %w", employeeID, err)
	}
	return tag.RowsAffected(), nil
}

// CountInRange implements attendance.DayRecordRepository.
func (r *dayRecordRepositoryImpl) CountInRange(ctx context.Context, employeeID int64, start, end time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM attendance_days
		WHERE employee_id = $1 AND attendance_date BETWEEN $2 AND $3
	`

	var count int
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count attendance days for employee %d: %w", employeeID, err)
	}
	return count, nil
}

// Exists implements attendance.DayRecordRepository.
func (r *dayRecordRepositoryImpl) Exists(ctx context.Context, employeeID int64, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM attendance_days WHERE employee_id = $1 AND attendance_date = $2)`,
		employeeID, date,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check attendance day for employee %d: %w", employeeID, err)
	}
	return exists, nil
}

// ListDates implements attendance.DayRecordRepository.
func (r *dayRecordRepositoryImpl) ListDates(ctx context.Context, employeeID int64, start, end time.Time) ([]time.Time, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT attendance_date
		FROM attendance_days
		WHERE employee_id = $1 AND attendance_date BETWEEN $2 AND $3
		ORDER BY attendance_date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance days for employee %d: %w", employeeID, err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return dates, nil
}
