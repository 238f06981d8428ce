package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const monthlyRecordColumns = `id, employee_id, month, year, total_days, total_working_days, worked_days, availability, created_at, updated_at`

type monthlyRecordRepositoryImpl struct {
	db *database.DB
}

func NewMonthlyRecordRepository(db *database.DB) attendance.MonthlyRecordRepository {
	return &monthlyRecordRepositoryImpl{db: db}
}

func scanMonthlyRecord(row pgx.Row) (attendance.MonthlyRecord, error) {
	var m attendance.MonthlyRecord
	err := row.Scan(
		&m.ID, &m.EmployeeID, &m.Month, &m.Year, &m.TotalDays,
		&m.TotalWorkingDays, &m.WorkedDays, &m.Availability, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

func collectMonthlyRecords(rows pgx.Rows) ([]attendance.MonthlyRecord, error) {
	defer rows.Close()

	records := make([]attendance.MonthlyRecord, 0)
	for rows.Next() {
		m, err := scanMonthlyRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Create implements attendance.MonthlyRecordRepository.
func (r *monthlyRecordRepositoryImpl) Create(ctx context.Context, record attendance.MonthlyRecord) (attendance.MonthlyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_attendance (employee_id, month, year, total_days, total_working_days, worked_days, availability)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + monthlyRecordColumns

	created, err := scanMonthlyRecord(q.QueryRow(ctx, query,
		record.EmployeeID, record.Month, record.Year, record.TotalDays,
		record.TotalWorkingDays, record.WorkedDays, record.Availability,
	))
	if err != nil {
		if constraint, ok := uniqueConstraint(err); ok && constraint == "monthly_attendance_employee_period_key" {
			return attendance.MonthlyRecord{}, attendance.ErrMonthlyRecordExists
		}
		return attendance.MonthlyRecord{}, fmt.Errorf("failed to create monthly attendance: %w", err)
	}
	return created, nil
}

// Update implements attendance.MonthlyRecordRepository.
func (r *monthlyRecordRepositoryImpl) Update(ctx context.Context, record attendance.MonthlyRecord) (attendance.MonthlyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE monthly_attendance
		SET total_days = $1, total_working_days = $2, worked_days = $3, availability = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING ` + monthlyRecordColumns

	updated, err := scanMonthlyRecord(q.QueryRow(ctx, query,
		record.TotalDays, record.TotalWorkingDays, record.WorkedDays, record.Availability, record.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.MonthlyRecord{}, attendance.ErrMonthlyRecordNotFound
		}
		return attendance.MonthlyRecord{}, fmt.Errorf("failed to update monthly attendance with id %d: %w", record.ID, err)
	}
	return updated, nil
}

// GetByID implements attendance.MonthlyRecordRepository.
func (r *monthlyRecordRepositoryImpl) GetByID(ctx context.Context, id int64) (attendance.MonthlyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + monthlyRecordColumns + ` FROM monthly_attendance WHERE id = $1`

	m, err := scanMonthlyRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.MonthlyRecord{}, attendance.ErrMonthlyRecordNotFound
		}
		return attendance.MonthlyRecord{}, fmt.Errorf("failed to get monthly attendance with id %d: %w", id, err)
	}
	return m, nil
}

// GetByEmployeeAndPeriod implements attendance.MonthlyRecordRepository.
func (r *monthlyRecordRepositoryImpl) GetByEmployeeAndPeriod(ctx context.Context, employeeID int64, month, year int) (attendance.MonthlyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + monthlyRecordColumns + `
		FROM monthly_attendance
		WHERE employee_id = $1 AND month = $2 AND year = $3
	`

	m, err := scanMonthlyRecord(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.MonthlyRecord{}, attendance.ErrMonthlyRecordNotFound
		}
		return attendance.MonthlyRecord{}, fmt.Errorf("failed to get monthly attendance for employee %d (%d-%02d): %w", employeeID, year, month, err)
	}
	return m, nil
}

// ListByEmployee implements attendance.MonthlyRecordRepository.
func (r *monthlyRecordRepositoryImpl) ListByEmployee(ctx context.Context, employeeID int64) ([]attendance.MonthlyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + monthlyRecordColumns + `
		FROM monthly_attendance
		WHERE employee_id = $1
		ORDER BY year DESC, month DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly attendance for employee %d: %w", employeeID, err)
	}
	return collectMonthlyRecords(rows)
}

// ListAll implements attendance.MonthlyRecordRepository.
func (r *monthlyRecordRepositoryImpl) ListAll(ctx context.Context) ([]attendance.MonthlyRecord, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+monthlyRecordColumns+` FROM monthly_attendance ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly attendance: %w", err)
	}
	return collectMonthlyRecords(rows)
}

// ListByPeriod implements attendance.MonthlyRecordRepository.
func (r *monthlyRecordRepositoryImpl) ListByPeriod(ctx context.Context, month, year int) ([]attendance.MonthlyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + monthlyRecordColumns + `
		FROM monthly_attendance
		WHERE month = $1 AND year = $2
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly attendance for %d-%02d: %w", year, month, err)
	}
	return collectMonthlyRecords(rows)
}

// ListWithEmployees implements attendance.MonthlyRecordRepository.
func (r *monthlyRecordRepositoryImpl) ListWithEmployees(ctx context.Context, period *attendance.Period) ([]attendance.EmployeeAttendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.id, e.id, e.full_name, e.email, e.department,
			m.month, m.year, m.total_days, m.total_working_days, m.worked_days, m.availability
		FROM monthly_attendance m
		JOIN employees e ON e.id = m.employee_id
	`
	var args []interface{}
	if period != nil {
		query += ` WHERE m.month = $1 AND m.year = $2`
		args = append(args, period.Month, period.Year)
	}
	query += ` ORDER BY m.year DESC, m.month DESC, e.full_name`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees attendance: %w", err)
	}
	defer rows.Close()

	result := make([]attendance.EmployeeAttendance, 0)
	for rows.Next() {
		var ea attendance.EmployeeAttendance
		err := rows.Scan(
			&ea.AttendanceID, &ea.EmployeeID, &ea.Name, &ea.Email, &ea.Department,
			&ea.Month, &ea.Year, &ea.TotalDays, &ea.TotalWorkingDays, &ea.WorkedDays, &ea.Availability,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, ea)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete implements attendance.MonthlyRecordRepository.
func (r *monthlyRecordRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM monthly_attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete monthly attendance with id %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrMonthlyRecordNotFound
	}
	return nil
}
