package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/lock"
)

type AttendanceServiceImpl struct {
	transactor database.Transactor
	attendance.MonthlyRecordRepository
	employee.EmployeeRepository
	ledger     *DayLedger
	aggregator *WeeklyAggregator
	reconciler *MonthlyReconciler
	locker     attendance.Locker
	publisher  attendance.EventPublisher
}

func NewAttendanceService(
	transactor database.Transactor,
	monthlyRepo attendance.MonthlyRecordRepository,
	dayRepo attendance.DayRecordRepository,
	weeklyRepo attendance.WeeklySnapshotRepository,
	employeeRepo employee.EmployeeRepository,
	locker attendance.Locker,
	publisher attendance.EventPublisher,
) attendance.AttendanceService {
	ledger := NewDayLedger(dayRepo)
	return &AttendanceServiceImpl{
		transactor:              transactor,
		MonthlyRecordRepository: monthlyRepo,
		EmployeeRepository:      employeeRepo,
		ledger:                  ledger,
		aggregator:              NewWeeklyAggregator(ledger, weeklyRepo),
		reconciler:              NewMonthlyReconciler(ledger, monthlyRepo),
		locker:                  locker,
		publisher:               publisher,
	}
}

// Submit implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Submit(ctx context.Context, req attendance.SubmitAttendanceRequest) (attendance.SubmitAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SubmitAttendanceResponse{}, err
	}

	dates, err := req.PresentDates()
	if err != nil {
		return attendance.SubmitAttendanceResponse{}, err
	}

	release, err := a.lockMonth(ctx, req.EmployeeID, req.Month, req.Year)
	if err != nil {
		return attendance.SubmitAttendanceResponse{}, err
	}
	defer release()

	var saved attendance.MonthlyRecord
	err = a.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
			return err
		}

		record, err := a.MonthlyRecordRepository.GetByEmployeeAndPeriod(ctx, req.EmployeeID, req.Month, req.Year)
		exists := err == nil
		if err != nil && !errors.Is(err, attendance.ErrMonthlyRecordNotFound) {
			return err
		}
		if !exists {
			record = attendance.MonthlyRecord{
				EmployeeID: req.EmployeeID,
				Month:      req.Month,
				Year:       req.Year,
			}
		}

		record.TotalDays = req.TotalDays
		record.TotalWorkingDays = req.TotalWorkingDays
		// The employee's own count is stored as given, not re-derived from the ledger.
		record.SetWorkedDays(req.WorkedDays)

		if exists {
			saved, err = a.MonthlyRecordRepository.Update(ctx, record)
		} else {
			saved, err = a.MonthlyRecordRepository.Create(ctx, record)
		}
		if err != nil {
			return err
		}

		for _, d := range dates {
			if err := a.ledger.RecordPresence(ctx, req.EmployeeID, d); err != nil {
				return fmt.Errorf("record presence: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return attendance.SubmitAttendanceResponse{}, err
	}

	slog.Info("Attendance submitted",
		"employee_id", req.EmployeeID, "month", req.Month, "year", req.Year,
		"worked_days", saved.WorkedDays, "availability", saved.Availability, "selected_dates", len(dates))
	a.publish(ctx, attendance.NewEvent(attendance.EventSubmitted, saved))

	return attendance.SubmitAttendanceResponse{
		EmployeeID: req.EmployeeID,
		Month:      req.Month,
		Year:       req.Year,
	}, nil
}

// ListWeeks implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListWeeks(ctx context.Context, req attendance.EmployeeMonthRequest) ([]attendance.WeeklySummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	release, err := a.lockMonth(ctx, req.EmployeeID, req.Month, req.Year)
	if err != nil {
		return nil, err
	}
	defer release()

	var (
		snapshots  []attendance.WeeklySnapshot
		reconciled attendance.MonthlyRecord
	)
	err = a.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
			return err
		}

		record, err := a.MonthlyRecordRepository.GetByEmployeeAndPeriod(ctx, req.EmployeeID, req.Month, req.Year)
		if err != nil {
			return err
		}

		snapshots, err = a.aggregator.RefreshMonth(ctx, record)
		if err != nil {
			return err
		}

		reconciled, err = a.reconciler.Reconcile(ctx, record)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("Weekly attendance refreshed",
		"employee_id", req.EmployeeID, "month", req.Month, "year", req.Year,
		"weeks", len(snapshots), "worked_days", reconciled.WorkedDays)

	result := make([]attendance.WeeklySummaryResponse, 0, len(snapshots))
	for _, s := range snapshots {
		result = append(result, attendance.NewWeeklySummaryResponse(s))
	}
	return result, nil
}

// CorrectWeek implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CorrectWeek(ctx context.Context, req attendance.CorrectWeekRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	release, err := a.lockMonth(ctx, req.EmployeeID, req.Month, req.Year)
	if err != nil {
		return err
	}
	defer release()

	var (
		marked     int
		reconciled attendance.MonthlyRecord
	)
	err = a.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
			return err
		}

		record, err := a.MonthlyRecordRepository.GetByEmployeeAndPeriod(ctx, req.EmployeeID, req.Month, req.Year)
		if err != nil {
			return err
		}

		week, ok := calendar.Week(req.Year, time.Month(req.Month), req.WeekNumber)
		if !ok {
			return attendance.ErrInvalidWeekNumber
		}

		if err := a.ledger.ClearRange(ctx, req.EmployeeID, week.Start, week.End); err != nil {
			return err
		}

		// Requests beyond the week's weekdays mark every weekday and stop.
		for _, day := range calendar.WorkingDays(week.Start, week.End) {
			if marked == req.WorkedDays {
				break
			}
			if err := a.ledger.RecordPresence(ctx, req.EmployeeID, day); err != nil {
				return fmt.Errorf("record presence: %w", err)
			}
			marked++
		}

		reconciled, err = a.reconciler.Reconcile(ctx, record)
		return err
	})
	if err != nil {
		return err
	}

	slog.Info("Weekly attendance corrected",
		"employee_id", req.EmployeeID, "month", req.Month, "year", req.Year, "week_number", req.WeekNumber,
		"requested", req.WorkedDays, "marked", marked, "worked_days", reconciled.WorkedDays)

	event := attendance.NewEvent(attendance.EventWeekCorrected, reconciled)
	event.WeekNumber = req.WeekNumber
	a.publish(ctx, event)

	return nil
}

// ListByEmployee implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListByEmployee(ctx context.Context, employeeID int64) ([]attendance.MonthlyRecordResponse, error) {
	if _, err := a.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	records, err := a.MonthlyRecordRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return toMonthlyResponses(records), nil
}

// ListAll implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAll(ctx context.Context) ([]attendance.MonthlyRecordResponse, error) {
	records, err := a.MonthlyRecordRepository.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toMonthlyResponses(records), nil
}

// ListEmployeesAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListEmployeesAttendance(ctx context.Context) ([]attendance.EmployeeAttendanceResponse, error) {
	rows, err := a.MonthlyRecordRepository.ListWithEmployees(ctx, nil)
	if err != nil {
		return nil, err
	}

	result := make([]attendance.EmployeeAttendanceResponse, 0, len(rows))
	for _, r := range rows {
		result = append(result, attendance.EmployeeAttendanceResponse{
			AttendanceID:     r.AttendanceID,
			EmployeeID:       r.EmployeeID,
			Name:             r.Name,
			Email:            r.Email,
			Department:       r.Department,
			Month:            r.Month,
			Year:             r.Year,
			TotalDays:        r.TotalDays,
			TotalWorkingDays: r.TotalWorkingDays,
			WorkedDays:       r.WorkedDays,
			Availability:     r.Availability,
		})
	}
	return result, nil
}

// ListPresentDates implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListPresentDates(ctx context.Context, req attendance.EmployeeMonthRequest) (attendance.PresentDatesResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PresentDatesResponse{}, err
	}

	if _, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.PresentDatesResponse{}, err
	}

	start, end := calendar.MonthBounds(req.Year, time.Month(req.Month))
	dates, err := a.ledger.PresentDates(ctx, req.EmployeeID, start, end)
	if err != nil {
		return attendance.PresentDatesResponse{}, err
	}

	formatted := make([]string, 0, len(dates))
	for _, d := range dates {
		formatted = append(formatted, d.Format(calendar.DateLayout))
	}

	return attendance.PresentDatesResponse{
		EmployeeID: req.EmployeeID,
		Month:      req.Month,
		Year:       req.Year,
		Dates:      formatted,
	}, nil
}

// UpdateRecord implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateRecord(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.MonthlyRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MonthlyRecordResponse{}, err
	}

	locked, release, err := a.lockRecord(ctx, req.ID)
	if err != nil {
		return attendance.MonthlyRecordResponse{}, err
	}
	defer release()

	var updated attendance.MonthlyRecord
	err = a.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		record, err := a.lockedRecord(ctx, locked)
		if err != nil {
			return err
		}

		if req.WorkedDays != nil {
			record.SetWorkedDays(*req.WorkedDays)
			if record, err = a.MonthlyRecordRepository.Update(ctx, record); err != nil {
				return err
			}
		}

		if req.Department != nil {
			if _, err := a.EmployeeRepository.UpdateDepartment(ctx, record.EmployeeID, *req.Department); err != nil {
				return err
			}
		}

		updated = record
		return nil
	})
	if err != nil {
		return attendance.MonthlyRecordResponse{}, err
	}

	slog.Info("Attendance record updated",
		"attendance_id", updated.ID, "employee_id", updated.EmployeeID,
		"worked_days_changed", req.WorkedDays != nil, "department_changed", req.Department != nil)
	a.publish(ctx, attendance.NewEvent(attendance.EventRecordUpdated, updated))

	return attendance.NewMonthlyRecordResponse(updated), nil
}

// DeleteRecord implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteRecord(ctx context.Context, id int64) error {
	locked, release, err := a.lockRecord(ctx, id)
	if err != nil {
		return err
	}
	defer release()

	var deleted attendance.MonthlyRecord
	err = a.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		record, err := a.lockedRecord(ctx, locked)
		if err != nil {
			return err
		}
		if err := a.MonthlyRecordRepository.Delete(ctx, id); err != nil {
			return err
		}
		deleted = record
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Attendance record deleted", "attendance_id", id, "employee_id", deleted.EmployeeID)
	a.publish(ctx, attendance.NewEvent(attendance.EventRecordDeleted, deleted))
	return nil
}

// RefreshWeeklySnapshots implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RefreshWeeklySnapshots(ctx context.Context, period attendance.Period) (int, error) {
	records, err := a.MonthlyRecordRepository.ListByPeriod(ctx, period.Month, period.Year)
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return refreshed, err
		}

		err := a.refreshRecord(ctx, record)
		if errors.Is(err, attendance.ErrConcurrentModification) {
			slog.Debug("Skipping snapshot refresh of busy month", "attendance_id", record.ID)
			continue
		}
		if err != nil {
			return refreshed, fmt.Errorf("refresh attendance %d: %w", record.ID, err)
		}
		refreshed++
	}

	return refreshed, nil
}

func (a *AttendanceServiceImpl) refreshRecord(ctx context.Context, record attendance.MonthlyRecord) error {
	release, err := a.lockMonth(ctx, record.EmployeeID, record.Month, record.Year)
	if err != nil {
		return err
	}
	defer release()

	return a.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := a.aggregator.RefreshMonth(ctx, record)
		return err
	})
}

func (a *AttendanceServiceImpl) lockMonth(ctx context.Context, employeeID int64, month, year int) (func(), error) {
	release, err := a.locker.Acquire(ctx, lock.Key(employeeID, month, year))
	if err != nil {
		if errors.Is(err, lock.ErrLocked) {
			return nil, attendance.ErrConcurrentModification
		}
		return nil, fmt.Errorf("lock attendance month: %w", err)
	}
	return release, nil
}

// lockRecord takes the month lock of record id and returns the record as read before locking.
func (a *AttendanceServiceImpl) lockRecord(ctx context.Context, id int64) (attendance.MonthlyRecord, func(), error) {
	record, err := a.MonthlyRecordRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.MonthlyRecord{}, nil, err
	}

	release, err := a.lockMonth(ctx, record.EmployeeID, record.Month, record.Year)
	if err != nil {
		return attendance.MonthlyRecord{}, nil, err
	}
	return record, release, nil
}

// lockedRecord re-reads a record locked by lockRecord. A record that no longer belongs
// to the locked month is reported as a concurrent modification.
func (a *AttendanceServiceImpl) lockedRecord(ctx context.Context, locked attendance.MonthlyRecord) (attendance.MonthlyRecord, error) {
	record, err := a.MonthlyRecordRepository.GetByID(ctx, locked.ID)
	if err != nil {
		return attendance.MonthlyRecord{}, err
	}

	if record.EmployeeID != locked.EmployeeID || record.Month != locked.Month || record.Year != locked.Year {
		return attendance.MonthlyRecord{}, attendance.ErrConcurrentModification
	}
	return record, nil
}

// publish runs after commit; a failure is logged and never undoes the change.
func (a *AttendanceServiceImpl) publish(ctx context.Context, event attendance.Event) {
	if err := a.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		slog.Error("Failed to publish attendance event", "type", event.Type, "employee_id", event.EmployeeID, "error", err)
	}
}

func toMonthlyResponses(records []attendance.MonthlyRecord) []attendance.MonthlyRecordResponse {
	result := make([]attendance.MonthlyRecordResponse, 0, len(records))
	for _, m := range records {
		result = append(result, attendance.NewMonthlyRecordResponse(m))
	}
	return result
}
