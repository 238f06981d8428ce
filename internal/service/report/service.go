package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	monthlyRepo attendance.MonthlyRecordRepository
	weeklyRepo  attendance.WeeklySnapshotRepository
	now         func() time.Time
}

func NewReportService(monthlyRepo attendance.MonthlyRecordRepository, weeklyRepo attendance.WeeklySnapshotRepository) report.ReportService {
	return &ReportServiceImpl{
		monthlyRepo: monthlyRepo,
		weeklyRepo:  weeklyRepo,
		now:         time.Now,
	}
}

// GenerateMonthlyAttendanceReport generates the monthly attendance report
func (s *ReportServiceImpl) GenerateMonthlyAttendanceReport(ctx context.Context, req report.MonthlyAttendanceReportRequest) (report.MonthlyAttendanceReport, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return report.MonthlyAttendanceReport{}, err
	}

	period := attendance.Period{Month: req.Month, Year: req.Year}

	var (
		rows      []attendance.EmployeeAttendance
		snapshots []attendance.WeeklySnapshot
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.monthlyRepo.ListWithEmployees(gctx, &period)
		if err != nil {
			return fmt.Errorf("failed to get attendance data: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snapshots, err = s.weeklyRepo.ListByPeriod(gctx, period.Month, period.Year)
		if err != nil {
			return fmt.Errorf("failed to get weekly attendance data: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return report.MonthlyAttendanceReport{}, err
	}

	weeksByRecord := make(map[int64][]report.WeeklyAvailability)
	for _, w := range snapshots {
		weeksByRecord[w.MonthlyRecordID] = append(weeksByRecord[w.MonthlyRecordID], report.WeeklyAvailability{
			WeekNumber:       w.WeekNumber,
			Start:            w.WeekStart.Format(calendar.DateLayout),
			End:              w.WeekEnd.Format(calendar.DateLayout),
			TotalWorkingDays: w.TotalWorkingDays,
			WorkedDays:       w.WorkedDays,
			Availability:     w.Availability,
		})
	}

	employees := make([]report.MonthlyAttendanceEmployee, 0, len(rows))
	for _, r := range rows {
		weeks := weeksByRecord[r.AttendanceID]
		if weeks == nil {
			weeks = []report.WeeklyAvailability{}
		}
		employees = append(employees, report.MonthlyAttendanceEmployee{
			AttendanceID:      r.AttendanceID,
			EmployeeID:        r.EmployeeID,
			Name:              r.Name,
			Email:             r.Email,
			Department:        r.Department,
			TotalDays:         r.TotalDays,
			TotalWorkingDays:  r.TotalWorkingDays,
			WorkedDays:        r.WorkedDays,
			Availability:      r.Availability,
			ExactAvailability: exactAvailability(r.WorkedDays, r.TotalWorkingDays),
			Weeks:             weeks,
		})
	}

	// Calculate period dates
	periodStart, periodEnd := calendar.MonthBounds(req.Year, time.Month(req.Month))

	return report.MonthlyAttendanceReport{
		PeriodMonth: req.Month,
		PeriodYear:  req.Year,
		PeriodStart: periodStart.Format(calendar.DateLayout),
		PeriodEnd:   periodEnd.Format(calendar.DateLayout),
		GeneratedAt: s.now().Format(time.RFC3339),
		Employees:   employees,
	}, nil
}

// ExportMonthlyAttendanceReport implements report.ReportService.
func (s *ReportServiceImpl) ExportMonthlyAttendanceReport(ctx context.Context, req report.MonthlyAttendanceReportRequest) (report.ReportFile, error) {
	data, err := s.GenerateMonthlyAttendanceReport(ctx, req)
	if err != nil {
		return report.ReportFile{}, err
	}

	content, err := renderWorkbook(data)
	if err != nil {
		slog.Error("Failed to render attendance workbook", "month", req.Month, "year", req.Year, "error", err)
		return report.ReportFile{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	return report.ReportFile{
		Filename:    fmt.Sprintf("attendance-%04d-%02d.xlsx", req.Year, req.Month),
		ContentType: xlsxContentType,
		Content:     content,
	}, nil
}

// exactAvailability is worked*100/working with two decimals, or "0.00" without working days.
func exactAvailability(worked, working int) string {
	if working <= 0 {
		return decimal.Zero.StringFixed(2)
	}
	return decimal.NewFromInt(int64(worked)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(working))).
		StringFixed(2)
}
