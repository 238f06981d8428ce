package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	interval          time.Duration
	now               func() time.Time
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, interval time.Duration) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		interval:          interval,
		now:               time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	if j.interval <= 0 {
		slog.Info("Cron: weekly snapshot refresh disabled")
		return
	}
	scheduler.AddJob("refresh_weekly_snapshots", j.interval, j.RefreshWeeklySnapshots)
}

// RefreshWeeklySnapshots re-derives the weekly snapshots of the current UTC month.
// Monthly totals are left as they are.
func (j *AttendanceJobs) RefreshWeeklySnapshots(ctx context.Context) error {
	today := j.now().UTC()
	period := attendance.Period{Month: int(today.Month()), Year: today.Year()}

	refreshed, err := j.attendanceService.RefreshWeeklySnapshots(ctx, period)
	if err != nil {
		return fmt.Errorf("failed to refresh weekly snapshots for %04d-%02d: %w", period.Year, period.Month, err)
	}

	slog.Info("Cron: weekly snapshots refreshed", "month", period.Month, "year", period.Year, "records", refreshed)
	return nil
}
