package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler()
	var runs atomic.Int32
	s.AddJob("count", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start()
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 10*time.Millisecond)
	s.Stop()

	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_RunOnceKeepsGoingAfterFailure(t *testing.T) {
	s := NewScheduler()
	var second bool
	s.AddJob("fails", time.Hour, func(ctx context.Context) error { return errors.New("boom") })
	s.AddJob("succeeds", time.Hour, func(ctx context.Context) error {
		second = true
		return nil
	})

	s.RunOnce(context.Background())

	assert.True(t, second)
}

// refreshRecorder only serves RefreshWeeklySnapshots.
type refreshRecorder struct {
	attendance.AttendanceService
	periods []attendance.Period
	err     error
}

func (r *refreshRecorder) RefreshWeeklySnapshots(_ context.Context, period attendance.Period) (int, error) {
	r.periods = append(r.periods, period)
	return 3, r.err
}

func TestAttendanceJobs_RefreshCurrentMonth(t *testing.T) {
	svc := &refreshRecorder{}
	jobs := NewAttendanceJobs(svc, time.Hour)
	jobs.now = func() time.Time { return time.Date(2025, time.March, 31, 23, 30, 0, 0, time.UTC) }

	require.NoError(t, jobs.RefreshWeeklySnapshots(context.Background()))

	assert.Equal(t, []attendance.Period{{Month: 3, Year: 2025}}, svc.periods)
}

func TestAttendanceJobs_RefreshError(t *testing.T) {
	svc := &refreshRecorder{err: errors.New("db down")}
	jobs := NewAttendanceJobs(svc, time.Hour)

	err := jobs.RefreshWeeklySnapshots(context.Background())

	assert.ErrorContains(t, err, "failed to refresh weekly snapshots")
}

func TestAttendanceJobs_DisabledInterval(t *testing.T) {
	s := NewScheduler()

	NewAttendanceJobs(&refreshRecorder{}, 0).RegisterJobs(s)
	NewAttendanceJobs(&refreshRecorder{}, time.Minute).RegisterJobs(s)

	assert.Len(t, s.jobs, 1)
	assert.Equal(t, "refresh_weekly_snapshots", s.jobs[0].Name)
}
