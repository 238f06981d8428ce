package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayLedger_RecordPresenceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	ledger := NewDayLedger(newFakeDayRepo())
	day := calendar.Date(2025, 1, 2)

	require.NoError(t, ledger.RecordPresence(ctx, 1, day))
	require.NoError(t, ledger.RecordPresence(ctx, 1, day.Add(15*time.Hour)))

	start, end := calendar.MonthBounds(2025, 1)
	n, err := ledger.PresentDays(ctx, 1, start, end)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	present, err := ledger.IsPresent(ctx, 1, day)
	require.NoError(t, err)
	assert.True(t, present)

	present, err = ledger.IsPresent(ctx, 2, day)
	require.NoError(t, err)
	assert.False(t, present)
}

func TestDayLedger_ClearRange(t *testing.T) {
	ctx := context.Background()
	ledger := NewDayLedger(newFakeDayRepo())

	for _, d := range []int{1, 3, 6, 10} {
		require.NoError(t, ledger.RecordPresence(ctx, 1, calendar.Date(2025, 1, d)))
	}

	require.NoError(t, ledger.ClearRange(ctx, 1, calendar.Date(2025, 1, 1), calendar.Date(2025, 1, 5)))

	start, end := calendar.MonthBounds(2025, 1)
	dates, err := ledger.PresentDates(ctx, 1, start, end)
	require.NoError(t, err)
	require.Len(t, dates, 2)
	assert.Equal(t, "2025-01-06", dates[0].Format(calendar.DateLayout))
	assert.Equal(t, "2025-01-10", dates[1].Format(calendar.DateLayout))
}
