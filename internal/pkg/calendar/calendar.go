// Package calendar partitions calendar months into weeks and classifies working days.
// All dates are civil dates represented as midnight UTC.
package calendar

import "time"

// DateLayout is the ISO calendar date format used on the wire and in storage.
const DateLayout = "2006-01-02"

// WeekRange is one contiguous span of days inside a single calendar month.
type WeekRange struct {
	Number int
	Start  time.Time
	End    time.Time
}

// Date returns the civil date year-month-day at midnight UTC.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the clock and location of t, keeping its calendar date.
func Truncate(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// ParseDate parses an ISO (YYYY-MM-DD) date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

func DaysInMonth(year int, month time.Month) int {
	return Date(year, month+1, 0).Day()
}

// MonthBounds returns the first and the last day of the month.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	return Date(year, month, 1), Date(year, month, DaysInMonth(year, month))
}

// IsWorkingDay reports whether d falls on Monday through Friday.
func IsWorkingDay(d time.Time) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

// Days returns every date in [start, end] in ascending order.
func Days(start, end time.Time) []time.Time {
	start, end = Truncate(start), Truncate(end)
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// WorkingDays returns the Monday–Friday dates in [start, end] in ascending order.
func WorkingDays(start, end time.Time) []time.Time {
	var days []time.Time
	for _, d := range Days(start, end) {
		if IsWorkingDay(d) {
			days = append(days, d)
		}
	}
	return days
}

// WeekRanges splits the month into numbered weeks. Each week starts on the first day
// not yet assigned and ends on the next Sunday or on the last day of the month,
// whichever comes first.
func WeekRanges(year int, month time.Month) []WeekRange {
	total := DaysInMonth(year, month)
	weeks := make([]WeekRange, 0, 6)

	for day := 1; day <= total; {
		start := Date(year, month, day)
		end := start
		for end.Weekday() != time.Sunday && end.Day() != total {
			end = end.AddDate(0, 0, 1)
		}

		weeks = append(weeks, WeekRange{
			Number: len(weeks) + 1,
			Start:  start,
			End:    end,
		})
		day = end.Day() + 1
	}

	return weeks
}

// Week walks the month's weeks and returns the one numbered n.
func Week(year int, month time.Month, n int) (WeekRange, bool) {
	for _, w := range WeekRanges(year, month) {
		if w.Number == n {
			return w, true
		}
	}
	return WeekRange{}, false
}
