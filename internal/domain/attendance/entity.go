package attendance

import (
	"time"
)

type DayStatus string

const (
	DayStatusPresent DayStatus = "PRESENT"
)

// MonthlyRecord is the per (employee, month, year) attendance summary.
type MonthlyRecord struct {
	ID               int64
	EmployeeID       int64
	Month            int
	Year             int
	TotalDays        int
	TotalWorkingDays int
	WorkedDays       int
	Availability     int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SetWorkedDays stores worked and recomputes availability against the record's own
// working-day denominator.
func (m *MonthlyRecord) SetWorkedDays(worked int) {
	m.WorkedDays = worked
	m.Availability = Availability(worked, m.TotalWorkingDays)
}

// DayRecord marks one employee present on one calendar date. Absence has no row.
type DayRecord struct {
	ID         int64
	EmployeeID int64
	Date       time.Time
	Status     DayStatus
	CreatedAt  time.Time
}

// WeeklySnapshot caches the counts of one week of a monthly record.
// It is always recomputable from the day records.
type WeeklySnapshot struct {
	ID               int64
	EmployeeID       int64
	MonthlyRecordID  int64
	Month            int
	Year             int
	WeekNumber       int
	TotalWorkingDays int
	WorkedDays       int
	Availability     int
	WeekStart        time.Time
	WeekEnd          time.Time
	UpdatedAt        time.Time
}

// WeekCounts holds the working and present weekdays of one week range.
type WeekCounts struct {
	WorkingDays int
	WorkedDays  int
}

// EmployeeAttendance is a monthly record joined with its owning employee.
type EmployeeAttendance struct {
	AttendanceID     int64
	EmployeeID       int64
	Name             string
	Email            string
	Department       string
	Month            int
	Year             int
	TotalDays        int
	TotalWorkingDays int
	WorkedDays       int
	Availability     int
}

// Availability returns worked*100/working truncated, or 0 when there are no working days.
func Availability(worked, working int) int {
	if working <= 0 {
		return 0
	}
	return worked * 100 / working
}
