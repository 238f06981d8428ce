package report

import (
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// MONTHLY ATTENDANCE REPORT
// ========================================

type MonthlyAttendanceReportRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *MonthlyAttendanceReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 1 and 9999",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MonthlyAttendanceReport struct {
	PeriodMonth int    `json:"periodMonth"`
	PeriodYear  int    `json:"periodYear"`
	PeriodStart string `json:"periodStart"`
	PeriodEnd   string `json:"periodEnd"`
	GeneratedAt string `json:"generatedAt"`

	Employees []MonthlyAttendanceEmployee `json:"employees"`
}

type MonthlyAttendanceEmployee struct {
	AttendanceID     int64  `json:"attendanceId"`
	EmployeeID       int64  `json:"employeeId"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Department       string `json:"department"`
	TotalDays        int    `json:"totalDays"`
	TotalWorkingDays int    `json:"totalWorkingDays"`
	WorkedDays       int    `json:"workedDays"`
	Availability     int    `json:"availability"`

	// ExactAvailability is workedDays*100/totalWorkingDays rounded to two decimals
	ExactAvailability string `json:"exactAvailability"`

	Weeks []WeeklyAvailability `json:"weeks"`
}

type WeeklyAvailability struct {
	WeekNumber       int    `json:"weekNumber"`
	Start            string `json:"start"`
	End              string `json:"end"`
	TotalWorkingDays int    `json:"totalWorkingDays"`
	WorkedDays       int    `json:"workedDays"`
	Availability     int    `json:"availability"`
}

// ReportFile is a rendered report ready to be downloaded.
type ReportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
