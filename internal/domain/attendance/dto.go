package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// SUBMISSION DTOs
// ========================================

type SubmitAttendanceRequest struct {
	EmployeeID       int64    `json:"-"`
	Month            int      `json:"month" validate:"min=1,max=12"`
	Year             int      `json:"year" validate:"min=1,max=9999"`
	TotalDays        int      `json:"totalDays" validate:"min=1,max=31"`
	TotalWorkingDays int      `json:"totalWorkingDays"`
	WorkedDays       int      `json:"workedDays" validate:"min=0"`
	SelectedDates    []string `json:"selectedDates,omitempty"`
}

// Validate reports the day-count rules first, in the order callers rely on,
// followed by shape checks on the remaining fields.
func (r *SubmitAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.TotalWorkingDays <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "totalWorkingDays",
			Message: "Total working days must be greater than 0",
		})
	}

	if r.WorkedDays > r.TotalWorkingDays {
		errs = append(errs, validator.ValidationError{
			Field:   "workedDays",
			Message: "Worked days cannot exceed total working days",
		})
	}

	if r.TotalWorkingDays > r.TotalDays {
		errs = append(errs, validator.ValidationError{
			Field:   "totalWorkingDays",
			Message: "Working days cannot exceed total days",
		})
	}

	errs = append(errs, validator.Struct(r)...)

	if validator.IsValidMonth(r.Month) && validator.IsValidYear(r.Year) {
		for i, s := range r.SelectedDates {
			field := fmt.Sprintf("selectedDates[%d]", i)
			d, ok := validator.IsValidDate(s)
			if !ok {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: "selected date must use the YYYY-MM-DD format",
				})
				continue
			}
			if d.Year() != r.Year || int(d.Month()) != r.Month {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: "selected date must fall within the submitted month",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// PresentDates parses SelectedDates. Validate must have succeeded.
func (r *SubmitAttendanceRequest) PresentDates() ([]time.Time, error) {
	dates := make([]time.Time, 0, len(r.SelectedDates))
	for _, s := range r.SelectedDates {
		d, err := calendar.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("parse selected date %q: %w", s, err)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

type SubmitAttendanceResponse struct {
	EmployeeID int64 `json:"employeeId"`
	Month      int   `json:"month"`
	Year       int   `json:"year"`
}

type MonthlyRecordResponse struct {
	ID               int64     `json:"id"`
	EmployeeID       int64     `json:"employeeId"`
	Month            int       `json:"month"`
	Year             int       `json:"year"`
	TotalDays        int       `json:"totalDays"`
	TotalWorkingDays int       `json:"totalWorkingDays"`
	WorkedDays       int       `json:"workedDays"`
	Availability     int       `json:"availability"`
	CreatedAt        time.Time `json:"createdAt"`
}

func NewMonthlyRecordResponse(m MonthlyRecord) MonthlyRecordResponse {
	return MonthlyRecordResponse{
		ID:               m.ID,
		EmployeeID:       m.EmployeeID,
		Month:            m.Month,
		Year:             m.Year,
		TotalDays:        m.TotalDays,
		TotalWorkingDays: m.TotalWorkingDays,
		WorkedDays:       m.WorkedDays,
		Availability:     m.Availability,
		CreatedAt:        m.CreatedAt,
	}
}

type EmployeeAttendanceResponse struct {
	AttendanceID     int64  `json:"attendanceId"`
	EmployeeID       int64  `json:"employeeId"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Department       string `json:"department"`
	Month            int    `json:"month"`
	Year             int    `json:"year"`
	TotalDays        int    `json:"totalDays"`
	TotalWorkingDays int    `json:"totalWorkingDays"`
	WorkedDays       int    `json:"workedDays"`
	Availability     int    `json:"availability"`
}

// ========================================
// PERIOD DTOs
// ========================================

// EmployeeMonthRequest addresses one employee's month.
type EmployeeMonthRequest struct {
	EmployeeID int64 `json:"employeeId"`
	Month      int   `json:"month"`
	Year       int   `json:"year"`
}

func (r *EmployeeMonthRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId is required",
		})
	}

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

type PresentDatesResponse struct {
	EmployeeID int64    `json:"employeeId"`
	Month      int      `json:"month"`
	Year       int      `json:"year"`
	Dates      []string `json:"dates"`
}

type WeeklySummaryResponse struct {
	WeekNumber       int    `json:"weekNumber"`
	Start            string `json:"start"`
	End              string `json:"end"`
	TotalWorkingDays int    `json:"totalWorkingDays"`
	WorkedDays       int    `json:"workedDays"`
	Availability     int    `json:"availability"`
}

func NewWeeklySummaryResponse(s WeeklySnapshot) WeeklySummaryResponse {
	return WeeklySummaryResponse{
		WeekNumber:       s.WeekNumber,
		Start:            s.WeekStart.Format(calendar.DateLayout),
		End:              s.WeekEnd.Format(calendar.DateLayout),
		TotalWorkingDays: s.TotalWorkingDays,
		WorkedDays:       s.WorkedDays,
		Availability:     s.Availability,
	}
}

// ========================================
// CORRECTION DTOs
// ========================================

// CorrectWeekRequest replaces the present days of one week. The period comes from
// the query string, the week and count from the body.
type CorrectWeekRequest struct {
	EmployeeMonthRequest
	WeekNumber int `json:"weekNumber"`
	WorkedDays int `json:"workedDays"`
}

func (r *CorrectWeekRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := r.EmployeeMonthRequest.Validate(); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	if r.WorkedDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "workedDays",
			Message: "workedDays cannot be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateAttendanceRequest is the admin partial update of a monthly record.
// Only the fields listed here may be changed.
type UpdateAttendanceRequest struct {
	ID         int64   `json:"-"`
	WorkedDays *int    `json:"workedDays,omitempty"`
	Department *string `json:"department,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.WorkedDays == nil && r.Department == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "request",
			Message: "at least one of workedDays or department is required",
		})
	}

	if r.WorkedDays != nil && *r.WorkedDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "workedDays",
			Message: "workedDays cannot be negative",
		})
	}

	if r.Department != nil && validator.IsEmpty(*r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department cannot be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// EVENTS
// ========================================

const (
	EventSubmitted     = "attendance.submitted"
	EventWeekCorrected = "attendance.week_corrected"
	EventRecordUpdated = "attendance.record_updated"
	EventRecordDeleted = "attendance.record_deleted"
)

// Event describes a committed change to an employee's month.
type Event struct {
	Type             string    `json:"type"`
	RecordID         int64     `json:"recordId"`
	EmployeeID       int64     `json:"employeeId"`
	Month            int       `json:"month"`
	Year             int       `json:"year"`
	WeekNumber       int       `json:"weekNumber,omitempty"`
	TotalWorkingDays int       `json:"totalWorkingDays"`
	WorkedDays       int       `json:"workedDays"`
	Availability     int       `json:"availability"`
	OccurredAt       time.Time `json:"occurredAt"`
}

func NewEvent(eventType string, m MonthlyRecord) Event {
	return Event{
		Type:             eventType,
		RecordID:         m.ID,
		EmployeeID:       m.EmployeeID,
		Month:            m.Month,
		Year:             m.Year,
		TotalWorkingDays: m.TotalWorkingDays,
		WorkedDays:       m.WorkedDays,
		Availability:     m.Availability,
		OccurredAt:       time.Now().UTC(),
	}
}
