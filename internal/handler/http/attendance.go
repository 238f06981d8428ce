package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	ListPresentDates(w http.ResponseWriter, r *http.Request)
	ListWeeks(w http.ResponseWriter, r *http.Request)
	CorrectWeek(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	ListEmployeesAttendance(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Submit implements AttendanceHandler.
func (h *attendanceHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	employeeID, err := idParam(r, "employeeId")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.SubmitAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.attendanceService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance saved successfully", result)
}

// ListByEmployee implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := idParam(r, "employeeId")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// ListPresentDates implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListPresentDates(w http.ResponseWriter, r *http.Request) {
	employeeID, err := idParam(r, "employeeId")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	month, year, err := periodQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.ListPresentDates(r.Context(), attendance.EmployeeMonthRequest{
		EmployeeID: employeeID,
		Month:      month,
		Year:       year,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListWeeks implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListWeeks(w http.ResponseWriter, r *http.Request) {
	employeeID, month, year, err := employeeMonthQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	weeks, err := h.attendanceService.ListWeeks(r.Context(), attendance.EmployeeMonthRequest{
		EmployeeID: employeeID,
		Month:      month,
		Year:       year,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, weeks)
}

// CorrectWeek implements AttendanceHandler.
func (h *attendanceHandlerImpl) CorrectWeek(w http.ResponseWriter, r *http.Request) {
	employeeID, month, year, err := employeeMonthQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.CorrectWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Correct week decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeMonthRequest = attendance.EmployeeMonthRequest{
		EmployeeID: employeeID,
		Month:      month,
		Year:       year,
	}

	if err := h.attendanceService.CorrectWeek(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Weekly attendance updated successfully", nil)
}

// ListAll implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	records, err := h.attendanceService.ListAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// ListEmployeesAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListEmployeesAttendance(w http.ResponseWriter, r *http.Request) {
	rows, err := h.attendanceService.ListEmployeesAttendance(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "recordId")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.UpdateAttendanceRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		slog.Error("Update attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", map[string]string{"body": err.Error()})
		return
	}
	req.ID = id

	result, err := h.attendanceService.UpdateRecord(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated successfully", result)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "recordId")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.attendanceService.DeleteRecord(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance deleted successfully", nil)
}
