package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name: "validation",
			err: validator.ValidationErrors{
				{Field: "totalWorkingDays", Message: "Total working days must be greater than 0"},
				{Field: "month", Message: "month must be between 1 and 12"},
			},
			status:  http.StatusBadRequest,
			code:    "VALIDATION_ERROR",
			message: "Total working days must be greater than 0",
		},
		{name: "employee not found", err: employee.ErrEmployeeNotFound, status: http.StatusNotFound, code: "NOT_FOUND", message: "Employee not found"},
		{name: "wrapped record not found", err: fmt.Errorf("load: %w", attendance.ErrMonthlyRecordNotFound), status: http.StatusNotFound, code: "NOT_FOUND", message: "Attendance not found"},
		{name: "invalid week", err: attendance.ErrInvalidWeekNumber, status: http.StatusBadRequest, code: "INVALID_ARGUMENT", message: "Invalid week number"},
		{name: "busy month", err: attendance.ErrConcurrentModification, status: http.StatusConflict, code: "CONFLICT"},
		{name: "duplicate email", err: employee.ErrEmailExists, status: http.StatusConflict, code: "CONFLICT"},
		{name: "bad credentials", err: auth.ErrInvalidCredentials, status: http.StatusUnauthorized, code: "UNAUTHORIZED", message: "invalid email or password"},
		{name: "forbidden", err: auth.ErrForbidden, status: http.StatusForbidden, code: "FORBIDDEN"},
		{name: "unknown", err: errors.New("pq: connection refused"), status: http.StatusInternalServerError, code: "INTERNAL_SERVER_ERROR", message: "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, body.Error.Message)
			}
		})
	}
}

func TestFile(t *testing.T) {
	rec := httptest.NewRecorder()

	File(rec, "attendance-2025-01.xlsx", "application/octet-stream", []byte("abc"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="attendance-2025-01.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "3", rec.Header().Get("Content-Length"))
	assert.Equal(t, "abc", rec.Body.String())
}
