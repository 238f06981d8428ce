package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, validator.ValidationErrors{{Field: name, Message: name + " must be a positive integer"}}
	}
	return id, nil
}

// periodQuery reads the month and year query parameters. Range checks are left to the DTOs.
func periodQuery(r *http.Request) (month, year int, err error) {
	var errs validator.ValidationErrors

	query := r.URL.Query()
	month, convErr := strconv.Atoi(query.Get("month"))
	if convErr != nil {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be a number"})
	}
	year, convErr = strconv.Atoi(query.Get("year"))
	if convErr != nil {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be a number"})
	}

	if len(errs) > 0 {
		return 0, 0, errs
	}
	return month, year, nil
}

// employeeMonthQuery reads employeeId, month and year from the query string.
func employeeMonthQuery(r *http.Request) (employeeID int64, month, year int, err error) {
	employeeID, convErr := strconv.ParseInt(r.URL.Query().Get("employeeId"), 10, 64)
	if convErr != nil {
		return 0, 0, 0, validator.ValidationErrors{{Field: "employeeId", Message: "employeeId must be a number"}}
	}
	month, year, err = periodQuery(r)
	if err != nil {
		return 0, 0, 0, err
	}
	return employeeID, month, year, nil
}
