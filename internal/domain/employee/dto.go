package employee

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type EmployeeResponse struct {
	ID         int64     `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Role       Role      `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		FullName:   e.FullName,
		Email:      e.Email,
		Department: e.Department,
		Role:       e.Role,
		CreatedAt:  e.CreatedAt,
	}
}

type UpdateDepartmentRequest struct {
	ID         int64  `json:"-"`
	Department string `json:"department" validate:"required,max=100"`
}

func (r *UpdateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	} else {
		errs = append(errs, validator.Struct(r)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
