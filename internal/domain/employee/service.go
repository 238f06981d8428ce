package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// GetEmployee retrieves a single employee profile by ID
	GetEmployee(ctx context.Context, id int64) (EmployeeResponse, error)

	// UpdateDepartment moves an employee to another department
	UpdateDepartment(ctx context.Context, req UpdateDepartmentRequest) (EmployeeResponse, error)

	// ListEmployees lists every employee ordered by ID (admin only)
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)
}
