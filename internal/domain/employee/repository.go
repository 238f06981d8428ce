package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateDepartment(ctx context.Context, id int64, department string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
}
