package employee

import "context"

// EmployeeRepository defines data access for employees.
type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUsername(ctx context.Context, username string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
}
