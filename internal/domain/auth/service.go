package auth

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (employee.EmployeeResponse, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// EnsureAdmin creates the administrator account unless its email is already registered
	EnsureAdmin(ctx context.Context, req RegisterRequest) error
}
