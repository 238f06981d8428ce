package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	employee.EmployeeRepository
	jwt.Service
	bcryptCost int
}

func NewAuthService(employeeRepository employee.EmployeeRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepository,
		Service:            jwtService,
		bcryptCost:         bcrypt.DefaultCost,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, registerReq auth.RegisterRequest) (employee.EmployeeResponse, error) {
	if err := registerReq.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := a.createEmployee(ctx, registerReq, employee.RoleEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee registered", "employee_id", created.ID, "department", created.Department)
	return employee.NewEmployeeResponse(created), nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.LoginResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get employee by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	accessToken, expiresAt, err := a.Service.GenerateAccessToken(emp.ID, emp.Email, emp.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.LoginResponse{
		EmployeeID:  emp.ID,
		FullName:    emp.FullName,
		Email:       emp.Email,
		Department:  emp.Department,
		Role:        emp.Role,
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	}, nil
}

// EnsureAdmin implements auth.AuthService.
func (a *AuthServiceImpl) EnsureAdmin(ctx context.Context, req auth.RegisterRequest) error {
	exists, err := a.EmployeeRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if exists {
		slog.Debug("Initial admin already present", "email", employee.NormalizeEmail(req.Email))
		return nil
	}

	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid initial admin: %w", err)
	}

	created, err := a.createEmployee(ctx, req, employee.RoleAdmin)
	if errors.Is(err, employee.ErrEmailExists) {
		// another instance won the race
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info("Initial admin created", "employee_id", created.ID, "email", created.Email)
	return nil
}

func (a *AuthServiceImpl) createEmployee(ctx context.Context, req auth.RegisterRequest, role employee.Role) (employee.Employee, error) {
	exists, err := a.EmployeeRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return employee.Employee{}, employee.ErrEmailExists
	}

	hashedPassword, err := a.hashPassword(req.Password)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to hash password: %w", err)
	}

	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)

	return a.EmployeeRepository.Create(ctx, employee.Employee{
		FirstName:    firstName,
		LastName:     lastName,
		FullName:     employee.JoinName(firstName, lastName),
		Email:        employee.NormalizeEmail(req.Email),
		PasswordHash: hashedPassword,
		Department:   strings.TrimSpace(req.Department),
		Role:         role,
	})
}
