package auth

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-for-jwt"

type memoryEmployeeRepo struct {
	byID map[int64]employee.Employee
}

func newMemoryEmployeeRepo() *memoryEmployeeRepo {
	return &memoryEmployeeRepo{byID: make(map[int64]employee.Employee)}
}

func (r *memoryEmployeeRepo) GetByID(_ context.Context, id int64) (employee.Employee, error) {
	e, ok := r.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *memoryEmployeeRepo) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	for _, e := range r.byID {
		if e.Email == employee.NormalizeEmail(email) {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *memoryEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	if _, err := r.GetByEmail(ctx, e.Email); err == nil {
		return employee.Employee{}, employee.ErrEmailExists
	}
	e.ID = int64(len(r.byID) + 1)
	e.CreatedAt = time.Now()
	r.byID[e.ID] = e
	return e, nil
}

func (r *memoryEmployeeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *memoryEmployeeRepo) UpdateDepartment(_ context.Context, id int64, department string) (employee.Employee, error) {
	e := r.byID[id]
	e.Department = department
	r.byID[id] = e
	return e, nil
}

func (r *memoryEmployeeRepo) List(_ context.Context) ([]employee.Employee, error) {
	list := make([]employee.Employee, 0, len(r.byID))
	for _, e := range r.byID {
		list = append(list, e)
	}
	return list, nil
}

func newAuthTestService() (*AuthServiceImpl, *memoryEmployeeRepo, jwt.Service) {
	repo := newMemoryEmployeeRepo()
	jwtService := jwt.NewJWTService(testSecret, time.Hour)
	svc := NewAuthService(repo, jwtService).(*AuthServiceImpl)
	svc.bcryptCost = bcrypt.MinCost
	return svc, repo, jwtService
}

func validRegisterRequest() auth.RegisterRequest {
	return auth.RegisterRequest{
		FirstName:  "Jane",
		LastName:   "Doe",
		Email:      "Jane.Doe@Example.com",
		Password:   "password123",
		Department: "Engineering",
	}
}

// Test Register stores a hashed password and a normalized email
func TestAuthService_Register_Success(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newAuthTestService()

	// Act
	resp, err := svc.Register(ctx, validRegisterRequest())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", resp.FullName)
	assert.Equal(t, "jane.doe@example.com", resp.Email)
	assert.Equal(t, employee.RoleEmployee, resp.Role)

	stored := repo.byID[resp.ID]
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
}

// Test Register rejects an email that is already taken
func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthTestService()

	_, err := svc.Register(ctx, validRegisterRequest())
	require.NoError(t, err)

	req := validRegisterRequest()
	req.Email = "JANE.DOE@example.com"
	_, err = svc.Register(ctx, req)

	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _ := newAuthTestService()

	req := validRegisterRequest()
	req.Password = "short"
	req.Email = "not-an-email"
	_, err := svc.Register(context.Background(), req)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

// Test Login with valid credentials
func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	svc, _, jwtService := newAuthTestService()

	registered, err := svc.Register(ctx, validRegisterRequest())
	require.NoError(t, err)

	// Act
	resp, err := svc.Login(ctx, auth.LoginRequest{Email: "jane.doe@example.com", Password: "password123"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, registered.ID, resp.EmployeeID)
	assert.Equal(t, "Engineering", resp.Department)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Greater(t, resp.ExpiresAt, time.Now().Unix())

	token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	claims, err := jwt.ParseClaims(token.PrivateClaims())
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.EmployeeID)
	assert.Equal(t, employee.RoleEmployee, claims.Role)
}

// Test Login with invalid password
func TestAuthService_Login_InvalidPassword(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthTestService()

	_, err := svc.Register(ctx, validRegisterRequest())
	require.NoError(t, err)

	_, err = svc.Login(ctx, auth.LoginRequest{Email: "jane.doe@example.com", Password: "wrong-password"})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

// Test Login with unknown email
func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _, _ := newAuthTestService()

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "nobody@example.com", Password: "password123"})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newAuthTestService()

	req := auth.RegisterRequest{
		FirstName:  "System",
		LastName:   "Admin",
		Email:      "admin@example.com",
		Password:   "change-me-now",
		Department: "Administration",
	}

	require.NoError(t, svc.EnsureAdmin(ctx, req))
	require.NoError(t, svc.EnsureAdmin(ctx, req))

	require.Len(t, repo.byID, 1)
	admin, err := repo.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, employee.RoleAdmin, admin.Role)

	resp, err := svc.Login(ctx, auth.LoginRequest{Email: "admin@example.com", Password: "change-me-now"})
	require.NoError(t, err)
	assert.Equal(t, employee.RoleAdmin, resp.Role)
}
