package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewEmployeeRepository(db)
	ctx := context.Background()

	created := createTestEmployee(t, db, "  Staff@Example.com ")
	assert.NotZero(t, created.ID)
	assert.Equal(t, "staff@example.com", created.Email)

	byEmail, err := repo.GetByEmail(ctx, "STAFF@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	exists, err := repo.ExistsByEmail(ctx, "staff@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.GetByID(ctx, created.ID+100)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	createTestEmployee(t, db, "dup@example.com")

	_, err := postgresql.NewEmployeeRepository(db).Create(context.Background(), employee.Employee{
		FirstName: "Other", FullName: "Other", Email: "DUP@example.com",
		PasswordHash: "x", Role: employee.RoleEmployee,
	})
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestEmployeeRepository_UpdateDepartmentAndList(t *testing.T) {
	db := newTestDB(t)
	repo := postgresql.NewEmployeeRepository(db)
	ctx := context.Background()

	first := createTestEmployee(t, db, "a@example.com")
	createTestEmployee(t, db, "b@example.com")

	updated, err := repo.UpdateDepartment(ctx, first.ID, "Finance")
	require.NoError(t, err)
	assert.Equal(t, "Finance", updated.Department)

	_, err = repo.UpdateDepartment(ctx, 9999, "Finance")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
}
