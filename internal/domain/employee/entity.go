package employee

import (
	"strings"
	"time"
)

type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

type Employee struct {
	ID           int64
	FirstName    string
	LastName     string
	FullName     string
	Email        string
	PasswordHash string
	Department   string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if the employee may use administrative endpoints
func (e *Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}

// JoinName builds the display name from first and last name.
func JoinName(firstName, lastName string) string {
	return strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
}

// NormalizeEmail lowercases and trims an email address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
