package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("you are not allowed to access this resource")
	ErrAdminRequired      = errors.New("admin privilege required")
)
