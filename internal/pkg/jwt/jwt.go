package jwt

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenTypeAccess = "access"

type Service interface {
	GenerateAccessToken(employeeID int64, email string, role employee.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime time.Duration
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime time.Duration) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(employeeID int64, email string, role employee.Role) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenExpirationTime).Unix()

	claims := map[string]interface{}{
		"jti":         uuid.NewString(),
		"sub":         strconv.FormatInt(employeeID, 10),
		"employee_id": strconv.FormatInt(employeeID, 10),
		"email":       email,
		"role":        string(role),
		"type":        tokenTypeAccess,
		"exp":         expiresAt,
	}
	jwtauth.SetIssuedNow(claims)

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// Claims are the identity claims carried by an access token.
type Claims struct {
	EmployeeID int64
	Email      string
	Role       employee.Role
}

func (c Claims) IsAdmin() bool {
	return c.Role == employee.RoleAdmin
}

// ClaimsFromContext reads the identity verified by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, raw, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, err
	}
	return ParseClaims(raw)
}

// ParseClaims validates and converts a decoded claim map.
func ParseClaims(raw map[string]interface{}) (Claims, error) {
	tokenType, ok := raw["type"].(string)
	if !ok || tokenType != tokenTypeAccess {
		return Claims{}, jwt.ErrInvalidJWT()
	}

	idStr, ok := raw["employee_id"].(string)
	if !ok {
		return Claims{}, jwt.ErrInvalidJWT()
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return Claims{}, fmt.Errorf("invalid employee_id claim: %w", err)
	}

	role, _ := raw["role"].(string)
	email, _ := raw["email"].(string)

	return Claims{
		EmployeeID: id,
		Email:      email,
		Role:       employee.Role(role),
	}, nil
}
