package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var ErrMissingCompanyClaim = errors.New("company_id claim is missing or invalid")

// TokenTypeAccess is the "type" claim of tokens accepted by the API
const TokenTypeAccess = "access"

type Service interface {
	GenerateAccessToken(userID string, email string, employeeID *string, companyID string, role user.Role) (token string, expiresAt int64, err error)
	AccessTokenTTL() time.Duration
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenTTL time.Duration
	tokenAuth      *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) AccessTokenTTL() time.Duration {
	return j.accessTokenTTL
}

// NewJWTService builds an HS256 signer. accessTokenExpirationTime is a Go duration string such as "15m".
func NewJWTService(secretKey string, accessTokenExpirationTime string) (Service, error) {
	ttl, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration %q: %w", accessTokenExpirationTime, err)
	}
	return &JWTService{
		accessTokenTTL: ttl,
		tokenAuth:      jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}, nil
}

func (j *JWTService) GenerateAccessToken(userID string, email string, employeeID *string, companyID string, role user.Role) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenTTL).Unix()

	claims := map[string]interface{}{
		"user_id":     userID,
		"email":       email,
		"employee_id": returnValueOrNil(employeeID),
		"company_id":  companyID,
		"role":        string(role),
		"type":        TokenTypeAccess,
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func returnValueOrNil(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}

// CompanyIDFromContext extracts company_id from the verified JWT claims
func CompanyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", ErrMissingCompanyClaim
	}

	return companyID, nil
}

// RoleFromContext extracts the role claim, empty when absent
func RoleFromContext(ctx context.Context) user.Role {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return ""
	}
	role, _ := claims["role"].(string)
	return user.Role(role)
}
