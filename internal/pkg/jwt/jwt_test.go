package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTService_InvalidDuration(t *testing.T) {
	_, err := NewJWTService("secret", "fifteen minutes")
	assert.Error(t, err)
}

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc, err := NewJWTService("test-secret", "15m")
	require.NoError(t, err)

	empID := "emp-1"
	token, expiresAt, err := svc.GenerateAccessToken("usr-1", "hr@example.com", &empID, "company-1", user.RoleManager)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(15*time.Minute).Unix(), expiresAt, 5)

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), decoded, nil)
	companyID, err := CompanyIDFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "company-1", companyID)
	assert.Equal(t, user.RoleManager, RoleFromContext(ctx))
}

func TestCompanyIDFromContext_Missing(t *testing.T) {
	_, err := CompanyIDFromContext(context.Background())
	assert.Error(t, err)

	svc, err := NewJWTService("test-secret", "1m")
	require.NoError(t, err)
	_, token, err := svc.JWTAuth().Encode(map[string]interface{}{"user_id": "u", "type": "access"})
	require.NoError(t, err)
	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	_, err = CompanyIDFromContext(jwtauth.NewContext(context.Background(), decoded, nil))
	assert.ErrorIs(t, err, ErrMissingCompanyClaim)
	assert.Equal(t, user.Role(""), RoleFromContext(context.Background()))
}
