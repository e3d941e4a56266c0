package jwt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("test-secret", "15m")

	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", "emp-1", "comp-1", true)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, int64(0))

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "emp-1", claims["employee_id"])
	assert.Equal(t, "comp-1", claims["company_id"])
	assert.Equal(t, true, claims["is_admin"])
}

func TestGenerateAccessToken_InvalidExpiration(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("test-secret", "not-a-duration")

	_, _, err := svc.GenerateAccessToken("user-1", "emp-1", "comp-1", false)
	assert.Error(t, err)
}
