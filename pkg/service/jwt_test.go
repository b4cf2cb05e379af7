package service

import (
	"testing"
	"time"

	apperrors "backoffice-system/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestJWTService() JWTService {
	return NewJWTService("test-secret", time.Minute, time.Hour, zap.NewNop())
}

func TestGenerateAndValidateTokens(t *testing.T) {
	svc := newTestJWTService()

	access, refresh, err := svc.GenerateTokens(42, "A. Mehta", 3)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "A. Mehta", claims.UserName)
	assert.Equal(t, uint64(3), claims.RoleID)
	assert.False(t, claims.IsRefreshToken)

	refreshClaims, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, refreshClaims.IsRefreshToken)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := newTestJWTService()
	other := NewJWTService("another-secret", time.Minute, time.Hour, zap.NewNop())

	access, _, err := svc.GenerateTokens(1, "user", 1)
	require.NoError(t, err)

	_, err = other.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestJWTService()

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, -time.Minute, zap.NewNop())

	access, _, err := svc.GenerateTokens(1, "user", 1)
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.Error(t, err)
}
