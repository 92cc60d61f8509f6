package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homes-http-service/config"
)

func TestJWTGenerateAndExtract(t *testing.T) {
	svc := NewJWTService(testConfig())

	token, err := svc.GenerateToken(42, RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, RoleUser, claims.Role)
}

func TestJWTRejectsTamperedToken(t *testing.T) {
	svc := NewJWTService(testConfig())

	token, err := svc.GenerateToken(1, RoleAdmin)
	require.NoError(t, err)

	_, err = svc.ExtractClaims(token + "x")
	assert.Error(t, err)

	_, err = svc.ExtractClaims("not.a.token")
	assert.Error(t, err)
}

func TestJWTRejectsTokenSignedWithOtherKey(t *testing.T) {
	svc := NewJWTService(testConfig())
	other := NewJWTService(&config.Config{JWTSecretKey: "another-secret"})

	token, err := other.GenerateToken(7, RoleUser)
	require.NoError(t, err)

	_, err = svc.ExtractClaims(token)
	assert.Error(t, err)
}
