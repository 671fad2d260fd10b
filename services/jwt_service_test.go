package services

import (
	"testing"

	"estate-management-service/config"
	"estate-management-service/models"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(testConfig())

	token, err := svc.GenerateToken(42, 7, models.RolePropertyManager, "manager@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ExtractClaims(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, uint(7), claims.OrganizationID)
	assert.Equal(t, models.RolePropertyManager, claims.Role)
	assert.Equal(t, "manager@example.com", claims.Email)
}

func TestExtractClaimsRejectsTamperedToken(t *testing.T) {
	svc := NewJWTService(testConfig())

	token, err := svc.GenerateToken(42, 7, models.RoleTenant, "tenant@example.com")
	assert.NoError(t, err)

	_, err = svc.ExtractClaims(token + "x")
	assert.Error(t, err)

	// 换密钥签出的令牌不被接受
	other := NewJWTService(&config.Config{JWTSecretKey: "another-secret"})
	foreign, err := other.GenerateToken(1, 1, models.RoleTenant, "tenant@example.com")
	assert.NoError(t, err)

	_, err = svc.ExtractClaims(foreign)
	assert.Error(t, err)
}
