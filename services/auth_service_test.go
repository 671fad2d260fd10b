package services

import (
	"testing"

	"estate-management-service/models"
	"estate-management-service/utils"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) InterfaceAuthService {
	cfg := testConfig()
	return NewAuthService(db, cfg, NewJWTService(cfg))
}

func TestRegisterCreatesOrganizationAndSuperAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	user, err := svc.Register("owner@example.com", "secret123", "Jane", "Doe", "Sunrise Estates")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleSuperAdmin, user.Role)

	var organization models.Organization
	assert.NoError(t, db.First(&organization, user.OrganizationID).Error)
	assert.Equal(t, "Sunrise Estates", organization.Name)
	assert.Equal(t, "sunrise-estates", organization.Slug)

	// 密码由钩子哈希存储
	var stored models.User
	assert.NoError(t, db.First(&stored, user.ID).Error)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.True(t, utils.CheckPasswordHash("secret123", stored.Password))
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register("owner@example.com", "short7!", "Jane", "Doe", "Sunrise Estates")
	assert.Error(t, err)

	var count int64
	assert.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register("owner@example.com", "secret123", "Jane", "Doe", "First Org")
	assert.NoError(t, err)

	_, err = svc.Register("owner@example.com", "secret123", "John", "Doe", "Second Org")
	assert.Error(t, err)

	// 失败的注册不留下半个组织
	var count int64
	assert.NoError(t, db.Model(&models.Organization{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLoginReturnsTokenWithSessionClaims(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	jwtService := NewJWTService(cfg)
	svc := NewAuthService(db, cfg, jwtService)

	registered, err := svc.Register("owner@example.com", "secret123", "Jane", "Doe", "Sunrise Estates")
	assert.NoError(t, err)

	user, token, err := svc.Login("owner@example.com", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)

	claims, err := jwtService.ExtractClaims(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.OrganizationID, claims.OrganizationID)
	assert.Equal(t, models.RoleSuperAdmin, claims.Role)
	assert.Equal(t, "owner@example.com", claims.Email)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register("owner@example.com", "secret123", "Jane", "Doe", "Sunrise Estates")
	assert.NoError(t, err)

	_, _, err = svc.Login("owner@example.com", "wrong-password")
	assert.Error(t, err)

	_, _, err = svc.Login("nobody@example.com", "secret123")
	assert.Error(t, err)
}

func TestUpdateOrganizationRoleGated(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	svc := newAuthService(db)

	session := f.session()
	assert.NoError(t, svc.UpdateOrganization(session, "New Name"))

	var organization models.Organization
	assert.NoError(t, db.First(&organization, f.Organization.ID).Error)
	assert.Equal(t, "New Name", organization.Name)

	// 租户角色无权改组织
	tenantSession := &Session{
		UserID:         f.Admin.ID,
		OrganizationID: f.Organization.ID,
		Role:           models.RoleTenant,
		Email:          f.Admin.Email,
	}
	assert.Error(t, svc.UpdateOrganization(tenantSession, "Hijacked"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "sunrise-estates", Slugify("Sunrise Estates"))
	assert.Equal(t, "acme-2026", Slugify("  ACME --- 2026!  "))
	assert.Equal(t, "a-b-c", Slugify("A.B.C"))
}
