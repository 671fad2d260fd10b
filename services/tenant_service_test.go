package services

import (
	"testing"
	"time"

	"estate-management-service/models"

	"github.com/stretchr/testify/assert"
)

func TestGetTenantsScopedThroughLeaseChain(t *testing.T) {
	db := setupTestDB(t)
	mine := seedFixture(t, db, "acme")
	other := seedFixture(t, db, "rival")
	seedLease(t, db, mine, 4500)
	seedLease(t, db, other, 3000)

	svc := NewTenantService(db, testConfig(), NewNoopRedisService(), &fakeEmailService{})

	tenants, err := svc.GetTenants(mine.session())
	assert.NoError(t, err)
	assert.Len(t, tenants, 1)
	assert.Equal(t, mine.Tenant.Email, tenants[0].Email)
	assert.False(t, tenants[0].HasAccount)
}

func TestGetTenantsExcludesTenantsWithoutLease(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	// f.Tenant没有租约，不应出现在列表里
	svc := NewTenantService(db, testConfig(), NewNoopRedisService(), &fakeEmailService{})

	tenants, err := svc.GetTenants(f.session())
	assert.NoError(t, err)
	assert.Len(t, tenants, 0)
}

func TestCreateTenantRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	svc := NewTenantService(db, testConfig(), NewNoopRedisService(), &fakeEmailService{})

	err := svc.CreateTenant(f.session(), &models.Tenant{
		FirstName: "Du",
		LastName:  "Plicate",
		Email:     f.Tenant.Email,
		Phone:     "13900139000",
	})
	assert.Error(t, err)
}

func TestCreateTenantAccount(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	email := &fakeEmailService{}
	svc := NewTenantService(db, testConfig(), NewNoopRedisService(), email)

	tempPassword, err := svc.CreateTenantAccount(f.session(), f.Tenant.ID, f.Tenant.Email)
	assert.NoError(t, err)
	assert.Len(t, tempPassword, 12)

	// 账号以TENANT角色创建在本组织下
	var user models.User
	assert.NoError(t, db.Where("email = ?", f.Tenant.Email).First(&user).Error)
	assert.Equal(t, models.RoleTenant, user.Role)
	assert.Equal(t, f.Organization.ID, user.OrganizationID)
	// 密码由钩子哈希，不以明文存储
	assert.NotEqual(t, tempPassword, user.Password)

	// 欢迎邮件已发出
	assert.Len(t, email.sent, 1)
	assert.Equal(t, f.Tenant.Email, email.sent[0].To)
}

func TestGetTenantsReportsAccountStatus(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	seedLease(t, db, f, 4500)
	svc := NewTenantService(db, testConfig(), NewNoopRedisService(), &fakeEmailService{})

	_, err := svc.CreateTenantAccount(f.session(), f.Tenant.ID, f.Tenant.Email)
	assert.NoError(t, err)

	tenants, err := svc.GetTenants(f.session())
	assert.NoError(t, err)
	assert.Len(t, tenants, 1)
	assert.True(t, tenants[0].HasAccount)
}

func TestCreateTenantAccountRejectsExistingUser(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	svc := NewTenantService(db, testConfig(), NewNoopRedisService(), &fakeEmailService{})

	_, err := svc.CreateTenantAccount(f.session(), f.Tenant.ID, f.Admin.Email)
	assert.Error(t, err)
}

func TestCreateTenantAccountSurvivesEmailFailure(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	svc := NewTenantService(db, testConfig(), NewNoopRedisService(), &fakeEmailService{fail: true})

	// 邮件发送失败不应阻断开户
	tempPassword, err := svc.CreateTenantAccount(f.session(), f.Tenant.ID, f.Tenant.Email)
	assert.NoError(t, err)
	assert.NotEmpty(t, tempPassword)

	var count int64
	assert.NoError(t, db.Model(&models.User{}).Where("email = ?", f.Tenant.Email).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetTenantDashboardStats(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	lease := seedLease(t, db, f, 4500)

	billing := NewBillingService(db, testConfig(), &fakeEmailService{}, NewNotificationService(db, testConfig()))
	_, err := billing.GenerateMonthlyInvoices(time.Now())
	assert.NoError(t, err)

	svc := NewTenantService(db, testConfig(), NewNoopRedisService(), &fakeEmailService{})
	session := &Session{
		UserID:         1,
		OrganizationID: f.Organization.ID,
		Role:           models.RoleTenant,
		Email:          f.Tenant.Email,
	}

	stats, err := svc.GetTenantDashboardStats(session)
	assert.NoError(t, err)
	assert.Equal(t, f.Tenant.FullName(), stats.TenantName)
	assert.True(t, stats.NextRentAmount.Equal(lease.RentAmount))
	// 余额等于待缴账单合计
	assert.True(t, stats.Balance.Equal(lease.RentAmount))
	assert.NotNil(t, stats.NextRentDate)
}

func TestGetTenantDashboardStatsWithoutTenantRecord(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	svc := NewTenantService(db, testConfig(), NewNoopRedisService(), &fakeEmailService{})

	session := &Session{
		UserID:         f.Admin.ID,
		OrganizationID: f.Organization.ID,
		Role:           models.RoleTenant,
		Email:          "nobody@example.com",
	}

	stats, err := svc.GetTenantDashboardStats(session)
	assert.NoError(t, err)
	assert.True(t, stats.Balance.IsZero())
	assert.Nil(t, stats.NextRentDate)
}
