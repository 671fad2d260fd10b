package services

import (
	"sync"
	"testing"
	"time"

	"estate-management-service/config"
	"estate-management-service/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.Property{},
		&models.Unit{},
		&models.Tenant{},
		&models.Lease{},
		&models.Payment{},
		&models.Invoice{},
		&models.Expense{},
		&models.MaintenanceRequest{},
		&models.MaintenanceSchedule{},
		&models.Vendor{},
		&models.Task{},
		&models.Conversation{},
		&models.Message{},
		&models.Notification{},
		&models.Document{},
		&models.AuditLog{},
	)
	assert.NoError(t, err)
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey: "test-secret",
	}
}

// sentEmail 记录一封已发送邮件
type sentEmail struct {
	To      string
	Subject string
	Body    string
}

// fakeEmailService 测试用邮件服务，可配置为发送失败。
// 提醒任务会并发调用Send，记录需要加锁。
type fakeEmailService struct {
	mu   sync.Mutex
	fail bool
	sent []sentEmail
}

func (f *fakeEmailService) Send(to string, subject string, htmlBody string) bool {
	if f.fail {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEmail{To: to, Subject: subject, Body: htmlBody})
	return true
}

// subjects 返回已发送邮件的主题集合
func (f *fakeEmailService) subjects() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, e := range f.sent {
		out = append(out, e.Subject)
	}
	return out
}

// fixture 一套完整的测试数据：组织、管理员、物业、单元、承租人
type fixture struct {
	Organization models.Organization
	Admin        models.User
	Property     models.Property
	Unit         models.Unit
	Tenant       models.Tenant
}

func seedFixture(t *testing.T, db *gorm.DB, slug string) *fixture {
	f := &fixture{}

	f.Organization = models.Organization{Name: slug, Slug: slug}
	assert.NoError(t, db.Create(&f.Organization).Error)

	f.Admin = models.User{
		Email:          "admin-" + slug + "@example.com",
		Password:       "secret123",
		FirstName:      "Admin",
		LastName:       slug,
		Role:           models.RoleSuperAdmin,
		OrganizationID: f.Organization.ID,
	}
	assert.NoError(t, db.Create(&f.Admin).Error)

	f.Property = models.Property{
		Name:           "Property " + slug,
		Address:        "1 Main St",
		City:           "Shanghai",
		Country:        "China",
		Type:           models.PropertyTypeResidential,
		OrganizationID: f.Organization.ID,
	}
	assert.NoError(t, db.Create(&f.Property).Error)

	f.Unit = models.Unit{
		UnitNumber: "101",
		PropertyID: f.Property.ID,
		Bedrooms:   2,
		Bathrooms:  1,
		MarketRent: decimal.NewFromInt(4500),
		Status:     models.UnitStatusVacant,
	}
	assert.NoError(t, db.Create(&f.Unit).Error)

	f.Tenant = models.Tenant{
		FirstName: "Tenant",
		LastName:  slug,
		Email:     "tenant-" + slug + "@example.com",
		Phone:     "13800138000",
	}
	assert.NoError(t, db.Create(&f.Tenant).Error)

	return f
}

func (f *fixture) session() *Session {
	return &Session{
		UserID:         f.Admin.ID,
		OrganizationID: f.Organization.ID,
		Role:           f.Admin.Role,
		Email:          f.Admin.Email,
	}
}

// seedLease 为fixture建立活跃租约并将单元置为OCCUPIED
func seedLease(t *testing.T, db *gorm.DB, f *fixture, rent int64) models.Lease {
	lease := models.Lease{
		TenantID:      f.Tenant.ID,
		UnitID:        f.Unit.ID,
		StartDate:     time.Now().AddDate(0, -1, 0),
		EndDate:       time.Now().AddDate(1, 0, 0),
		RentAmount:    decimal.NewFromInt(rent),
		DepositAmount: decimal.NewFromInt(rent * 2),
		IsActive:      true,
	}
	assert.NoError(t, db.Create(&lease).Error)
	assert.NoError(t, db.Model(&models.Unit{}).
		Where("id = ?", f.Unit.ID).
		Update("status", models.UnitStatusOccupied).Error)
	return lease
}
