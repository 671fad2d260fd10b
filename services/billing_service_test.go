package services

import (
	"testing"
	"time"

	"estate-management-service/models"

	"github.com/stretchr/testify/assert"
)

func TestGenerateMonthlyInvoices(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	lease := seedLease(t, db, f, 4500)
	svc := NewBillingService(db, testConfig(), &fakeEmailService{}, NewNotificationService(db, testConfig()))

	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	result, err := svc.GenerateMonthlyInvoices(now)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)

	var invoice models.Invoice
	assert.NoError(t, db.Where("lease_id = ?", lease.ID).First(&invoice).Error)
	assert.Equal(t, "2026-08", invoice.Period)
	assert.True(t, invoice.Amount.Equal(lease.RentAmount))
	assert.Equal(t, models.InvoiceStatusPending, invoice.Status)
	assert.Equal(t, "Rent for August 2026", invoice.Description)
	// 到期日为下月1日
	assert.True(t, invoice.DueDate.Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)))
}

func TestGenerateMonthlyInvoicesIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	seedLease(t, db, f, 4500)
	svc := NewBillingService(db, testConfig(), &fakeEmailService{}, NewNotificationService(db, testConfig()))

	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	_, err := svc.GenerateMonthlyInvoices(now)
	assert.NoError(t, err)

	// 同一账期重跑：全部跳过，不产生重复账单
	result, err := svc.GenerateMonthlyInvoices(now)
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Skipped)

	var count int64
	assert.NoError(t, db.Model(&models.Invoice{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// 下一个账期正常生成
	next, err := svc.GenerateMonthlyInvoices(now.AddDate(0, 1, 0))
	assert.NoError(t, err)
	assert.Equal(t, 1, next.Created)
}

func TestGenerateMonthlyInvoicesSkipsInactiveLeases(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	lease := seedLease(t, db, f, 4500)
	assert.NoError(t, db.Model(&models.Lease{}).
		Where("id = ?", lease.ID).
		Update("is_active", false).Error)

	svc := NewBillingService(db, testConfig(), &fakeEmailService{}, NewNotificationService(db, testConfig()))
	result, err := svc.GenerateMonthlyInvoices(time.Now())
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 0, result.Skipped)
}

func TestSendRentReminders(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	lease := seedLease(t, db, f, 4500)
	email := &fakeEmailService{}
	svc := NewBillingService(db, testConfig(), email, NewNotificationService(db, testConfig()))

	now := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
	upcoming := models.Invoice{
		LeaseID: lease.ID,
		Period:  "2026-08",
		Amount:  lease.RentAmount,
		DueDate: now.AddDate(0, 0, 3),
		Status:  models.InvoiceStatusPending,
	}
	overdue := models.Invoice{
		LeaseID: lease.ID,
		Period:  "2026-07",
		Amount:  lease.RentAmount,
		DueDate: now.AddDate(0, 0, -1),
		Status:  models.InvoiceStatusPending,
	}
	paid := models.Invoice{
		LeaseID: lease.ID,
		Period:  "2026-06",
		Amount:  lease.RentAmount,
		DueDate: now.AddDate(0, 0, 3),
		Status:  models.InvoiceStatusPaid,
	}
	assert.NoError(t, db.Create(&upcoming).Error)
	assert.NoError(t, db.Create(&overdue).Error)
	assert.NoError(t, db.Create(&paid).Error)

	result, err := svc.SendRentReminders(now)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.UpcomingSent)
	assert.Equal(t, 1, result.OverdueSent)
	assert.Empty(t, result.Errors)

	// 两封提醒邮件，PAID账单不提醒；发送并发完成，主题不保证顺序
	subjects := email.subjects()
	assert.Len(t, subjects, 2)
	assert.Contains(t, subjects, "Rent Due Soon")
	assert.Contains(t, subjects, "Rent Overdue")
}

func TestSendRentRemindersNotifiesPortalUser(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	lease := seedLease(t, db, f, 4500)

	// 承租人已有门户账号
	portalUser := models.User{
		Email:          f.Tenant.Email,
		Password:       "secret123",
		FirstName:      f.Tenant.FirstName,
		LastName:       f.Tenant.LastName,
		Role:           models.RoleTenant,
		OrganizationID: f.Organization.ID,
	}
	assert.NoError(t, db.Create(&portalUser).Error)

	now := time.Now()
	assert.NoError(t, db.Create(&models.Invoice{
		LeaseID: lease.ID,
		Period:  "2026-08",
		Amount:  lease.RentAmount,
		DueDate: now.AddDate(0, 0, -1),
		Status:  models.InvoiceStatusPending,
	}).Error)

	svc := NewBillingService(db, testConfig(), &fakeEmailService{}, NewNotificationService(db, testConfig()))
	result, err := svc.SendRentReminders(now)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.OverdueSent)

	var notification models.Notification
	assert.NoError(t, db.Where("user_id = ?", portalUser.ID).First(&notification).Error)
	assert.Equal(t, models.NotificationTypeWarning, notification.Type)
}

func TestSendRentRemindersIsolatesEmailFailures(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	lease := seedLease(t, db, f, 4500)

	now := time.Now()
	assert.NoError(t, db.Create(&models.Invoice{
		LeaseID: lease.ID,
		Period:  "2026-08",
		Amount:  lease.RentAmount,
		DueDate: now.AddDate(0, 0, 3),
		Status:  models.InvoiceStatusPending,
	}).Error)

	// 邮件通道整体故障：任务不报错，失败只进入Errors
	svc := NewBillingService(db, testConfig(), &fakeEmailService{fail: true}, NewNotificationService(db, testConfig()))
	result, err := svc.SendRentReminders(now)
	assert.NoError(t, err)
	assert.Equal(t, 0, result.UpcomingSent)
	assert.Len(t, result.Errors, 1)
}

func TestSendRentRemindersCountsOnlyEmailDelivery(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	lease := seedLease(t, db, f, 4500)

	// 站内通知能送达（有门户账号），但邮件通道故障
	portalUser := models.User{
		Email:          f.Tenant.Email,
		Password:       "secret123",
		FirstName:      f.Tenant.FirstName,
		LastName:       f.Tenant.LastName,
		Role:           models.RoleTenant,
		OrganizationID: f.Organization.ID,
	}
	assert.NoError(t, db.Create(&portalUser).Error)

	now := time.Now()
	assert.NoError(t, db.Create(&models.Invoice{
		LeaseID: lease.ID,
		Period:  "2026-08",
		Amount:  lease.RentAmount,
		DueDate: now.AddDate(0, 0, -1),
		Status:  models.InvoiceStatusPending,
	}).Error)

	svc := NewBillingService(db, testConfig(), &fakeEmailService{fail: true}, NewNotificationService(db, testConfig()))
	result, err := svc.SendRentReminders(now)
	assert.NoError(t, err)

	// 仅站内通知送达不算发送成功
	assert.Equal(t, 0, result.OverdueSent)
	assert.Len(t, result.Errors, 1)

	var count int64
	assert.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ?", portalUser.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
