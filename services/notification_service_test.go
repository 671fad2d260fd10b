package services

import (
	"strconv"
	"testing"

	"estate-management-service/models"

	"github.com/stretchr/testify/assert"
)

func TestNotificationsLimitedToRecentTwenty(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	svc := NewNotificationService(db, testConfig())

	for i := 0; i < 25; i++ {
		svc.Create(f.Admin.ID, "Notice "+strconv.Itoa(i), "body", "")
	}

	notifications, err := svc.GetUserNotifications(f.session())
	assert.NoError(t, err)
	assert.Len(t, notifications, 20)
	// 类型为空时落为INFO
	assert.Equal(t, models.NotificationTypeInfo, notifications[0].Type)
}

func TestMarkAsReadOnlyTouchesOwnNotifications(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	g := seedFixture(t, db, "globex")
	svc := NewNotificationService(db, testConfig())

	svc.Create(f.Admin.ID, "Rent received", "body", models.NotificationTypeSuccess)

	var notification models.Notification
	assert.NoError(t, db.Where("user_id = ?", f.Admin.ID).First(&notification).Error)
	assert.False(t, notification.Read)

	// 别人标记不生效
	assert.NoError(t, svc.MarkAsRead(g.session(), notification.ID))
	assert.NoError(t, db.First(&notification, notification.ID).Error)
	assert.False(t, notification.Read)

	assert.NoError(t, svc.MarkAsRead(f.session(), notification.ID))
	assert.NoError(t, db.First(&notification, notification.ID).Error)
	assert.True(t, notification.Read)
}

func TestMarkAllAsRead(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	svc := NewNotificationService(db, testConfig())

	svc.Create(f.Admin.ID, "One", "body", models.NotificationTypeInfo)
	svc.Create(f.Admin.ID, "Two", "body", models.NotificationTypeWarning)

	assert.NoError(t, svc.MarkAllAsRead(f.session()))

	var unread int64
	assert.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ? AND `read` = ?", f.Admin.ID, false).
		Count(&unread).Error)
	assert.Zero(t, unread)
}

func TestAuditLogScopedToOrganization(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	g := seedFixture(t, db, "globex")
	svc := NewAuditService(db, testConfig())

	svc.LogActivity(f.session(), "CREATE", "property", "1", "created Riverside Towers")
	svc.LogActivity(g.session(), "DELETE", "lease", "9", "ended lease")

	// 无会话的写入被忽略
	svc.LogActivity(nil, "CREATE", "property", "2", "")

	logs, err := svc.GetAuditLogs(f.session(), 50)
	assert.NoError(t, err)
	assert.Len(t, logs, 1)
	assert.Equal(t, "CREATE", logs[0].Action)
	assert.Equal(t, f.Admin.ID, logs[0].UserID)
}
