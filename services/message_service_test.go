package services

import (
	"testing"

	"estate-management-service/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newMessageService(db *gorm.DB) InterfaceMessageService {
	return NewMessageService(db, testConfig(), NewNoopRedisService())
}

func seedOrgUser(t *testing.T, db *gorm.DB, organizationID uint, email, role string) *models.User {
	t.Helper()
	user := &models.User{
		Email:          email,
		Password:       "secret123",
		FirstName:      "Test",
		LastName:       "User",
		Role:           role,
		OrganizationID: organizationID,
	}
	assert.NoError(t, db.Create(user).Error)
	return user
}

func TestStartConversationDeduplicates(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	other := seedOrgUser(t, db, f.Organization.ID, "staff-acme@example.com", models.RoleMaintenanceStaff)
	svc := newMessageService(db)

	first, err := svc.StartConversation(f.session(), other.ID)
	assert.NoError(t, err)

	second, err := svc.StartConversation(f.session(), other.ID)
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// 对方发起也命中同一会话
	otherSession := &Session{
		UserID:         other.ID,
		OrganizationID: f.Organization.ID,
		Role:           other.Role,
		Email:          other.Email,
	}
	third, err := svc.StartConversation(otherSession, f.Admin.ID)
	assert.NoError(t, err)
	assert.Equal(t, first.ID, third.ID)

	var count int64
	assert.NoError(t, db.Model(&models.Conversation{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestStartConversationRejectsSelfAndForeignUser(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	g := seedFixture(t, db, "globex")
	svc := newMessageService(db)

	_, err := svc.StartConversation(f.session(), f.Admin.ID)
	assert.Error(t, err)

	// 跨组织用户不可见
	_, err = svc.StartConversation(f.session(), g.Admin.ID)
	assert.Error(t, err)
}

func TestSendMessageCreatesConversationImplicitly(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	other := seedOrgUser(t, db, f.Organization.ID, "staff-acme@example.com", models.RoleMaintenanceStaff)
	svc := newMessageService(db)

	message, err := svc.SendMessage(f.session(), other.ID, "水管修好了吗")
	assert.NoError(t, err)
	assert.NotZero(t, message.ConversationID)
	assert.Equal(t, f.Admin.ID, message.SenderID)

	messages, err := svc.GetMessages(f.session(), message.ConversationID)
	assert.NoError(t, err)
	assert.Len(t, messages, 1)
	assert.Equal(t, "水管修好了吗", messages[0].Content)

	// 后续消息复用同一会话
	reply, err := svc.SendMessage(f.session(), other.ID, "还没有")
	assert.NoError(t, err)
	assert.Equal(t, message.ConversationID, reply.ConversationID)
}

func TestSendMessageRejectsEmptyContent(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	other := seedOrgUser(t, db, f.Organization.ID, "staff-acme@example.com", models.RoleMaintenanceStaff)
	svc := newMessageService(db)

	_, err := svc.SendMessage(f.session(), other.ID, "")
	assert.Error(t, err)
}

func TestGetMessagesHidesForeignConversation(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	other := seedOrgUser(t, db, f.Organization.ID, "staff-acme@example.com", models.RoleMaintenanceStaff)
	outsider := seedOrgUser(t, db, f.Organization.ID, "outsider-acme@example.com", models.RoleFinanceManager)
	svc := newMessageService(db)

	message, err := svc.SendMessage(f.session(), other.ID, "机密内容")
	assert.NoError(t, err)

	outsiderSession := &Session{
		UserID:         outsider.ID,
		OrganizationID: f.Organization.ID,
		Role:           outsider.Role,
		Email:          outsider.Email,
	}
	messages, err := svc.GetMessages(outsiderSession, message.ConversationID)
	assert.NoError(t, err)
	assert.Empty(t, messages)
}

func TestGetConversationsOnlyListsOwn(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db, "acme")
	other := seedOrgUser(t, db, f.Organization.ID, "staff-acme@example.com", models.RoleMaintenanceStaff)
	third := seedOrgUser(t, db, f.Organization.ID, "third-acme@example.com", models.RoleFinanceManager)
	svc := newMessageService(db)

	_, err := svc.SendMessage(f.session(), other.ID, "你好")
	assert.NoError(t, err)

	otherSession := &Session{
		UserID:         other.ID,
		OrganizationID: f.Organization.ID,
		Role:           other.Role,
		Email:          other.Email,
	}
	_, err = svc.SendMessage(otherSession, third.ID, "在吗")
	assert.NoError(t, err)

	conversations, err := svc.GetConversations(f.session())
	assert.NoError(t, err)
	assert.Len(t, conversations, 1)

	conversations, err = svc.GetConversations(otherSession)
	assert.NoError(t, err)
	assert.Len(t, conversations, 2)
}
