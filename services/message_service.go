package services

import (
	"errors"

	"estate-management-service/config"
	"estate-management-service/models"

	"gorm.io/gorm"
)

// InterfaceMessageService 定义站内消息服务接口
type InterfaceMessageService interface {
	StartConversation(session *Session, otherUserID uint) (*models.Conversation, error)
	GetConversations(session *Session) ([]models.Conversation, error)
	GetMessages(session *Session, conversationID uint) ([]models.Message, error)
	SendMessage(session *Session, otherUserID uint, content string) (*models.Message, error)
}

// MessageService 提供组织内1对1会话服务
type MessageService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService
}

// NewMessageService 创建一个新的消息服务
func NewMessageService(db *gorm.DB, cfg *config.Config, redis InterfaceRedisService) InterfaceMessageService {
	return &MessageService{
		DB:     db,
		Config: cfg,
		Redis:  redis,
	}
}

// findConversation 查找两个用户之间的既有1对1会话
func (s *MessageService) findConversation(organizationID, userA, userB uint) (*models.Conversation, error) {
	var conversation models.Conversation
	err := s.DB.
		Joins("JOIN conversation_participants cp1 ON cp1.conversation_id = conversations.id AND cp1.user_id = ?", userA).
		Joins("JOIN conversation_participants cp2 ON cp2.conversation_id = conversations.id AND cp2.user_id = ?", userB).
		Where("conversations.organization_id = ?", organizationID).
		First(&conversation).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

// StartConversation 开始与另一用户的会话。
// 两人已有会话则直接返回它，不创建重复会话；对方必须是本组织用户。
func (s *MessageService) StartConversation(session *Session, otherUserID uint) (*models.Conversation, error) {
	if otherUserID == session.UserID {
		return nil, errors.New("不能与自己开始会话")
	}

	var other models.User
	err := s.DB.Where("id = ? AND organization_id = ?", otherUserID, session.OrganizationID).
		First(&other).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("用户不存在")
		}
		return nil, err
	}

	if existing, err := s.findConversation(session.OrganizationID, session.UserID, otherUserID); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var me models.User
	if err := s.DB.First(&me, session.UserID).Error; err != nil {
		return nil, err
	}

	conversation := &models.Conversation{
		OrganizationID: session.OrganizationID,
		Participants:   []models.User{me, other},
	}
	if err := s.DB.Create(conversation).Error; err != nil {
		return nil, err
	}

	s.Redis.InvalidateView(session.OrganizationID, ViewMessages)
	return conversation, nil
}

// GetConversations 获取当前用户参与的会话，按最近活跃排序
func (s *MessageService) GetConversations(session *Session) ([]models.Conversation, error) {
	var conversations []models.Conversation
	if err := s.DB.
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id").
		Where("cp.user_id = ? AND conversations.organization_id = ?",
			session.UserID, session.OrganizationID).
		Preload("Participants").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Limit(1)
		}).
		Order("conversations.updated_at DESC").
		Find(&conversations).Error; err != nil {
		return nil, err
	}
	return conversations, nil
}

// GetMessages 获取会话消息。
// 当前用户不是参与者时返回空列表而不是错误。
func (s *MessageService) GetMessages(session *Session, conversationID uint) ([]models.Message, error) {
	var count int64
	if err := s.DB.Table("conversation_participants").
		Where("conversation_id = ? AND user_id = ?", conversationID, session.UserID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return []models.Message{}, nil
	}

	var messages []models.Message
	if err := s.DB.
		Where("conversation_id = ?", conversationID).
		Preload("Sender").
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage 向指定用户发送消息。
// 没有既有会话时隐式创建；写入消息后刷新会话的UpdatedAt。
func (s *MessageService) SendMessage(session *Session, otherUserID uint, content string) (*models.Message, error) {
	if content == "" {
		return nil, errors.New("消息内容不能为空")
	}

	conversation, err := s.StartConversation(session, otherUserID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		ConversationID: conversation.ID,
		SenderID:       session.UserID,
		Content:        content,
	}
	if err := s.DB.Create(message).Error; err != nil {
		return nil, err
	}

	// 会话置顶
	if err := s.DB.Model(&models.Conversation{}).
		Where("id = ?", conversation.ID).
		Update("updated_at", s.DB.NowFunc()).Error; err != nil {
		config.Warning("刷新会话活跃时间失败: %v", err)
	}

	s.Redis.InvalidateView(session.OrganizationID, ViewMessages)
	return message, nil
}
