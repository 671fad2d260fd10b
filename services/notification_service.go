package services

import (
	"estate-management-service/config"
	"estate-management-service/models"

	"gorm.io/gorm"
)

// InterfaceNotificationService 定义通知服务接口。
// 通知只由系统事件创建，Create由其他服务在副作用阶段调用，失败不传播。
type InterfaceNotificationService interface {
	Create(userID uint, title string, message string, notifType string)
	GetUserNotifications(session *Session) ([]models.Notification, error)
	MarkAsRead(session *Session, id uint) error
	MarkAllAsRead(session *Session) error
}

// NotificationService 提供站内通知相关的服务
type NotificationService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewNotificationService 创建一个新的通知服务
func NewNotificationService(db *gorm.DB, cfg *config.Config) InterfaceNotificationService {
	return &NotificationService{
		DB:     db,
		Config: cfg,
	}
}

// Create 创建系统通知，写入失败只记录日志
func (s *NotificationService) Create(userID uint, title string, message string, notifType string) {
	if notifType == "" {
		notifType = models.NotificationTypeInfo
	}

	notification := models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notifType,
	}
	if err := s.DB.Create(&notification).Error; err != nil {
		config.Error("创建通知失败: %v", err)
	}
}

// GetUserNotifications 获取当前用户最近20条通知
func (s *NotificationService) GetUserNotifications(session *Session) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := s.DB.Where("user_id = ?", session.UserID).
		Order("created_at DESC").
		Limit(20).
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkAsRead 将指定通知标记为已读，只能操作自己的通知
func (s *NotificationService) MarkAsRead(session *Session, id uint) error {
	return s.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, session.UserID).
		Update("read", true).Error
}

// MarkAllAsRead 将当前用户全部未读通知标记为已读
func (s *NotificationService) MarkAllAsRead(session *Session) error {
	return s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND `read` = ?", session.UserID, false).
		Update("read", true).Error
}
