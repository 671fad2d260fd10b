package services

import (
	"estate-management-service/config"
	"estate-management-service/models"

	"gorm.io/gorm"
)

// InterfaceAuditService 定义审计日志服务接口
type InterfaceAuditService interface {
	LogActivity(session *Session, action string, entity string, entityID string, details string)
	GetAuditLogs(session *Session, limit int) ([]models.AuditLog, error)
}

// AuditService 提供审计日志相关的服务
type AuditService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAuditService 创建一个新的审计日志服务
func NewAuditService(db *gorm.DB, cfg *config.Config) InterfaceAuditService {
	return &AuditService{
		DB:     db,
		Config: cfg,
	}
}

// LogActivity 追加一条审计记录。写入失败只记录日志，绝不阻断触发它的主操作。
func (s *AuditService) LogActivity(session *Session, action string, entity string, entityID string, details string) {
	if session == nil || session.UserID == 0 || session.OrganizationID == 0 {
		config.Warning("无会话的审计日志写入被忽略: %s %s", action, entity)
		return
	}

	log := models.AuditLog{
		Action:         action,
		Entity:         entity,
		EntityID:       entityID,
		Details:        details,
		UserID:         session.UserID,
		OrganizationID: session.OrganizationID,
	}
	if err := s.DB.Create(&log).Error; err != nil {
		config.Error("写入审计日志失败: %v", err)
	}
}

// GetAuditLogs 获取本组织最近的审计记录
func (s *AuditService) GetAuditLogs(session *Session, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var logs []models.AuditLog
	if err := s.DB.Where("organization_id = ?", session.OrganizationID).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
