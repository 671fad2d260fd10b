package models

import "time"

// AuditLog 审计日志，只追加；写入失败不影响触发它的主操作
type AuditLog struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Action         string    `gorm:"type:varchar(100);not null" json:"action"`
	Entity         string    `gorm:"type:varchar(50);not null" json:"entity"`
	EntityID       string    `gorm:"type:varchar(50)" json:"entity_id"`
	Details        string    `gorm:"type:varchar(500)" json:"details"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	OrganizationID uint      `gorm:"not null;index" json:"organization_id"`
	CreatedAt      time.Time `json:"created_at"`

	// 关联关系
	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}
