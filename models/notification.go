package models

// 通知类型
const (
	NotificationTypeInfo    = "INFO"
	NotificationTypeSuccess = "SUCCESS"
	NotificationTypeWarning = "WARNING"
	NotificationTypeError   = "ERROR"
)

// Notification 站内通知，只由系统事件创建，不提供用户直接创建入口
type Notification struct {
	BaseModel
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	Title   string `gorm:"type:varchar(100);not null" json:"title"`
	Message string `gorm:"type:varchar(500);not null" json:"message"`
	Type    string `gorm:"type:varchar(20);not null;default:'INFO'" json:"type"`
	Read    bool   `gorm:"not null;default:false" json:"read"`

	// 关联关系
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
