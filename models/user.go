package models

import (
	"gorm.io/gorm"
)

// 用户角色
const (
	RoleSuperAdmin       = "SUPER_ADMIN"
	RolePropertyManager  = "PROPERTY_MANAGER"
	RoleMaintenanceStaff = "MAINTENANCE_STAFF"
	RoleTenant           = "TENANT"
	RoleFinanceManager   = "FINANCE_MANAGER"
)

// User 系统用户，属于唯一的组织
type User struct {
	BaseModel
	Email          string `gorm:"type:varchar(100);unique;not null" json:"email"`
	Password       string `gorm:"type:varchar(100);not null" json:"-"` // Password not exposed in JSON
	FirstName      string `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName       string `gorm:"type:varchar(50);not null" json:"last_name"`
	Phone          string `gorm:"type:varchar(20)" json:"phone"`
	Role           string `gorm:"type:varchar(30);not null" json:"role"`
	OrganizationID uint   `gorm:"not null;index" json:"organization_id"`

	// 关联关系
	Organization  *Organization  `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Notifications []Notification `gorm:"foreignKey:UserID" json:"notifications,omitempty"`
	Conversations []Conversation `gorm:"many2many:conversation_participants;" json:"conversations,omitempty"`
}

// FullName 返回用户全名
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// BeforeCreate 是一个GORM钩子，在创建新记录前运行
func (u *User) BeforeCreate(tx *gorm.DB) error {
	// 如果提供了密码，对其进行哈希处理
	if u.Password != "" && len(u.Password) < 60 {
		hashedPassword, err := HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashedPassword
	}
	return nil
}

// BeforeSave 是一个GORM钩子，在保存记录前运行
func (u *User) BeforeSave(tx *gorm.DB) error {
	// 如果提供了密码且不是已哈希的，对其进行哈希处理
	if u.Password != "" && len(u.Password) < 60 {
		hashedPassword, err := HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashedPassword
	}
	return nil
}
