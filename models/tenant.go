package models

// Tenant 承租人。不直接挂组织，组织归属通过 租约->单元->物业 链路推导，
// 因此同一邮箱在全局只能代表一个承租人（已记录的设计限制）。
type Tenant struct {
	BaseModel
	FirstName        string `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName         string `gorm:"type:varchar(50);not null" json:"last_name"`
	Email            string `gorm:"type:varchar(100);unique;not null" json:"email"`
	Phone            string `gorm:"type:varchar(20);not null" json:"phone"`
	EmergencyContact string `gorm:"type:varchar(200)" json:"emergency_contact"`

	// 关联关系
	Leases              []Lease              `gorm:"foreignKey:TenantID" json:"leases,omitempty"`
	MaintenanceRequests []MaintenanceRequest `gorm:"foreignKey:TenantID" json:"maintenance_requests,omitempty"`
	Documents           []Document           `gorm:"foreignKey:TenantID" json:"documents,omitempty"`
}

// FullName 返回承租人全名
func (t *Tenant) FullName() string {
	return t.FirstName + " " + t.LastName
}
