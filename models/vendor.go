package models

// Vendor 供应商目录，组织范围内维护
type Vendor struct {
	BaseModel
	Name           string `gorm:"type:varchar(100);not null" json:"name"`
	ServiceType    string `gorm:"type:varchar(50);not null" json:"service_type"`
	Email          string `gorm:"type:varchar(100)" json:"email"`
	Phone          string `gorm:"type:varchar(20)" json:"phone"`
	OrganizationID uint   `gorm:"not null;index" json:"organization_id"`

	// 关联关系
	Organization *Organization        `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	WorkOrders   []MaintenanceRequest `gorm:"foreignKey:VendorID" json:"work_orders,omitempty"` // 指派给该供应商的维修工单
}
