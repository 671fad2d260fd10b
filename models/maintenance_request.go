package models

// 维修优先级
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// 维修工单状态
const (
	RequestStatusSubmitted  = "SUBMITTED"
	RequestStatusAssigned   = "ASSIGNED"
	RequestStatusInProgress = "IN_PROGRESS"
	RequestStatusCompleted  = "COMPLETED"
	RequestStatusClosed     = "CLOSED"
)

// MaintenanceRequest 维修工单，承租人或管理员提交
type MaintenanceRequest struct {
	BaseModel
	Title       string `gorm:"type:varchar(100);not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Priority    string `gorm:"type:varchar(20);not null" json:"priority"`
	Status      string `gorm:"type:varchar(20);not null;default:'SUBMITTED'" json:"status"`
	UnitID      uint   `gorm:"not null;index" json:"unit_id"`
	PropertyID  uint   `gorm:"not null;index" json:"property_id"`
	TenantID    *uint  `gorm:"index" json:"tenant_id,omitempty"` // 管理员代提时可为空
	VendorID    *uint  `gorm:"index" json:"vendor_id,omitempty"` // 指派的供应商（工单）

	// 关联关系
	Unit     *Unit     `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Tenant   *Tenant   `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Vendor   *Vendor   `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
}
