package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lease 租约，将承租人与单元在一段时间内绑定。
// 同一单元同时最多只有一条isActive=true的租约（由创建前的VACANT检查保证）。
type Lease struct {
	BaseModel
	TenantID      uint            `gorm:"not null;index" json:"tenant_id"`
	UnitID        uint            `gorm:"not null;index" json:"unit_id"`
	StartDate     time.Time       `gorm:"not null" json:"start_date"`
	EndDate       time.Time       `gorm:"not null" json:"end_date"`
	RentAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"rent_amount"`
	DepositAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"deposit_amount"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`

	// 关联关系
	Tenant   *Tenant   `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Unit     *Unit     `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Payments []Payment `gorm:"foreignKey:LeaseID" json:"payments,omitempty"`
	Invoices []Invoice `gorm:"foreignKey:LeaseID" json:"invoices,omitempty"`
}
