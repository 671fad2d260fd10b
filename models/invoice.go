package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// 账单状态
const (
	InvoiceStatusPending   = "PENDING"
	InvoiceStatusPaid      = "PAID"
	InvoiceStatusCancelled = "CANCELLED"
)

// Invoice 账单，由月度定时任务按活跃租约生成。
// (lease_id, period)唯一索引保证同一租约每个账期最多一条租金账单，
// 并发生成时违反唯一约束按"跳过"处理。
type Invoice struct {
	BaseModel
	LeaseID     uint            `gorm:"not null;uniqueIndex:idx_lease_period;index" json:"lease_id"`
	Period      string          `gorm:"type:varchar(7);not null;uniqueIndex:idx_lease_period" json:"period"` // 账期，格式 YYYY-MM
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	DueDate     time.Time       `gorm:"not null;index" json:"due_date"`
	Status      string          `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Description string          `gorm:"type:varchar(200)" json:"description"`

	// 关联关系
	Lease *Lease `gorm:"foreignKey:LeaseID" json:"lease,omitempty"`
}
