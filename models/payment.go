package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// 支付方式
const (
	PaymentMethodCash         = "CASH"
	PaymentMethodBankTransfer = "BANK_TRANSFER"
	PaymentMethodCreditCard   = "CREDIT_CARD"
	PaymentMethodCheck        = "CHECK"
)

// 支付状态
const (
	PaymentStatusPaid     = "PAID"
	PaymentStatusPending  = "PENDING"
	PaymentStatusRefunded = "REFUNDED"
)

// Payment 收款记录，由工作人员手工录入，不从账单派生
type Payment struct {
	BaseModel
	LeaseID uint            `gorm:"not null;index" json:"lease_id"`
	Amount  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method  string          `gorm:"type:varchar(20);not null" json:"method"`
	Status  string          `gorm:"type:varchar(20);not null;default:'PAID'" json:"status"`
	Date    time.Time       `gorm:"not null;index" json:"date"`

	// 关联关系
	Lease *Lease `gorm:"foreignKey:LeaseID" json:"lease,omitempty"`
}
