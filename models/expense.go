package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense 物业支出，手工录入
type Expense struct {
	BaseModel
	PropertyID  uint            `gorm:"not null;index" json:"property_id"`
	Category    string          `gorm:"type:varchar(50);not null" json:"category"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Description string          `gorm:"type:varchar(200)" json:"description"`
	Date        time.Time       `gorm:"not null;index" json:"date"`

	// 关联关系
	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
}
