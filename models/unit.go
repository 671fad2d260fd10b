package models

import "github.com/shopspring/decimal"

// 单元状态
const (
	UnitStatusVacant      = "VACANT"
	UnitStatusOccupied    = "OCCUPIED"
	UnitStatusMaintenance = "MAINTENANCE"
	UnitStatusReserved    = "RESERVED"
)

// Unit 物业下的出租单元，状态的VACANT->OCCUPIED转换只发生在租约创建中
type Unit struct {
	BaseModel
	UnitNumber string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_property_unit_number" json:"unit_number"` // 单元号，在同一物业内唯一
	PropertyID uint            `gorm:"not null;uniqueIndex:idx_property_unit_number;index" json:"property_id"`
	Bedrooms   int             `gorm:"not null;default:0" json:"bedrooms"`
	Bathrooms  int             `gorm:"not null;default:0" json:"bathrooms"`
	SqFt       *int            `json:"sq_ft,omitempty"`
	MarketRent decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"market_rent"`
	Status     string          `gorm:"type:varchar(20);not null;default:'VACANT'" json:"status"`

	// 关联关系
	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Leases   []Lease   `gorm:"foreignKey:UnitID" json:"leases,omitempty"`
}
