package models

// 物业类型
const (
	PropertyTypeResidential = "RESIDENTIAL"
	PropertyTypeCommercial  = "COMMERCIAL"
	PropertyTypeMixed       = "MIXED"
)

// Property 物业资产，归属于一个组织
type Property struct {
	BaseModel
	Name           string `gorm:"type:varchar(100);not null" json:"name"`
	Address        string `gorm:"type:varchar(200);not null" json:"address"`
	City           string `gorm:"type:varchar(100);not null" json:"city"`
	State          string `gorm:"type:varchar(100)" json:"state"`
	Country        string `gorm:"type:varchar(100);not null" json:"country"`
	ZipCode        string `gorm:"type:varchar(20)" json:"zip_code"`
	Type           string `gorm:"type:varchar(20);not null" json:"type"` // RESIDENTIAL, COMMERCIAL, MIXED
	Description    string `gorm:"type:text" json:"description"`
	OrganizationID uint   `gorm:"not null;index" json:"organization_id"`

	// 关联关系
	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Units        []Unit        `gorm:"foreignKey:PropertyID" json:"units,omitempty"`
	Expenses     []Expense     `gorm:"foreignKey:PropertyID" json:"expenses,omitempty"`
	Documents    []Document    `gorm:"foreignKey:PropertyID" json:"documents,omitempty"`
}
