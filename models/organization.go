package models

// Organization 组织是所有多租户数据的根
type Organization struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null" json:"name"`
	Slug string `gorm:"type:varchar(100);unique;not null" json:"slug"` // 由组织名生成的唯一标识

	// 关联关系
	Users      []User     `gorm:"foreignKey:OrganizationID" json:"users,omitempty"`
	Properties []Property `gorm:"foreignKey:OrganizationID" json:"properties,omitempty"`
	Vendors    []Vendor   `gorm:"foreignKey:OrganizationID" json:"vendors,omitempty"`
	Tasks      []Task     `gorm:"foreignKey:OrganizationID" json:"tasks,omitempty"`
}
