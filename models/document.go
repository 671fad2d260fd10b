package models

// Document 上传的文件记录，只保存对象存储中的链接
type Document struct {
	BaseModel
	Name       string `gorm:"type:varchar(200);not null" json:"name"`
	URL        string `gorm:"type:varchar(500);not null" json:"url"`
	Type       string `gorm:"type:varchar(100)" json:"type"` // MIME类型
	Size       int64  `gorm:"not null;default:0" json:"size"`
	ObjectKey  string `gorm:"type:varchar(200)" json:"-"` // 对象存储中的key，用于删除
	PropertyID *uint  `gorm:"index" json:"property_id,omitempty"`
	TenantID   *uint  `gorm:"index" json:"tenant_id,omitempty"`

	// 关联关系
	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Tenant   *Tenant   `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
}
