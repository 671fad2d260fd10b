package models

import "time"

// 预防性维护频率
const (
	FrequencyDaily     = "DAILY"
	FrequencyWeekly    = "WEEKLY"
	FrequencyMonthly   = "MONTHLY"
	FrequencyQuarterly = "QUARTERLY"
	FrequencyYearly    = "YEARLY"
)

// MaintenanceSchedule 预防性维护计划定义，周期推进由外部批处理决定
type MaintenanceSchedule struct {
	BaseModel
	Title       string    `gorm:"type:varchar(100);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Frequency   string    `gorm:"type:varchar(20);not null" json:"frequency"`
	StartDate   time.Time `gorm:"not null" json:"start_date"`
	NextRun     time.Time `gorm:"not null" json:"next_run"`
	PropertyID  uint      `gorm:"not null;index" json:"property_id"`
	AssigneeID  *uint     `gorm:"index" json:"assignee_id,omitempty"`

	// 关联关系
	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Assignee *User     `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}
