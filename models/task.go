package models

import "time"

// 任务状态
const (
	TaskStatusTodo       = "TODO"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusDone       = "DONE"
)

// Task 组织内部待办任务，未指派时默认指派给创建人
type Task struct {
	BaseModel
	Title          string     `gorm:"type:varchar(100);not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	Priority       string     `gorm:"type:varchar(20);not null" json:"priority"`
	Status         string     `gorm:"type:varchar(20);not null;default:'TODO'" json:"status"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	OrganizationID uint       `gorm:"not null;index" json:"organization_id"`
	CreatorID      uint       `gorm:"not null;index" json:"creator_id"`
	AssigneeID     uint       `gorm:"not null;index" json:"assignee_id"`

	// 关联关系
	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Creator      *User         `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Assignee     *User         `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}
