package models

import "time"

// Conversation 会话，参与者为组织内用户，UpdatedAt在新消息时被更新
type Conversation struct {
	BaseModel
	OrganizationID uint `gorm:"not null;index" json:"organization_id"`

	// 关联关系
	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Participants []User        `gorm:"many2many:conversation_participants;" json:"participants,omitempty"`
	Messages     []Message     `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

// Message 会话内消息
type Message struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"not null;index" json:"conversation_id"`
	SenderID       uint      `gorm:"not null;index" json:"sender_id"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	CreatedAt      time.Time `json:"created_at"`

	// 关联关系
	Conversation *Conversation `gorm:"foreignKey:ConversationID" json:"conversation,omitempty"`
	Sender       *User         `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}
