package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/spaarbot/backend/internal/domain/entity"
)

// ChatMessageModel represents the chat_messages table in the database.
type ChatMessageModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Role      string    `gorm:"type:varchar(10);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index"`

	User *UserModel `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the ChatMessageModel.
func (ChatMessageModel) TableName() string {
	return "chat_messages"
}

// ToEntity converts a ChatMessageModel to a domain ChatMessage entity.
func (m *ChatMessageModel) ToEntity() *entity.ChatMessage {
	return &entity.ChatMessage{
		ID:        m.ID,
		UserID:    m.UserID,
		Role:      entity.ChatRole(m.Role),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

// ChatMessageFromEntity creates a ChatMessageModel from a domain ChatMessage entity.
func ChatMessageFromEntity(message *entity.ChatMessage) *ChatMessageModel {
	return &ChatMessageModel{
		ID:        message.ID,
		UserID:    message.UserID,
		Role:      string(message.Role),
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
	}
}
