// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatRole identifies who produced a chat message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry in a user's AI chat history.
type ChatMessage struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Role      ChatRole
	Content   string
	CreatedAt time.Time
}

// NewChatMessage creates a new ChatMessage entity.
func NewChatMessage(userID uuid.UUID, role ChatRole, content string) *ChatMessage {
	return &ChatMessage{
		ID:        uuid.New(),
		UserID:    userID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}
