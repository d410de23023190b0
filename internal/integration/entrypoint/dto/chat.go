// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/spaarbot/backend/internal/domain/entity"
)

// SendChatMessageRequest represents the request body for sending a chat message.
type SendChatMessageRequest struct {
	Message      string `json:"message" binding:"required,min=1,max=2000"`
	LanguageCode string `json:"language_code,omitempty"`
}

// ChatMessageResponse represents a single chat message in API responses.
type ChatMessageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatHistoryResponse represents the response for chat history.
type ChatHistoryResponse struct {
	Messages []ChatMessageResponse `json:"messages"`
}

// ToChatMessageResponse converts a domain chat message to a response DTO.
func ToChatMessageResponse(m *entity.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:        m.ID.String(),
		Role:      string(m.Role),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

// ToChatHistoryResponse converts a list of chat messages to a response DTO.
func ToChatHistoryResponse(messages []*entity.ChatMessage) ChatHistoryResponse {
	response := ChatHistoryResponse{
		Messages: make([]ChatMessageResponse, 0, len(messages)),
	}
	for _, m := range messages {
		response.Messages = append(response.Messages, ToChatMessageResponse(m))
	}
	return response
}
