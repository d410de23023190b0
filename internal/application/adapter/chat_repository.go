// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/spaarbot/backend/internal/domain/entity"
)

// ChatRepository defines the interface for chat history persistence.
type ChatRepository interface {
	// Save stores a chat message.
	Save(ctx context.Context, message *entity.ChatMessage) error

	// FindRecentByUser retrieves the most recent messages for a user,
	// oldest first, limited to the given count.
	FindRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.ChatMessage, error)
}
