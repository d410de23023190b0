package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spaarbot/backend/internal/application/adapter"
	"github.com/spaarbot/backend/internal/domain/entity"
	"github.com/spaarbot/backend/internal/integration/persistence/model"
)

// chatRepository implements the adapter.ChatRepository interface.
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat repository instance.
func NewChatRepository(db *gorm.DB) adapter.ChatRepository {
	return &chatRepository{
		db: db,
	}
}

// Save stores a chat message.
func (r *chatRepository) Save(ctx context.Context, message *entity.ChatMessage) error {
	messageModel := model.ChatMessageFromEntity(message)
	result := r.db.WithContext(ctx).Create(messageModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindRecentByUser retrieves the most recent messages for a user, oldest
// first, limited to the given count.
func (r *chatRepository) FindRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.ChatMessage, error) {
	var messageModels []model.ChatMessageModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messageModels)
	if result.Error != nil {
		return nil, result.Error
	}

	// Reverse into chronological order for prompt replay.
	messages := make([]*entity.ChatMessage, len(messageModels))
	for i, mm := range messageModels {
		messages[len(messageModels)-1-i] = mm.ToEntity()
	}
	return messages, nil
}
