package chat

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/spaarbot/backend/internal/application/adapter"
	"github.com/spaarbot/backend/internal/domain/entity"
)

// DefaultHistoryLimit is the number of messages returned when no limit is given.
const DefaultHistoryLimit = 50

// GetHistoryInput represents the input for fetching chat history.
type GetHistoryInput struct {
	UserID uuid.UUID
	Limit  int
}

// GetHistoryOutput represents the output of fetching chat history.
type GetHistoryOutput struct {
	Messages []*entity.ChatMessage
}

// GetHistoryUseCase handles fetching a user's chat history.
type GetHistoryUseCase struct {
	chatRepo adapter.ChatRepository
}

// NewGetHistoryUseCase creates a new GetHistoryUseCase instance.
func NewGetHistoryUseCase(chatRepo adapter.ChatRepository) *GetHistoryUseCase {
	return &GetHistoryUseCase{
		chatRepo: chatRepo,
	}
}

// Execute returns the most recent messages, oldest first.
func (uc *GetHistoryUseCase) Execute(ctx context.Context, input GetHistoryInput) (*GetHistoryOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	messages, err := uc.chatRepo.FindRecentByUser(ctx, input.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}

	return &GetHistoryOutput{Messages: messages}, nil
}
