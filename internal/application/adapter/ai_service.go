// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/spaarbot/backend/internal/domain/entity"
)

// ChatPrompt carries a user question together with the finance context the
// assistant should ground its answer in.
type ChatPrompt struct {
	Message        string
	FinanceContext string // pre-rendered summary of the user's recent finances
	History        []*entity.ChatMessage
	LanguageCode   string
}

// ChatService defines the interface for the AI assistant.
type ChatService interface {
	// IsAvailable reports whether the service is configured.
	IsAvailable() bool

	// Reply produces an assistant answer for the given prompt.
	Reply(ctx context.Context, prompt *ChatPrompt) (string, error)
}
