// Package chat contains AI assistant chat use cases.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spaarbot/backend/internal/application/adapter"
	"github.com/spaarbot/backend/internal/domain/analytics"
	"github.com/spaarbot/backend/internal/domain/entity"
	domainerror "github.com/spaarbot/backend/internal/domain/error"

	"github.com/shopspring/decimal"
)

const (
	// MaxChatMessageLength caps a single user message.
	MaxChatMessageLength = 2000

	// historyLimit is how many past messages are replayed to the assistant.
	historyLimit = 20

	// contextWindowDays is how far back the finance context looks.
	contextWindowDays = 90
)

// SendMessageInput represents the input for sending a chat message.
type SendMessageInput struct {
	UserID       uuid.UUID
	Message      string
	LanguageCode string
}

// SendMessageOutput represents the output of sending a chat message.
type SendMessageOutput struct {
	Reply *entity.ChatMessage
}

// SendMessageUseCase handles a chat round-trip with the AI assistant: it
// builds a finance context from the user's recent transactions, asks the
// assistant, and persists both sides of the exchange.
type SendMessageUseCase struct {
	chatRepo        adapter.ChatRepository
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	chatService     adapter.ChatService
}

// NewSendMessageUseCase creates a new SendMessageUseCase instance.
func NewSendMessageUseCase(
	chatRepo adapter.ChatRepository,
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	chatService adapter.ChatService,
) *SendMessageUseCase {
	return &SendMessageUseCase{
		chatRepo:        chatRepo,
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		chatService:     chatService,
	}
}

// Execute performs the chat round-trip.
func (uc *SendMessageUseCase) Execute(ctx context.Context, input SendMessageInput) (*SendMessageOutput, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, domainerror.NewChatError(
			domainerror.ErrCodeEmptyChatMessage,
			"message content is required",
			domainerror.ErrEmptyChatMessage,
		)
	}
	if len(message) > MaxChatMessageLength {
		return nil, domainerror.NewChatError(
			domainerror.ErrCodeChatMessageTooLong,
			fmt.Sprintf("message must not exceed %d characters", MaxChatMessageLength),
			domainerror.ErrChatMessageTooLong,
		)
	}

	if !uc.chatService.IsAvailable() {
		return nil, domainerror.NewChatError(
			domainerror.ErrCodeAssistantUnavailable,
			"assistant is not available",
			domainerror.ErrAssistantUnavailable,
		)
	}

	history, err := uc.chatRepo.FindRecentByUser(ctx, input.UserID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}

	financeContext, err := uc.buildFinanceContext(ctx, input.UserID)
	if err != nil {
		// The assistant can still answer generic questions without it.
		slog.Warn("Failed to build finance context for chat",
			"userID", input.UserID,
			"error", err,
		)
		financeContext = ""
	}

	reply, err := uc.chatService.Reply(ctx, &adapter.ChatPrompt{
		Message:        message,
		FinanceContext: financeContext,
		History:        history,
		LanguageCode:   input.LanguageCode,
	})
	if err != nil {
		return nil, fmt.Errorf("assistant request failed: %w", err)
	}

	userMessage := entity.NewChatMessage(input.UserID, entity.ChatRoleUser, message)
	if err := uc.chatRepo.Save(ctx, userMessage); err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}

	assistantMessage := entity.NewChatMessage(input.UserID, entity.ChatRoleAssistant, reply)
	if err := uc.chatRepo.Save(ctx, assistantMessage); err != nil {
		return nil, fmt.Errorf("failed to save assistant message: %w", err)
	}

	return &SendMessageOutput{Reply: assistantMessage}, nil
}

// buildFinanceContext renders a compact text summary of the user's last
// months: totals plus the top expense categories.
func (uc *SendMessageUseCase) buildFinanceContext(ctx context.Context, userID uuid.UUID) (string, error) {
	transactions, err := uc.transactionRepo.FindByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(transactions) == 0 {
		return "The user has no transactions yet.", nil
	}

	categories, err := uc.categoryRepo.FindByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	labels := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		labels[c.ID] = c.Name
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -contextWindowDays)
	income := decimal.Zero
	expenses := decimal.Zero
	totals := make(map[string]decimal.Decimal)
	count := 0
	for _, t := range transactions {
		if t.Date.Before(cutoff) {
			continue
		}
		count++
		if t.Kind == entity.TransactionKindIncome {
			income = income.Add(t.Amount)
			continue
		}
		expenses = expenses.Add(t.Amount)
		label := "uncategorized"
		if t.CategoryID != nil {
			if name, ok := labels[*t.CategoryID]; ok {
				label = name
			}
		}
		totals[label] = totals[label].Add(t.Amount)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Last %d days: %d transactions, income %s, expenses %s.\n",
		contextWindowDays, count, analytics.Round2(income), analytics.Round2(expenses))

	shares := analytics.RankCategories(totals)
	if len(shares) > 0 {
		b.WriteString("Top expense categories:\n")
		for i, share := range shares {
			if i == 5 {
				break
			}
			fmt.Fprintf(&b, "- %s: %s (%.1f%%)\n", share.Category, share.Total, share.Percentage)
		}
	}

	return b.String(), nil
}
