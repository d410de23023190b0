package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spaarbot/backend/internal/application/adapter"
	domainerror "github.com/spaarbot/backend/internal/domain/error"
	"github.com/spaarbot/backend/internal/domain/entity"
)

type fakeChatRepo struct {
	messages []*entity.ChatMessage
}

func (f *fakeChatRepo) Save(ctx context.Context, m *entity.ChatMessage) error {
	f.messages = append(f.messages, m)
	return nil
}

func (f *fakeChatRepo) FindRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.ChatMessage, error) {
	var out []*entity.ChatMessage
	for _, m := range f.messages {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

type fakeChatService struct {
	available  bool
	reply      string
	err        error
	lastPrompt *adapter.ChatPrompt
}

func (f *fakeChatService) IsAvailable() bool { return f.available }

func (f *fakeChatService) Reply(ctx context.Context, prompt *adapter.ChatPrompt) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeTransactionRepo struct {
	transactions []*entity.Transaction
}

func (f *fakeTransactionRepo) Create(ctx context.Context, t *entity.Transaction) error { return nil }

func (f *fakeTransactionRepo) BulkCreate(ctx context.Context, ts []*entity.Transaction) error {
	return nil
}

func (f *fakeTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return nil, errors.New("not found")
}

func (f *fakeTransactionRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	return f.transactions, nil
}

func (f *fakeTransactionRepo) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	return &entity.TransactionListResult{}, nil
}

func (f *fakeTransactionRepo) Update(ctx context.Context, t *entity.Transaction) error { return nil }

func (f *fakeTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeTransactionRepo) BulkDelete(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeTransactionRepo) ExistsAllByIDsAndUser(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) (bool, error) {
	return true, nil
}

func (f *fakeTransactionRepo) ExistsSimilar(ctx context.Context, userID uuid.UUID, date time.Time, description string, amount string) (bool, error) {
	return false, nil
}

func (f *fakeTransactionRepo) DateRange(ctx context.Context, userID uuid.UUID) (*time.Time, *time.Time, int64, error) {
	return nil, nil, 0, nil
}

type fakeCategoryRepo struct{}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *entity.Category) error { return nil }

func (f *fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return nil, errors.New("not found")
}

func (f *fakeCategoryRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	return nil, nil
}

func (f *fakeCategoryRepo) ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (bool, error) {
	return false, nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, c *entity.Category) error { return nil }

func (f *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func TestSendMessageUseCase_Execute(t *testing.T) {
	userID := uuid.New()

	t.Run("should persist both sides of the exchange", func(t *testing.T) {
		chatRepo := &fakeChatRepo{}
		service := &fakeChatService{available: true, reply: "You spent most on groceries."}
		uc := NewSendMessageUseCase(chatRepo, &fakeTransactionRepo{}, &fakeCategoryRepo{}, service)

		output, err := uc.Execute(context.Background(), SendMessageInput{
			UserID:  userID,
			Message: "Where does my money go?",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Reply.Role != entity.ChatRoleAssistant {
			t.Errorf("expected assistant reply, got role %s", output.Reply.Role)
		}
		if output.Reply.Content != "You spent most on groceries." {
			t.Errorf("unexpected reply content: %q", output.Reply.Content)
		}
		if len(chatRepo.messages) != 2 {
			t.Fatalf("expected 2 persisted messages, got %d", len(chatRepo.messages))
		}
		if chatRepo.messages[0].Role != entity.ChatRoleUser || chatRepo.messages[1].Role != entity.ChatRoleAssistant {
			t.Errorf("expected user then assistant message")
		}
	})

	t.Run("should include a finance context in the prompt", func(t *testing.T) {
		amount, err := decimal.NewFromString("42.50")
		if err != nil {
			t.Fatalf("bad amount: %v", err)
		}
		txnRepo := &fakeTransactionRepo{transactions: []*entity.Transaction{
			entity.NewTransaction(userID, time.Now().UTC().AddDate(0, 0, -3), "Groceries", amount, entity.TransactionKindExpense, nil, entity.TransactionSourceManual),
		}}
		service := &fakeChatService{available: true, reply: "ok"}
		uc := NewSendMessageUseCase(&fakeChatRepo{}, txnRepo, &fakeCategoryRepo{}, service)

		if _, err := uc.Execute(context.Background(), SendMessageInput{
			UserID:  userID,
			Message: "Hi",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if service.lastPrompt == nil || !strings.Contains(service.lastPrompt.FinanceContext, "expenses 42.5") {
			t.Errorf("expected finance context with expenses, got %+v", service.lastPrompt)
		}
	})

	t.Run("should fail when the assistant is not configured", func(t *testing.T) {
		uc := NewSendMessageUseCase(&fakeChatRepo{}, &fakeTransactionRepo{}, &fakeCategoryRepo{}, &fakeChatService{available: false})

		_, err := uc.Execute(context.Background(), SendMessageInput{
			UserID:  userID,
			Message: "Hi",
		})

		var chatErr *domainerror.ChatError
		if !errors.As(err, &chatErr) {
			t.Fatalf("expected ChatError, got %v", err)
		}
		if chatErr.Code != domainerror.ErrCodeAssistantUnavailable {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeAssistantUnavailable, chatErr.Code)
		}
	})

	t.Run("should reject an empty message", func(t *testing.T) {
		uc := NewSendMessageUseCase(&fakeChatRepo{}, &fakeTransactionRepo{}, &fakeCategoryRepo{}, &fakeChatService{available: true})

		_, err := uc.Execute(context.Background(), SendMessageInput{
			UserID:  userID,
			Message: "   ",
		})

		var chatErr *domainerror.ChatError
		if !errors.As(err, &chatErr) {
			t.Fatalf("expected ChatError, got %v", err)
		}
		if chatErr.Code != domainerror.ErrCodeEmptyChatMessage {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeEmptyChatMessage, chatErr.Code)
		}
	})

	t.Run("should reject an overlong message", func(t *testing.T) {
		uc := NewSendMessageUseCase(&fakeChatRepo{}, &fakeTransactionRepo{}, &fakeCategoryRepo{}, &fakeChatService{available: true})

		_, err := uc.Execute(context.Background(), SendMessageInput{
			UserID:  userID,
			Message: strings.Repeat("x", MaxChatMessageLength+1),
		})

		var chatErr *domainerror.ChatError
		if !errors.As(err, &chatErr) {
			t.Fatalf("expected ChatError, got %v", err)
		}
		if chatErr.Code != domainerror.ErrCodeChatMessageTooLong {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeChatMessageTooLong, chatErr.Code)
		}
	})

	t.Run("should not persist the user message when the assistant fails", func(t *testing.T) {
		chatRepo := &fakeChatRepo{}
		service := &fakeChatService{available: true, err: errors.New("upstream timeout")}
		uc := NewSendMessageUseCase(chatRepo, &fakeTransactionRepo{}, &fakeCategoryRepo{}, service)

		_, err := uc.Execute(context.Background(), SendMessageInput{
			UserID:  userID,
			Message: "Hi",
		})
		if err == nil {
			t.Fatal("expected error")
		}

		if len(chatRepo.messages) != 0 {
			t.Errorf("expected no persisted messages after failure, got %d", len(chatRepo.messages))
		}
	})
}

func TestGetHistoryUseCase_Execute(t *testing.T) {
	userID := uuid.New()

	t.Run("should return messages oldest first", func(t *testing.T) {
		chatRepo := &fakeChatRepo{}
		chatRepo.messages = append(chatRepo.messages,
			entity.NewChatMessage(userID, entity.ChatRoleUser, "first"),
			entity.NewChatMessage(userID, entity.ChatRoleAssistant, "second"),
		)
		uc := NewGetHistoryUseCase(chatRepo)

		output, err := uc.Execute(context.Background(), GetHistoryInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(output.Messages) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(output.Messages))
		}
		if output.Messages[0].Content != "first" {
			t.Errorf("expected oldest message first, got %q", output.Messages[0].Content)
		}
	})

	t.Run("should apply the limit", func(t *testing.T) {
		chatRepo := &fakeChatRepo{}
		for i := 0; i < 5; i++ {
			chatRepo.messages = append(chatRepo.messages, entity.NewChatMessage(userID, entity.ChatRoleUser, "msg"))
		}
		uc := NewGetHistoryUseCase(chatRepo)

		output, err := uc.Execute(context.Background(), GetHistoryInput{UserID: userID, Limit: 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(output.Messages) != 3 {
			t.Errorf("expected 3 messages, got %d", len(output.Messages))
		}
	})
}
