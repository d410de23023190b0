package reminder

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spaarbot/backend/internal/domain/entity"
)

type fakeSubscriptionRepo struct {
	due     []*entity.Subscription
	updated []*entity.Subscription
}

func (f *fakeSubscriptionRepo) Create(ctx context.Context, s *entity.Subscription) error { return nil }
func (f *fakeSubscriptionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Subscription, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeSubscriptionRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Subscription, error) {
	return nil, nil
}
func (f *fakeSubscriptionRepo) FindDueBefore(ctx context.Context, date time.Time) ([]*entity.Subscription, error) {
	return f.due, nil
}
func (f *fakeSubscriptionRepo) Update(ctx context.Context, s *entity.Subscription) error {
	f.updated = append(f.updated, s)
	return nil
}
func (f *fakeSubscriptionRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *entity.User) error { return nil }
func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}
func (f *fakeUserRepo) FindByTelegramID(ctx context.Context, telegramID int64) (*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Update(ctx context.Context, u *entity.User) error { return nil }

type sentMessage struct {
	chatID int64
	text   string
}

type fakeNotifier struct {
	sent    []sentMessage
	sendErr error
}

func (f *fakeNotifier) SendMessage(ctx context.Context, chatID int64, text string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func testSubscription(userID uuid.UUID, name string, amount string, renewal time.Time) *entity.Subscription {
	value, _ := decimal.NewFromString(amount)
	return entity.NewSubscription(userID, name, value, entity.BillingPeriodMonth, renewal, nil)
}

func TestWorkerRun(t *testing.T) {
	ctx := context.Background()

	t.Run("should notify the owner and advance the renewal", func(t *testing.T) {
		user := entity.NewUser(987654321, "piggybank", "Piet", "nl")
		renewal := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
		sub := testSubscription(user.ID, "Netflix", "12.99", renewal)

		subRepo := &fakeSubscriptionRepo{due: []*entity.Subscription{sub}}
		userRepo := &fakeUserRepo{users: map[uuid.UUID]*entity.User{user.ID: user}}
		notifier := &fakeNotifier{}

		worker := NewWorker(subRepo, userRepo, notifier, "", 3)
		worker.Run(ctx)

		if len(notifier.sent) != 1 {
			t.Fatalf("expected 1 message, got %d", len(notifier.sent))
		}
		if notifier.sent[0].chatID != 987654321 {
			t.Errorf("expected chat ID 987654321, got %d", notifier.sent[0].chatID)
		}
		if !strings.Contains(notifier.sent[0].text, "Netflix") || !strings.Contains(notifier.sent[0].text, "12.99") {
			t.Errorf("unexpected reminder text %q", notifier.sent[0].text)
		}

		if len(subRepo.updated) != 1 {
			t.Fatalf("expected 1 subscription update, got %d", len(subRepo.updated))
		}
		wantNext := renewal.AddDate(0, 1, 0)
		if !subRepo.updated[0].NextRenewal.Equal(wantNext) {
			t.Errorf("expected next renewal %v, got %v", wantNext, subRepo.updated[0].NextRenewal)
		}
	})

	t.Run("should not advance the renewal when sending fails", func(t *testing.T) {
		user := entity.NewUser(1, "someone", "Sanne", "nl")
		sub := testSubscription(user.ID, "Spotify", "10.99", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))

		subRepo := &fakeSubscriptionRepo{due: []*entity.Subscription{sub}}
		userRepo := &fakeUserRepo{users: map[uuid.UUID]*entity.User{user.ID: user}}
		notifier := &fakeNotifier{sendErr: errors.New("bot was blocked by the user")}

		worker := NewWorker(subRepo, userRepo, notifier, "", 3)
		worker.Run(ctx)

		if len(subRepo.updated) != 0 {
			t.Errorf("expected no subscription updates, got %d", len(subRepo.updated))
		}
	})

	t.Run("should skip subscriptions whose owner is missing", func(t *testing.T) {
		sub := testSubscription(uuid.New(), "Netflix", "12.99", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))

		subRepo := &fakeSubscriptionRepo{due: []*entity.Subscription{sub}}
		userRepo := &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
		notifier := &fakeNotifier{}

		worker := NewWorker(subRepo, userRepo, notifier, "", 3)
		worker.Run(ctx)

		if len(notifier.sent) != 0 {
			t.Errorf("expected no messages, got %d", len(notifier.sent))
		}
		if len(subRepo.updated) != 0 {
			t.Errorf("expected no subscription updates, got %d", len(subRepo.updated))
		}
	})
}
