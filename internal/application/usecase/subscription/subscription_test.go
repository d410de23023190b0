package subscription

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spaarbot/backend/internal/application/adapter"
	domainerror "github.com/spaarbot/backend/internal/domain/error"
	"github.com/spaarbot/backend/internal/domain/entity"
)

type fakeSubscriptionRepo struct {
	subscriptions map[uuid.UUID]*entity.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subscriptions: make(map[uuid.UUID]*entity.Subscription)}
}

func (f *fakeSubscriptionRepo) Create(ctx context.Context, s *entity.Subscription) error {
	f.subscriptions[s.ID] = s
	return nil
}

func (f *fakeSubscriptionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Subscription, error) {
	s, ok := f.subscriptions[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (f *fakeSubscriptionRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Subscription, error) {
	var out []*entity.Subscription
	for _, s := range f.subscriptions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NextRenewal.Before(out[j].NextRenewal) })
	return out, nil
}

func (f *fakeSubscriptionRepo) FindDueBefore(ctx context.Context, date time.Time) ([]*entity.Subscription, error) {
	var out []*entity.Subscription
	for _, s := range f.subscriptions {
		if s.IsActive && !s.NextRenewal.After(date) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubscriptionRepo) Update(ctx context.Context, s *entity.Subscription) error {
	f.subscriptions[s.ID] = s
	return nil
}

func (f *fakeSubscriptionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.subscriptions, id)
	return nil
}

type fakeTransactionRepo struct {
	transactions []*entity.Transaction
}

func (f *fakeTransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	f.transactions = append(f.transactions, t)
	return nil
}

func (f *fakeTransactionRepo) BulkCreate(ctx context.Context, ts []*entity.Transaction) error {
	f.transactions = append(f.transactions, ts...)
	return nil
}

func (f *fakeTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return nil, errors.New("not found")
}

func (f *fakeTransactionRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range f.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
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

func amount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func expense(userID uuid.UUID, date time.Time, desc, amt string) *entity.Transaction {
	return entity.NewTransaction(userID, date, desc, amount(amt), entity.TransactionKindExpense, nil, entity.TransactionSourceManual)
}

func TestCreateSubscriptionUseCase_Execute(t *testing.T) {
	userID := uuid.New()

	t.Run("should create a monthly subscription", func(t *testing.T) {
		repo := newFakeSubscriptionRepo()
		uc := NewCreateSubscriptionUseCase(repo)

		output, err := uc.Execute(context.Background(), CreateSubscriptionInput{
			UserID:        userID,
			Name:          "Netflix",
			Amount:        amount("12.99"),
			BillingPeriod: entity.BillingPeriodMonth,
			NextRenewal:   day(2025, time.April, 1),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !output.Subscription.MonthlyCost.Equal(amount("12.99")) {
			t.Errorf("expected monthly cost 12.99, got %s", output.Subscription.MonthlyCost)
		}
		if !output.Subscription.IsActive {
			t.Errorf("new subscription must be active")
		}
	})

	t.Run("should normalize a yearly amount to monthly cost", func(t *testing.T) {
		uc := NewCreateSubscriptionUseCase(newFakeSubscriptionRepo())

		output, err := uc.Execute(context.Background(), CreateSubscriptionInput{
			UserID:        userID,
			Name:          "Insurance",
			Amount:        amount("120.00"),
			BillingPeriod: entity.BillingPeriodYear,
			NextRenewal:   day(2026, time.January, 1),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !output.Subscription.MonthlyCost.Equal(amount("10.00")) {
			t.Errorf("expected monthly cost 10.00, got %s", output.Subscription.MonthlyCost)
		}
	})

	t.Run("should round a yearly amount that does not divide evenly", func(t *testing.T) {
		uc := NewCreateSubscriptionUseCase(newFakeSubscriptionRepo())

		output, err := uc.Execute(context.Background(), CreateSubscriptionInput{
			UserID:        userID,
			Name:          "Domain",
			Amount:        amount("100.00"),
			BillingPeriod: entity.BillingPeriodYear,
			NextRenewal:   day(2026, time.January, 1),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !output.Subscription.MonthlyCost.Equal(amount("8.33")) {
			t.Errorf("expected monthly cost 8.33, got %s", output.Subscription.MonthlyCost)
		}
	})

	t.Run("should reject an empty name", func(t *testing.T) {
		uc := NewCreateSubscriptionUseCase(newFakeSubscriptionRepo())

		_, err := uc.Execute(context.Background(), CreateSubscriptionInput{
			UserID:        userID,
			Name:          "  ",
			Amount:        amount("12.99"),
			BillingPeriod: entity.BillingPeriodMonth,
			NextRenewal:   day(2025, time.April, 1),
		})

		var subErr *domainerror.SubscriptionError
		if !errors.As(err, &subErr) {
			t.Fatalf("expected SubscriptionError, got %v", err)
		}
		if subErr.Code != domainerror.ErrCodeSubscriptionNameRequired {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeSubscriptionNameRequired, subErr.Code)
		}
	})

	t.Run("should reject an unknown billing period", func(t *testing.T) {
		uc := NewCreateSubscriptionUseCase(newFakeSubscriptionRepo())

		_, err := uc.Execute(context.Background(), CreateSubscriptionInput{
			UserID:        userID,
			Name:          "Netflix",
			Amount:        amount("12.99"),
			BillingPeriod: entity.BillingPeriod("week"),
			NextRenewal:   day(2025, time.April, 1),
		})

		var subErr *domainerror.SubscriptionError
		if !errors.As(err, &subErr) {
			t.Fatalf("expected SubscriptionError, got %v", err)
		}
		if subErr.Code != domainerror.ErrCodeInvalidBillingPeriod {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidBillingPeriod, subErr.Code)
		}
	})
}

func TestListSubscriptionsUseCase_Execute(t *testing.T) {
	userID := uuid.New()

	t.Run("should total monthly cost over active subscriptions only", func(t *testing.T) {
		repo := newFakeSubscriptionRepo()
		netflix := entity.NewSubscription(userID, "Netflix", amount("12.99"), entity.BillingPeriodMonth, day(2025, time.April, 1), nil)
		insurance := entity.NewSubscription(userID, "Insurance", amount("120.00"), entity.BillingPeriodYear, day(2026, time.January, 1), nil)
		paused := entity.NewSubscription(userID, "Gym", amount("30.00"), entity.BillingPeriodMonth, day(2025, time.April, 15), nil)
		paused.IsActive = false
		repo.subscriptions[netflix.ID] = netflix
		repo.subscriptions[insurance.ID] = insurance
		repo.subscriptions[paused.ID] = paused
		uc := NewListSubscriptionsUseCase(repo)

		output, err := uc.Execute(context.Background(), ListSubscriptionsInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(output.Subscriptions) != 3 {
			t.Fatalf("expected 3 subscriptions, got %d", len(output.Subscriptions))
		}
		// 12.99 + 120/12, the paused gym membership does not count.
		if !output.TotalMonthlyCost.Equal(amount("22.99")) {
			t.Errorf("expected total monthly cost 22.99, got %s", output.TotalMonthlyCost)
		}
	})
}

func TestUpdateSubscriptionUseCase_Execute(t *testing.T) {
	userID := uuid.New()

	t.Run("should pause a subscription", func(t *testing.T) {
		repo := newFakeSubscriptionRepo()
		sub := entity.NewSubscription(userID, "Netflix", amount("12.99"), entity.BillingPeriodMonth, day(2025, time.April, 1), nil)
		repo.subscriptions[sub.ID] = sub
		uc := NewUpdateSubscriptionUseCase(repo)

		inactive := false
		output, err := uc.Execute(context.Background(), UpdateSubscriptionInput{
			ID:       sub.ID,
			UserID:   userID,
			IsActive: &inactive,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Subscription.IsActive {
			t.Errorf("expected paused subscription")
		}
	})

	t.Run("should refuse to update another user's subscription", func(t *testing.T) {
		repo := newFakeSubscriptionRepo()
		sub := entity.NewSubscription(uuid.New(), "Netflix", amount("12.99"), entity.BillingPeriodMonth, day(2025, time.April, 1), nil)
		repo.subscriptions[sub.ID] = sub
		uc := NewUpdateSubscriptionUseCase(repo)

		name := "Hijack"
		_, err := uc.Execute(context.Background(), UpdateSubscriptionInput{
			ID:     sub.ID,
			UserID: userID,
			Name:   &name,
		})

		var subErr *domainerror.SubscriptionError
		if !errors.As(err, &subErr) {
			t.Fatalf("expected SubscriptionError, got %v", err)
		}
		if subErr.Code != domainerror.ErrCodeNotAuthorizedSubscription {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeNotAuthorizedSubscription, subErr.Code)
		}
	})
}

func TestUpcomingRenewalsUseCase_Execute(t *testing.T) {
	userID := uuid.New()

	t.Run("should list renewals inside the window", func(t *testing.T) {
		repo := newFakeSubscriptionRepo()
		soon := entity.NewSubscription(userID, "Netflix", amount("12.99"), entity.BillingPeriodMonth, day(2025, time.April, 3), nil)
		later := entity.NewSubscription(userID, "Insurance", amount("120.00"), entity.BillingPeriodYear, day(2025, time.June, 1), nil)
		paused := entity.NewSubscription(userID, "Gym", amount("30.00"), entity.BillingPeriodMonth, day(2025, time.April, 2), nil)
		paused.IsActive = false
		repo.subscriptions[soon.ID] = soon
		repo.subscriptions[later.ID] = later
		repo.subscriptions[paused.ID] = paused
		uc := NewUpcomingRenewalsUseCase(repo)

		output, err := uc.Execute(context.Background(), UpcomingRenewalsInput{
			UserID:     userID,
			From:       day(2025, time.April, 1),
			WindowDays: 7,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(output.Subscriptions) != 1 {
			t.Fatalf("expected 1 upcoming renewal, got %d", len(output.Subscriptions))
		}
		if output.Subscriptions[0].Name != "Netflix" {
			t.Errorf("expected Netflix, got %s", output.Subscriptions[0].Name)
		}
	})
}

func TestDetectRecurringUseCase_Execute(t *testing.T) {
	userID := uuid.New()

	t.Run("should detect a monthly charge pattern", func(t *testing.T) {
		txnRepo := &fakeTransactionRepo{transactions: []*entity.Transaction{
			expense(userID, day(2025, time.January, 5), "Netflix 01-2025", "12.99"),
			expense(userID, day(2025, time.February, 5), "NETFLIX 02-2025", "12.99"),
			expense(userID, day(2025, time.March, 5), "Netflix 03-2025", "13.49"),
			expense(userID, day(2025, time.March, 10), "Groceries", "80.00"),
		}}
		uc := NewDetectRecurringUseCase(txnRepo, newFakeSubscriptionRepo())

		output, err := uc.Execute(context.Background(), DetectRecurringInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(output.Candidates) != 1 {
			t.Fatalf("expected 1 candidate, got %d", len(output.Candidates))
		}
		c := output.Candidates[0]
		if c.Occurrences != 3 {
			t.Errorf("expected 3 occurrences, got %d", c.Occurrences)
		}
		if c.TypicalDay != 5 {
			t.Errorf("expected typical day 5, got %d", c.TypicalDay)
		}
		if !c.LastAmount.Equal(amount("13.49")) {
			t.Errorf("expected last amount 13.49, got %s", c.LastAmount)
		}
	})

	t.Run("should ignore patterns with too few occurrences", func(t *testing.T) {
		txnRepo := &fakeTransactionRepo{transactions: []*entity.Transaction{
			expense(userID, day(2025, time.January, 5), "Spotify", "9.99"),
			expense(userID, day(2025, time.February, 5), "Spotify", "9.99"),
		}}
		uc := NewDetectRecurringUseCase(txnRepo, newFakeSubscriptionRepo())

		output, err := uc.Execute(context.Background(), DetectRecurringInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(output.Candidates) != 0 {
			t.Errorf("expected no candidates, got %d", len(output.Candidates))
		}
	})

	t.Run("should ignore irregular intervals", func(t *testing.T) {
		txnRepo := &fakeTransactionRepo{transactions: []*entity.Transaction{
			expense(userID, day(2025, time.January, 5), "Coffee bar", "4.50"),
			expense(userID, day(2025, time.January, 12), "Coffee bar", "4.50"),
			expense(userID, day(2025, time.March, 20), "Coffee bar", "4.50"),
		}}
		uc := NewDetectRecurringUseCase(txnRepo, newFakeSubscriptionRepo())

		output, err := uc.Execute(context.Background(), DetectRecurringInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(output.Candidates) != 0 {
			t.Errorf("expected no candidates, got %d", len(output.Candidates))
		}
	})

	t.Run("should ignore unstable amounts", func(t *testing.T) {
		txnRepo := &fakeTransactionRepo{transactions: []*entity.Transaction{
			expense(userID, day(2025, time.January, 5), "Energy", "40.00"),
			expense(userID, day(2025, time.February, 5), "Energy", "90.00"),
			expense(userID, day(2025, time.March, 5), "Energy", "150.00"),
		}}
		uc := NewDetectRecurringUseCase(txnRepo, newFakeSubscriptionRepo())

		output, err := uc.Execute(context.Background(), DetectRecurringInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(output.Candidates) != 0 {
			t.Errorf("expected no candidates, got %d", len(output.Candidates))
		}
	})

	t.Run("should skip descriptions already tracked as subscriptions", func(t *testing.T) {
		txnRepo := &fakeTransactionRepo{transactions: []*entity.Transaction{
			expense(userID, day(2025, time.January, 5), "Netflix", "12.99"),
			expense(userID, day(2025, time.February, 5), "Netflix", "12.99"),
			expense(userID, day(2025, time.March, 5), "Netflix", "12.99"),
		}}
		subRepo := newFakeSubscriptionRepo()
		tracked := entity.NewSubscription(userID, "Netflix", amount("12.99"), entity.BillingPeriodMonth, day(2025, time.April, 5), nil)
		subRepo.subscriptions[tracked.ID] = tracked
		uc := NewDetectRecurringUseCase(txnRepo, subRepo)

		output, err := uc.Execute(context.Background(), DetectRecurringInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(output.Candidates) != 0 {
			t.Errorf("expected no candidates for tracked subscriptions, got %d", len(output.Candidates))
		}
	})
}
