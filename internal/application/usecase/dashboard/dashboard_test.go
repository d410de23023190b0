package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spaarbot/backend/internal/application/adapter"
	"github.com/spaarbot/backend/internal/domain/analytics"
	domainerror "github.com/spaarbot/backend/internal/domain/error"
	"github.com/spaarbot/backend/internal/domain/entity"
)

// fakeTransactionRepo is an in-memory TransactionRepository for use case tests.
type fakeTransactionRepo struct {
	transactions  []*entity.Transaction
	findByUserErr error
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
	for _, t := range f.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeTransactionRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	if f.findByUserErr != nil {
		return nil, f.findByUserErr
	}
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

func (f *fakeTransactionRepo) Update(ctx context.Context, t *entity.Transaction) error {
	return nil
}

func (f *fakeTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

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
	var oldest, newest *time.Time
	var total int64
	for _, t := range f.transactions {
		if t.UserID != userID {
			continue
		}
		total++
		d := t.Date
		if oldest == nil || d.Before(*oldest) {
			oldest = &d
		}
		if newest == nil || d.After(*newest) {
			newest = &d
		}
	}
	return oldest, newest, total, nil
}

// fakeCategoryRepo is an in-memory CategoryRepository for use case tests.
type fakeCategoryRepo struct {
	categories []*entity.Category
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	f.categories = append(f.categories, c)
	return nil
}

func (f *fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeCategoryRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range f.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (bool, error) {
	return false, nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	return nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

// fakeCache counts hits and misses and can serve a preloaded snapshot.
type fakeCache struct {
	snapshot    []*entity.Transaction
	hasSnapshot bool
	sets        int
	invalidated int
}

func (f *fakeCache) Get(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, bool) {
	if f.hasSnapshot {
		return f.snapshot, true
	}
	return nil, false
}

func (f *fakeCache) Set(ctx context.Context, userID uuid.UUID, transactions []*entity.Transaction) {
	f.snapshot = transactions
	f.hasSnapshot = true
	f.sets++
}

func (f *fakeCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	f.snapshot = nil
	f.hasSnapshot = false
	f.invalidated++
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func expense(userID uuid.UUID, date time.Time, desc, amt string, categoryID *uuid.UUID) *entity.Transaction {
	return entity.NewTransaction(userID, date, desc, amount(amt), entity.TransactionKindExpense, categoryID, entity.TransactionSourceManual)
}

func income(userID uuid.UUID, date time.Time, desc, amt string) *entity.Transaction {
	return entity.NewTransaction(userID, date, desc, amount(amt), entity.TransactionKindIncome, nil, entity.TransactionSourceManual)
}

func TestGetTrendsUseCase_Execute(t *testing.T) {
	userID := uuid.New()

	t.Run("should return a continuous daily series with zero-filled buckets", func(t *testing.T) {
		repo := &fakeTransactionRepo{transactions: []*entity.Transaction{
			income(userID, day(2025, time.March, 3), "Salary", "2500.00"),
			expense(userID, day(2025, time.March, 5), "Groceries", "42.50", nil),
		}}
		uc := NewGetTrendsUseCase(repo, &fakeCategoryRepo{}, &fakeCache{})

		output, err := uc.Execute(context.Background(), GetTrendsInput{
			UserID:      userID,
			StartDate:   day(2025, time.March, 1),
			EndDate:     day(2025, time.March, 7),
			Granularity: analytics.GranularityDay,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(output.Trends) != 7 {
			t.Fatalf("expected 7 trend points, got %d", len(output.Trends))
		}
		zeroes := 0
		for _, p := range output.Trends {
			if p.Income.IsZero() && p.Expenses.IsZero() {
				zeroes++
			}
		}
		if zeroes != 5 {
			t.Errorf("expected 5 empty buckets, got %d", zeroes)
		}
		if !output.Trends[2].Income.Equal(amount("2500.00")) {
			t.Errorf("expected income 2500.00 on day 3, got %s", output.Trends[2].Income)
		}
		if !output.Trends[4].Expenses.Equal(amount("42.50")) {
			t.Errorf("expected expenses 42.50 on day 5, got %s", output.Trends[4].Expenses)
		}
	})

	t.Run("should carry running balance across buckets", func(t *testing.T) {
		repo := &fakeTransactionRepo{transactions: []*entity.Transaction{
			income(userID, day(2025, time.March, 1), "Salary", "100.00"),
			expense(userID, day(2025, time.March, 2), "Groceries", "30.00", nil),
			expense(userID, day(2025, time.March, 3), "Lunch", "80.00", nil),
		}}
		uc := NewGetTrendsUseCase(repo, &fakeCategoryRepo{}, &fakeCache{})

		output, err := uc.Execute(context.Background(), GetTrendsInput{
			UserID:      userID,
			StartDate:   day(2025, time.March, 1),
			EndDate:     day(2025, time.March, 3),
			Granularity: analytics.GranularityDay,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"100", "70", "-10"}
		for i, w := range want {
			if !output.Trends[i].RunningBalance.Equal(amount(w)) {
				t.Errorf("running balance[%d]: expected %s, got %s", i, w, output.Trends[i].RunningBalance)
			}
		}
	})

	t.Run("should resolve category labels and rank expense categories", func(t *testing.T) {
		catRepo := &fakeCategoryRepo{}
		groceries := entity.NewCategory(userID, "Groceries", entity.DefaultCategoryColor, entity.DefaultCategoryIcon)
		catRepo.categories = append(catRepo.categories, groceries)

		repo := &fakeTransactionRepo{transactions: []*entity.Transaction{
			expense(userID, day(2025, time.March, 2), "Albert Heijn", "80.00", &groceries.ID),
			expense(userID, day(2025, time.March, 3), "Unknown shop", "20.00", nil),
			income(userID, day(2025, time.March, 4), "Salary", "1000.00"),
		}}
		uc := NewGetTrendsUseCase(repo, catRepo, &fakeCache{})

		output, err := uc.Execute(context.Background(), GetTrendsInput{
			UserID:      userID,
			StartDate:   day(2025, time.March, 1),
			EndDate:     day(2025, time.March, 7),
			Granularity: analytics.GranularityDay,
			OtherLabel:  "Overig",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(output.Categories) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(output.Categories))
		}
		if output.Categories[0].Category != "Groceries" || output.Categories[0].Percentage != 80.0 {
			t.Errorf("expected Groceries at 80%%, got %s at %.1f", output.Categories[0].Category, output.Categories[0].Percentage)
		}
		if output.Categories[1].Category != "Overig" {
			t.Errorf("expected uncategorized spending under Overig, got %s", output.Categories[1].Category)
		}
	})

	t.Run("should populate cache on miss and serve from cache on hit", func(t *testing.T) {
		repo := &fakeTransactionRepo{transactions: []*entity.Transaction{
			income(userID, day(2025, time.March, 1), "Salary", "100.00"),
		}}
		cache := &fakeCache{}
		uc := NewGetTrendsUseCase(repo, &fakeCategoryRepo{}, cache)
		input := GetTrendsInput{
			UserID:      userID,
			StartDate:   day(2025, time.March, 1),
			EndDate:     day(2025, time.March, 2),
			Granularity: analytics.GranularityDay,
		}

		if _, err := uc.Execute(context.Background(), input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cache.sets != 1 {
			t.Fatalf("expected one cache set after miss, got %d", cache.sets)
		}

		// Second call must not touch the repository.
		repo.findByUserErr = errors.New("repository must not be called on a cache hit")
		if _, err := uc.Execute(context.Background(), input); err != nil {
			t.Fatalf("unexpected error on cache hit: %v", err)
		}
	})

	t.Run("should return error when start date is missing", func(t *testing.T) {
		uc := NewGetTrendsUseCase(&fakeTransactionRepo{}, &fakeCategoryRepo{}, &fakeCache{})

		_, err := uc.Execute(context.Background(), GetTrendsInput{
			UserID:      userID,
			EndDate:     day(2025, time.March, 7),
			Granularity: analytics.GranularityDay,
		})

		var dashErr *domainerror.DashboardError
		if !errors.As(err, &dashErr) {
			t.Fatalf("expected DashboardError, got %v", err)
		}
		if dashErr.Code != domainerror.ErrCodeMissingStartDate {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeMissingStartDate, dashErr.Code)
		}
	})

	t.Run("should return error when end date is before start date", func(t *testing.T) {
		uc := NewGetTrendsUseCase(&fakeTransactionRepo{}, &fakeCategoryRepo{}, &fakeCache{})

		_, err := uc.Execute(context.Background(), GetTrendsInput{
			UserID:      userID,
			StartDate:   day(2025, time.March, 7),
			EndDate:     day(2025, time.March, 1),
			Granularity: analytics.GranularityDay,
		})

		var dashErr *domainerror.DashboardError
		if !errors.As(err, &dashErr) {
			t.Fatalf("expected DashboardError, got %v", err)
		}
		if dashErr.Code != domainerror.ErrCodeInvalidDateRange {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidDateRange, dashErr.Code)
		}
	})

	t.Run("should return error for unknown granularity", func(t *testing.T) {
		uc := NewGetTrendsUseCase(&fakeTransactionRepo{}, &fakeCategoryRepo{}, &fakeCache{})

		_, err := uc.Execute(context.Background(), GetTrendsInput{
			UserID:      userID,
			StartDate:   day(2025, time.March, 1),
			EndDate:     day(2025, time.March, 7),
			Granularity: analytics.Granularity("quarter"),
		})

		var dashErr *domainerror.DashboardError
		if !errors.As(err, &dashErr) {
			t.Fatalf("expected DashboardError, got %v", err)
		}
		if dashErr.Code != domainerror.ErrCodeInvalidGranularity {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidGranularity, dashErr.Code)
		}
	})
}

func TestGetCategoryBreakdownUseCase_Execute(t *testing.T) {
	userID := uuid.New()

	t.Run("should rank expenses per category within the period", func(t *testing.T) {
		catRepo := &fakeCategoryRepo{}
		food := entity.NewCategory(userID, "Food", entity.DefaultCategoryColor, entity.DefaultCategoryIcon)
		transport := entity.NewCategory(userID, "Transport", entity.DefaultCategoryColor, entity.DefaultCategoryIcon)
		catRepo.categories = append(catRepo.categories, food, transport)

		repo := &fakeTransactionRepo{transactions: []*entity.Transaction{
			expense(userID, day(2025, time.March, 2), "Lunch", "50.00", &food.ID),
			expense(userID, day(2025, time.March, 3), "Dinner", "30.00", &food.ID),
			expense(userID, day(2025, time.March, 4), "Train", "20.00", &transport.ID),
			// Outside the requested period, must not count here.
			expense(userID, day(2025, time.April, 1), "Taxi", "999.00", &transport.ID),
			income(userID, day(2025, time.March, 5), "Salary", "1000.00"),
		}}
		uc := NewGetCategoryBreakdownUseCase(repo, catRepo, &fakeCache{})

		output, err := uc.Execute(context.Background(), GetCategoryBreakdownInput{
			UserID:    userID,
			StartDate: day(2025, time.March, 1),
			EndDate:   day(2025, time.March, 31),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !output.Total.Equal(amount("100.00")) {
			t.Errorf("expected total 100.00, got %s", output.Total)
		}
		if len(output.Categories) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(output.Categories))
		}
		if output.Categories[0].Category != "Food" || output.Categories[0].Percentage != 80.0 {
			t.Errorf("expected Food at 80%%, got %s at %.1f", output.Categories[0].Category, output.Categories[0].Percentage)
		}
		if output.Categories[1].Category != "Transport" || output.Categories[1].Percentage != 20.0 {
			t.Errorf("expected Transport at 20%%, got %s at %.1f", output.Categories[1].Category, output.Categories[1].Percentage)
		}
	})

	t.Run("should return empty breakdown when there are no expenses", func(t *testing.T) {
		repo := &fakeTransactionRepo{transactions: []*entity.Transaction{
			income(userID, day(2025, time.March, 5), "Salary", "1000.00"),
		}}
		uc := NewGetCategoryBreakdownUseCase(repo, &fakeCategoryRepo{}, &fakeCache{})

		output, err := uc.Execute(context.Background(), GetCategoryBreakdownInput{
			UserID:    userID,
			StartDate: day(2025, time.March, 1),
			EndDate:   day(2025, time.March, 31),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(output.Categories) != 0 {
			t.Errorf("expected no categories, got %d", len(output.Categories))
		}
		if !output.Total.IsZero() {
			t.Errorf("expected zero total, got %s", output.Total)
		}
	})

	t.Run("should return error when end date is missing", func(t *testing.T) {
		uc := NewGetCategoryBreakdownUseCase(&fakeTransactionRepo{}, &fakeCategoryRepo{}, &fakeCache{})

		_, err := uc.Execute(context.Background(), GetCategoryBreakdownInput{
			UserID:    userID,
			StartDate: day(2025, time.March, 1),
		})

		var dashErr *domainerror.DashboardError
		if !errors.As(err, &dashErr) {
			t.Fatalf("expected DashboardError, got %v", err)
		}
		if dashErr.Code != domainerror.ErrCodeMissingEndDate {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeMissingEndDate, dashErr.Code)
		}
	})
}

func TestGetSummaryUseCase_Execute(t *testing.T) {
	userID := uuid.New()

	t.Run("should sum income and expenses within the period", func(t *testing.T) {
		repo := &fakeTransactionRepo{transactions: []*entity.Transaction{
			income(userID, day(2025, time.March, 1), "Salary", "2500.00"),
			expense(userID, day(2025, time.March, 10), "Rent", "1200.00", nil),
			expense(userID, day(2025, time.March, 15), "Groceries", "85.40", nil),
			// Outside the period.
			expense(userID, day(2025, time.February, 28), "Old rent", "1200.00", nil),
		}}
		uc := NewGetSummaryUseCase(repo, &fakeCategoryRepo{}, &fakeCache{})

		output, err := uc.Execute(context.Background(), GetSummaryInput{
			UserID:    userID,
			StartDate: day(2025, time.March, 1),
			EndDate:   day(2025, time.March, 31),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !output.TotalIncome.Equal(amount("2500.00")) {
			t.Errorf("expected income 2500.00, got %s", output.TotalIncome)
		}
		if !output.TotalExpenses.Equal(amount("1285.40")) {
			t.Errorf("expected expenses 1285.40, got %s", output.TotalExpenses)
		}
		if !output.Balance.Equal(amount("1214.60")) {
			t.Errorf("expected balance 1214.60, got %s", output.Balance)
		}
		if output.TransactionCount != 3 {
			t.Errorf("expected 3 transactions in period, got %d", output.TransactionCount)
		}
	})

	t.Run("should return zero totals for an empty period", func(t *testing.T) {
		uc := NewGetSummaryUseCase(&fakeTransactionRepo{}, &fakeCategoryRepo{}, &fakeCache{})

		output, err := uc.Execute(context.Background(), GetSummaryInput{
			UserID:    userID,
			StartDate: day(2025, time.March, 1),
			EndDate:   day(2025, time.March, 31),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !output.TotalIncome.IsZero() || !output.TotalExpenses.IsZero() || !output.Balance.IsZero() {
			t.Errorf("expected zero totals, got income=%s expenses=%s balance=%s",
				output.TotalIncome, output.TotalExpenses, output.Balance)
		}
	})
}

func TestGetDataRangeUseCase_Execute(t *testing.T) {
	userID := uuid.New()

	t.Run("should report oldest and newest transaction dates", func(t *testing.T) {
		repo := &fakeTransactionRepo{transactions: []*entity.Transaction{
			expense(userID, day(2024, time.November, 12), "Groceries", "10.00", nil),
			expense(userID, day(2025, time.March, 3), "Groceries", "10.00", nil),
			income(userID, day(2025, time.January, 1), "Salary", "100.00"),
		}}
		uc := NewGetDataRangeUseCase(repo)

		output, err := uc.Execute(context.Background(), GetDataRangeInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Oldest == nil || !output.Oldest.Equal(day(2024, time.November, 12)) {
			t.Errorf("unexpected oldest date: %v", output.Oldest)
		}
		if output.Newest == nil || !output.Newest.Equal(day(2025, time.March, 3)) {
			t.Errorf("unexpected newest date: %v", output.Newest)
		}
		if output.TransactionCount != 3 {
			t.Errorf("expected count 3, got %d", output.TransactionCount)
		}
	})

	t.Run("should return nil bounds for a user without transactions", func(t *testing.T) {
		uc := NewGetDataRangeUseCase(&fakeTransactionRepo{})

		output, err := uc.Execute(context.Background(), GetDataRangeInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Oldest != nil || output.Newest != nil {
			t.Errorf("expected nil bounds, got oldest=%v newest=%v", output.Oldest, output.Newest)
		}
		if output.TransactionCount != 0 {
			t.Errorf("expected count 0, got %d", output.TransactionCount)
		}
	})
}
