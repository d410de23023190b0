package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spaarbot/backend/internal/application/adapter"
	"github.com/spaarbot/backend/internal/domain/analytics"
	domainerror "github.com/spaarbot/backend/internal/domain/error"
	"github.com/spaarbot/backend/internal/domain/entity"
)

// GetSummaryInput represents the input for getting the period summary.
type GetSummaryInput struct {
	UserID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

// GetSummaryOutput represents the output of getting the period summary.
type GetSummaryOutput struct {
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int             `json:"transaction_count"`
}

// GetSummaryUseCase handles getting income/expense totals for a period.
type GetSummaryUseCase struct {
	loader recordLoader
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	cache adapter.TransactionCache,
) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		loader: recordLoader{
			transactionRepo: transactionRepo,
			categoryRepo:    categoryRepo,
			cache:           cache,
		},
	}
}

// Execute sums income and expenses over the period in a single fold,
// rounding once at the end.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	records, err := uc.loader.load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	records, _ = analytics.ValidateRecords(records)

	income := decimal.Zero
	expenses := decimal.Zero
	count := 0
	for _, r := range records {
		if r.Date.Before(input.StartDate) || r.Date.After(input.EndDate) {
			continue
		}
		count++
		if r.Kind == entity.TransactionKindIncome {
			income = income.Add(r.Amount)
		} else {
			expenses = expenses.Add(r.Amount)
		}
	}

	income = analytics.Round2(income)
	expenses = analytics.Round2(expenses)

	return &GetSummaryOutput{
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
		TotalIncome:      income,
		TotalExpenses:    expenses,
		Balance:          income.Sub(expenses),
		TransactionCount: count,
	}, nil
}

// validateInput validates the input parameters.
func (uc *GetSummaryUseCase) validateInput(input GetSummaryInput) error {
	if input.StartDate.IsZero() {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeMissingStartDate,
			"start_date is required",
			domainerror.ErrMissingStartDate,
		)
	}

	if input.EndDate.IsZero() {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeMissingEndDate,
			"end_date is required",
			domainerror.ErrMissingEndDate,
		)
	}

	if input.EndDate.Before(input.StartDate) {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidDateRange,
			"end_date must be after start_date",
			domainerror.ErrInvalidDateRange,
		)
	}

	return nil
}
