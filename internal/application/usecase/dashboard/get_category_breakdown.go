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

// GetCategoryBreakdownInput represents the input for getting category breakdown.
type GetCategoryBreakdownInput struct {
	UserID     uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
	OtherLabel string // translated fallback category label, optional
}

// GetCategoryBreakdownOutput represents the output of getting category breakdown.
type GetCategoryBreakdownOutput struct {
	StartDate  time.Time                 `json:"start_date"`
	EndDate    time.Time                 `json:"end_date"`
	Total      decimal.Decimal           `json:"total"`
	Categories []analytics.CategoryShare `json:"categories"`
}

// GetCategoryBreakdownUseCase handles getting expense totals per category.
type GetCategoryBreakdownUseCase struct {
	loader recordLoader
}

// NewGetCategoryBreakdownUseCase creates a new GetCategoryBreakdownUseCase instance.
func NewGetCategoryBreakdownUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	cache adapter.TransactionCache,
) *GetCategoryBreakdownUseCase {
	return &GetCategoryBreakdownUseCase{
		loader: recordLoader{
			transactionRepo: transactionRepo,
			categoryRepo:    categoryRepo,
			cache:           cache,
		},
	}
}

// Execute ranks expense categories by total within the period. Income
// transactions never appear in the breakdown.
func (uc *GetCategoryBreakdownUseCase) Execute(ctx context.Context, input GetCategoryBreakdownInput) (*GetCategoryBreakdownOutput, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	records, err := uc.loader.load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	records, _ = analytics.ValidateRecords(records)

	otherLabel := input.OtherLabel
	if otherLabel == "" {
		otherLabel = DefaultOtherLabel
	}

	totals := make(map[string]decimal.Decimal)
	for _, r := range records {
		if r.Kind != entity.TransactionKindExpense {
			continue
		}
		if r.Date.Before(input.StartDate) || r.Date.After(input.EndDate) {
			continue
		}
		label := r.Category
		if label == "" {
			label = otherLabel
		}
		totals[label] = totals[label].Add(r.Amount)
	}

	shares := analytics.RankCategories(totals)

	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s.Total)
	}

	return &GetCategoryBreakdownOutput{
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Total:      analytics.Round2(total),
		Categories: shares,
	}, nil
}

// validateInput validates the input parameters.
func (uc *GetCategoryBreakdownUseCase) validateInput(input GetCategoryBreakdownInput) error {
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
