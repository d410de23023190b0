// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spaarbot/backend/internal/application/adapter"
	"github.com/spaarbot/backend/internal/domain/analytics"
	domainerror "github.com/spaarbot/backend/internal/domain/error"
)

// DefaultOtherLabel buckets uncategorized spending when the client does not
// supply a translated sentinel.
const DefaultOtherLabel = "Other"

// GetTrendsInput represents the input for getting trends.
type GetTrendsInput struct {
	UserID      uuid.UUID
	StartDate   time.Time
	EndDate     time.Time
	Granularity analytics.Granularity
	OtherLabel  string              // translated fallback category label, optional
	Label       analytics.LabelFunc // locale bucket labels, optional
}

// TrendPoint represents a single trend data point.
type TrendPoint struct {
	Key            string          `json:"key"`
	Label          string          `json:"label"`
	Date           time.Time       `json:"date"`
	Income         decimal.Decimal `json:"income"`
	Expenses       decimal.Decimal `json:"expenses"`
	Balance        decimal.Decimal `json:"balance"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// GetTrendsOutput represents the output of getting trends.
type GetTrendsOutput struct {
	Period     TrendsPeriod              `json:"period"`
	Trends     []TrendPoint              `json:"trends"`
	Categories []analytics.CategoryShare `json:"categories"`
}

// TrendsPeriod represents the period information for trends.
type TrendsPeriod struct {
	StartDate   time.Time             `json:"start_date"`
	EndDate     time.Time             `json:"end_date"`
	Granularity analytics.Granularity `json:"granularity"`
}

// GetTrendsUseCase handles getting income/expense trends with running balance.
type GetTrendsUseCase struct {
	loader recordLoader
}

// NewGetTrendsUseCase creates a new GetTrendsUseCase instance.
func NewGetTrendsUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	cache adapter.TransactionCache,
) *GetTrendsUseCase {
	return &GetTrendsUseCase{
		loader: recordLoader{
			transactionRepo: transactionRepo,
			categoryRepo:    categoryRepo,
			cache:           cache,
		},
	}
}

// Execute computes bucketed income/expense/balance trends for the period.
// Transactions outside the period are excluded from the bucketed series but
// still count in the category breakdown, matching the stats cards.
func (uc *GetTrendsUseCase) Execute(ctx context.Context, input GetTrendsInput) (*GetTrendsOutput, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	records, err := uc.loader.load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	records, _ = analytics.ValidateRecords(records)

	buckets, err := analytics.BucketSeries(input.StartDate, input.EndDate, input.Granularity, input.Label)
	if err != nil {
		return nil, err
	}

	otherLabel := input.OtherLabel
	if otherLabel == "" {
		otherLabel = DefaultOtherLabel
	}

	result := analytics.Aggregate(records, buckets, input.Granularity, otherLabel)
	running := analytics.RunningBalance(result.ByBucket)

	trends := make([]TrendPoint, 0, len(result.ByBucket))
	for i, b := range result.ByBucket {
		trends = append(trends, TrendPoint{
			Key:            b.Key,
			Label:          b.Label,
			Date:           b.Date,
			Income:         b.IncomeTotal,
			Expenses:       b.ExpenseTotal,
			Balance:        b.Balance,
			RunningBalance: running[i],
		})
	}

	return &GetTrendsOutput{
		Period: TrendsPeriod{
			StartDate:   input.StartDate,
			EndDate:     input.EndDate,
			Granularity: input.Granularity,
		},
		Trends:     trends,
		Categories: result.ByCategory,
	}, nil
}

// validateInput validates the input parameters.
func (uc *GetTrendsUseCase) validateInput(input GetTrendsInput) error {
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

	if input.Granularity != analytics.GranularityDay &&
		input.Granularity != analytics.GranularityISOWeek &&
		input.Granularity != analytics.GranularityMonth {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidGranularity,
			"granularity must be: day, isoWeek, or month",
			domainerror.ErrInvalidGranularity,
		)
	}

	return nil
}
