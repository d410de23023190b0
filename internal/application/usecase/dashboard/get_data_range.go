package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spaarbot/backend/internal/application/adapter"
)

// GetDataRangeInput represents the input for getting the data range.
type GetDataRangeInput struct {
	UserID uuid.UUID
}

// GetDataRangeOutput represents the output of getting the data range. Oldest
// and Newest are nil when the user has no transactions.
type GetDataRangeOutput struct {
	Oldest           *time.Time `json:"oldest"`
	Newest           *time.Time `json:"newest"`
	TransactionCount int64      `json:"transaction_count"`
}

// GetDataRangeUseCase reports the span of dates the user has data for, so the
// client can bound its period picker.
type GetDataRangeUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetDataRangeUseCase creates a new GetDataRangeUseCase instance.
func NewGetDataRangeUseCase(transactionRepo adapter.TransactionRepository) *GetDataRangeUseCase {
	return &GetDataRangeUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute returns the oldest and newest transaction dates for the user.
func (uc *GetDataRangeUseCase) Execute(ctx context.Context, input GetDataRangeInput) (*GetDataRangeOutput, error) {
	oldest, newest, total, err := uc.transactionRepo.DateRange(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load data range: %w", err)
	}

	return &GetDataRangeOutput{
		Oldest:           oldest,
		Newest:           newest,
		TransactionCount: total,
	}, nil
}
