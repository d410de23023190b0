package bankimport

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spaarbot/backend/internal/application/adapter"
	"github.com/spaarbot/backend/internal/domain/entity"
)

// RowStatus classifies what will happen to a statement row on import.
type RowStatus string

const (
	RowStatusNew       RowStatus = "new"
	RowStatusDuplicate RowStatus = "duplicate"
	RowStatusInvalid   RowStatus = "invalid"
)

// PreviewStatementInput represents the input for statement preview.
type PreviewStatementInput struct {
	UserID  uuid.UUID
	Content string // raw CSV content
}

// PreviewRow represents one statement row in the preview.
type PreviewRow struct {
	Line        int
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Kind        entity.TransactionKind
	Status      RowStatus
	Reason      string // set for invalid rows
}

// PreviewStatementOutput represents the output of statement preview.
type PreviewStatementOutput struct {
	Rows           []PreviewRow
	NewCount       int
	DuplicateCount int
	InvalidCount   int
}

// PreviewStatementUseCase parses a statement and classifies every row
// without writing anything.
type PreviewStatementUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewPreviewStatementUseCase creates a new PreviewStatementUseCase instance.
func NewPreviewStatementUseCase(transactionRepo adapter.TransactionRepository) *PreviewStatementUseCase {
	return &PreviewStatementUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute parses the statement and marks each row as new, duplicate or
// invalid. Duplicates are detected against already stored transactions by
// date, description and amount.
func (uc *PreviewStatementUseCase) Execute(ctx context.Context, input PreviewStatementInput) (*PreviewStatementOutput, error) {
	rows, err := parseStatement(input.Content)
	if err != nil {
		return nil, err
	}

	output := &PreviewStatementOutput{Rows: make([]PreviewRow, 0, len(rows))}
	for _, row := range rows {
		preview := PreviewRow{
			Line:        row.Line,
			Date:        row.Date,
			Description: row.Description,
			Amount:      row.Amount,
			Kind:        row.Kind,
		}

		switch {
		case row.ParseError != "":
			preview.Status = RowStatusInvalid
			preview.Reason = row.ParseError
			output.InvalidCount++
		default:
			exists, err := uc.transactionRepo.ExistsSimilar(ctx, input.UserID, row.Date, row.Description, row.Amount.StringFixed(2))
			if err != nil {
				return nil, fmt.Errorf("failed to check for duplicates: %w", err)
			}
			if exists {
				preview.Status = RowStatusDuplicate
				output.DuplicateCount++
			} else {
				preview.Status = RowStatusNew
				output.NewCount++
			}
		}

		output.Rows = append(output.Rows, preview)
	}

	return output, nil
}
