package bankimport

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/spaarbot/backend/internal/application/adapter"
	"github.com/spaarbot/backend/internal/domain/entity"
	domainerror "github.com/spaarbot/backend/internal/domain/error"
)

// ImportStatementInput represents the input for statement import.
type ImportStatementInput struct {
	UserID  uuid.UUID
	Content string // raw CSV content
}

// ImportStatementOutput represents the output of statement import.
type ImportStatementOutput struct {
	ImportedCount  int
	DuplicateCount int
	InvalidCount   int
}

// ImportStatementUseCase parses a statement and stores its new rows as
// transactions.
type ImportStatementUseCase struct {
	transactionRepo adapter.TransactionRepository
	cache           adapter.TransactionCache
}

// NewImportStatementUseCase creates a new ImportStatementUseCase instance.
func NewImportStatementUseCase(
	transactionRepo adapter.TransactionRepository,
	cache adapter.TransactionCache,
) *ImportStatementUseCase {
	return &ImportStatementUseCase{
		transactionRepo: transactionRepo,
		cache:           cache,
	}
}

// Execute imports the statement. Invalid rows and duplicates are skipped and
// counted; the statement fails only when no row is importable at all.
func (uc *ImportStatementUseCase) Execute(ctx context.Context, input ImportStatementInput) (*ImportStatementOutput, error) {
	rows, err := parseStatement(input.Content)
	if err != nil {
		return nil, err
	}

	output := &ImportStatementOutput{}
	transactions := make([]*entity.Transaction, 0, len(rows))
	for _, row := range rows {
		if row.ParseError != "" {
			output.InvalidCount++
			continue
		}

		exists, err := uc.transactionRepo.ExistsSimilar(ctx, input.UserID, row.Date, row.Description, row.Amount.StringFixed(2))
		if err != nil {
			return nil, fmt.Errorf("failed to check for duplicates: %w", err)
		}
		if exists {
			output.DuplicateCount++
			continue
		}

		transactions = append(transactions, entity.NewTransaction(
			input.UserID,
			row.Date,
			row.Description,
			row.Amount,
			row.Kind,
			nil,
			entity.TransactionSourceImport,
		))
	}

	if len(transactions) == 0 {
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeNoImportableRows,
			"no importable rows in statement",
			domainerror.ErrNoImportableRows,
		)
	}

	if err := uc.transactionRepo.BulkCreate(ctx, transactions); err != nil {
		return nil, fmt.Errorf("failed to store imported transactions: %w", err)
	}

	uc.cache.Invalidate(ctx, input.UserID)

	output.ImportedCount = len(transactions)
	return output, nil
}
