// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spaarbot/backend/internal/application/adapter"
	"github.com/spaarbot/backend/internal/domain/entity"
	domainerror "github.com/spaarbot/backend/internal/domain/error"
)

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 255

// TransactionOutput represents a single transaction in the output.
type TransactionOutput struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Kind        entity.TransactionKind
	CategoryID  *uuid.UUID
	Category    *CategoryOutput
	Source      entity.TransactionSource
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryOutput represents category information in transaction output.
type CategoryOutput struct {
	ID    uuid.UUID
	Name  string
	Color string
	Icon  string
}

// newTransactionOutput builds a TransactionOutput from the entity and an
// optional resolved category.
func newTransactionOutput(t *entity.Transaction, category *entity.Category) *TransactionOutput {
	output := &TransactionOutput{
		ID:          t.ID,
		UserID:      t.UserID,
		Date:        t.Date,
		Description: t.Description,
		Amount:      t.Amount,
		Kind:        t.Kind,
		CategoryID:  t.CategoryID,
		Source:      t.Source,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if category != nil {
		output.Category = &CategoryOutput{
			ID:    category.ID,
			Name:  category.Name,
			Color: category.Color,
			Icon:  category.Icon,
		}
	}
	return output
}

// isValidTransactionKind validates the transaction kind.
func isValidTransactionKind(kind entity.TransactionKind) bool {
	return kind == entity.TransactionKindExpense || kind == entity.TransactionKindIncome
}

// validateAmount rejects negative amounts and amounts with more than two
// decimal places. Rounding silently would misreport what the user typed.
func validateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNegativeAmount,
			"amount must not be negative",
			domainerror.ErrNegativeTransactionAmount,
		)
	}
	if !amount.Equal(amount.Round(2)) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTxnAmountPrecision,
			"amount must have at most two decimal places",
			domainerror.ErrTxnAmountPrecision,
		)
	}
	return nil
}

// resolveOwnedCategory loads a category and verifies it belongs to the user.
func resolveOwnedCategory(ctx context.Context, categoryRepo adapter.CategoryRepository, categoryID, userID uuid.UUID) (*entity.Category, error) {
	category, err := categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFoundForTransaction,
		)
	}
	if category.UserID != userID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryNotOwned,
			"category does not belong to user",
			domainerror.ErrCategoryNotOwnedByUser,
		)
	}
	return category, nil
}

// validateDescription rejects descriptions beyond the column limit.
func validateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	return nil
}
