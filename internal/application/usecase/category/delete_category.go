package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/spaarbot/backend/internal/application/adapter"
	domainerror "github.com/spaarbot/backend/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

// DeleteCategoryUseCase handles category deletion logic. Deleting a category
// leaves its transactions uncategorized rather than deleting them.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	cache        adapter.TransactionCache
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(
	categoryRepo adapter.CategoryRepository,
	cache adapter.TransactionCache,
) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// Execute performs the category deletion.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) error {
	category, err := uc.categoryRepo.FindByID(ctx, input.ID)
	if err != nil {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	if category.UserID != input.UserID {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeNotAuthorizedCategory,
			"not authorized to modify this category",
			domainerror.ErrNotAuthorizedToModifyCategory,
		)
	}

	if err := uc.categoryRepo.Delete(ctx, input.ID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	// Transactions referencing the category changed their labels.
	uc.cache.Invalidate(ctx, input.UserID)

	return nil
}
