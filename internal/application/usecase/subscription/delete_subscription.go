package subscription

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/spaarbot/backend/internal/application/adapter"
	domainerror "github.com/spaarbot/backend/internal/domain/error"
)

// DeleteSubscriptionInput represents the input for subscription deletion.
type DeleteSubscriptionInput struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

// DeleteSubscriptionUseCase handles subscription deletion logic.
type DeleteSubscriptionUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
}

// NewDeleteSubscriptionUseCase creates a new DeleteSubscriptionUseCase instance.
func NewDeleteSubscriptionUseCase(subscriptionRepo adapter.SubscriptionRepository) *DeleteSubscriptionUseCase {
	return &DeleteSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
	}
}

// Execute performs the subscription deletion.
func (uc *DeleteSubscriptionUseCase) Execute(ctx context.Context, input DeleteSubscriptionInput) error {
	subscription, err := uc.subscriptionRepo.FindByID(ctx, input.ID)
	if err != nil {
		return domainerror.NewSubscriptionError(
			domainerror.ErrCodeSubscriptionNotFound,
			"subscription not found",
			domainerror.ErrSubscriptionNotFound,
		)
	}

	if subscription.UserID != input.UserID {
		return domainerror.NewSubscriptionError(
			domainerror.ErrCodeNotAuthorizedSubscription,
			"not authorized to modify this subscription",
			domainerror.ErrNotAuthorizedToModifySubscription,
		)
	}

	if err := uc.subscriptionRepo.Delete(ctx, input.ID); err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	return nil
}
