package subscription

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spaarbot/backend/internal/application/adapter"
	"github.com/spaarbot/backend/internal/domain/entity"
	domainerror "github.com/spaarbot/backend/internal/domain/error"
)

// UpdateSubscriptionInput represents the input for subscription updates.
// Nil pointer fields are left unchanged.
type UpdateSubscriptionInput struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          *string
	Amount        *decimal.Decimal
	BillingPeriod *entity.BillingPeriod
	NextRenewal   *time.Time
	CategoryID    *uuid.UUID
	IsActive      *bool
}

// UpdateSubscriptionOutput represents the output of subscription updates.
type UpdateSubscriptionOutput struct {
	Subscription *SubscriptionOutput
}

// UpdateSubscriptionUseCase handles subscription update logic.
type UpdateSubscriptionUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
}

// NewUpdateSubscriptionUseCase creates a new UpdateSubscriptionUseCase instance.
func NewUpdateSubscriptionUseCase(subscriptionRepo adapter.SubscriptionRepository) *UpdateSubscriptionUseCase {
	return &UpdateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
	}
}

// Execute performs the subscription update.
func (uc *UpdateSubscriptionUseCase) Execute(ctx context.Context, input UpdateSubscriptionInput) (*UpdateSubscriptionOutput, error) {
	subscription, err := uc.subscriptionRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, domainerror.NewSubscriptionError(
			domainerror.ErrCodeSubscriptionNotFound,
			"subscription not found",
			domainerror.ErrSubscriptionNotFound,
		)
	}

	if subscription.UserID != input.UserID {
		return nil, domainerror.NewSubscriptionError(
			domainerror.ErrCodeNotAuthorizedSubscription,
			"not authorized to modify this subscription",
			domainerror.ErrNotAuthorizedToModifySubscription,
		)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewSubscriptionError(
				domainerror.ErrCodeSubscriptionNameRequired,
				"name is required",
				domainerror.ErrSubscriptionNameRequired,
			)
		}
		subscription.Name = name
	}

	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		subscription.Amount = *input.Amount
	}

	if input.BillingPeriod != nil {
		if !isValidBillingPeriod(*input.BillingPeriod) {
			return nil, domainerror.NewSubscriptionError(
				domainerror.ErrCodeInvalidBillingPeriod,
				"billing period must be 'month' or 'year'",
				domainerror.ErrInvalidBillingPeriod,
			)
		}
		subscription.BillingPeriod = *input.BillingPeriod
	}

	if input.NextRenewal != nil {
		if input.NextRenewal.IsZero() {
			return nil, domainerror.NewSubscriptionError(
				domainerror.ErrCodeInvalidRenewalDate,
				"next renewal date must not be zero",
				domainerror.ErrInvalidRenewalDate,
			)
		}
		subscription.NextRenewal = *input.NextRenewal
	}

	if input.CategoryID != nil {
		subscription.CategoryID = input.CategoryID
	}

	if input.IsActive != nil {
		subscription.IsActive = *input.IsActive
	}

	subscription.UpdatedAt = time.Now().UTC()

	if err := uc.subscriptionRepo.Update(ctx, subscription); err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	return &UpdateSubscriptionOutput{
		Subscription: newSubscriptionOutput(subscription),
	}, nil
}
