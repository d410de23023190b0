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

// CreateSubscriptionInput represents the input for subscription creation.
type CreateSubscriptionInput struct {
	UserID        uuid.UUID
	Name          string
	Amount        decimal.Decimal
	BillingPeriod entity.BillingPeriod
	NextRenewal   time.Time
	CategoryID    *uuid.UUID
}

// CreateSubscriptionOutput represents the output of subscription creation.
type CreateSubscriptionOutput struct {
	Subscription *SubscriptionOutput
}

// CreateSubscriptionUseCase handles subscription creation logic.
type CreateSubscriptionUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
}

// NewCreateSubscriptionUseCase creates a new CreateSubscriptionUseCase instance.
func NewCreateSubscriptionUseCase(subscriptionRepo adapter.SubscriptionRepository) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
	}
}

// Execute performs the subscription creation.
func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, input CreateSubscriptionInput) (*CreateSubscriptionOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewSubscriptionError(
			domainerror.ErrCodeSubscriptionNameRequired,
			"name is required",
			domainerror.ErrSubscriptionNameRequired,
		)
	}

	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}

	if !isValidBillingPeriod(input.BillingPeriod) {
		return nil, domainerror.NewSubscriptionError(
			domainerror.ErrCodeInvalidBillingPeriod,
			"billing period must be 'month' or 'year'",
			domainerror.ErrInvalidBillingPeriod,
		)
	}

	if input.NextRenewal.IsZero() {
		return nil, domainerror.NewSubscriptionError(
			domainerror.ErrCodeInvalidRenewalDate,
			"next renewal date is required",
			domainerror.ErrInvalidRenewalDate,
		)
	}

	subscription := entity.NewSubscription(
		input.UserID,
		name,
		input.Amount,
		input.BillingPeriod,
		input.NextRenewal,
		input.CategoryID,
	)

	if err := uc.subscriptionRepo.Create(ctx, subscription); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	return &CreateSubscriptionOutput{
		Subscription: newSubscriptionOutput(subscription),
	}, nil
}
