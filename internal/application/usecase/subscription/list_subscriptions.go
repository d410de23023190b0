package subscription

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spaarbot/backend/internal/application/adapter"
	"github.com/spaarbot/backend/internal/domain/analytics"
)

// ListSubscriptionsInput represents the input for listing subscriptions.
type ListSubscriptionsInput struct {
	UserID uuid.UUID
}

// ListSubscriptionsOutput represents the output of listing subscriptions.
// TotalMonthlyCost normalizes yearly subscriptions to a per-month figure and
// only counts active subscriptions.
type ListSubscriptionsOutput struct {
	Subscriptions    []*SubscriptionOutput
	TotalMonthlyCost decimal.Decimal
}

// ListSubscriptionsUseCase handles listing subscriptions logic.
type ListSubscriptionsUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
}

// NewListSubscriptionsUseCase creates a new ListSubscriptionsUseCase instance.
func NewListSubscriptionsUseCase(subscriptionRepo adapter.SubscriptionRepository) *ListSubscriptionsUseCase {
	return &ListSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
	}
}

// Execute lists the user's subscriptions, ordered by next renewal.
func (uc *ListSubscriptionsUseCase) Execute(ctx context.Context, input ListSubscriptionsInput) (*ListSubscriptionsOutput, error) {
	subscriptions, err := uc.subscriptionRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	output := make([]*SubscriptionOutput, 0, len(subscriptions))
	total := decimal.Zero
	for _, s := range subscriptions {
		out := newSubscriptionOutput(s)
		output = append(output, out)
		if s.IsActive {
			total = total.Add(out.MonthlyCost)
		}
	}

	return &ListSubscriptionsOutput{
		Subscriptions:    output,
		TotalMonthlyCost: analytics.Round2(total),
	}, nil
}
