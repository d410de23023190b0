package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spaarbot/backend/internal/application/adapter"
)

// DefaultRenewalWindowDays is the lookahead window when none is given.
const DefaultRenewalWindowDays = 7

// UpcomingRenewalsInput represents the input for listing upcoming renewals.
type UpcomingRenewalsInput struct {
	UserID     uuid.UUID
	From       time.Time // defaults to now
	WindowDays int       // defaults to DefaultRenewalWindowDays
}

// UpcomingRenewalsOutput represents the output of listing upcoming renewals.
type UpcomingRenewalsOutput struct {
	From          time.Time
	Until         time.Time
	Subscriptions []*SubscriptionOutput
}

// UpcomingRenewalsUseCase lists active subscriptions renewing inside a window.
type UpcomingRenewalsUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
}

// NewUpcomingRenewalsUseCase creates a new UpcomingRenewalsUseCase instance.
func NewUpcomingRenewalsUseCase(subscriptionRepo adapter.SubscriptionRepository) *UpcomingRenewalsUseCase {
	return &UpcomingRenewalsUseCase{
		subscriptionRepo: subscriptionRepo,
	}
}

// Execute returns the user's active subscriptions whose next renewal falls
// inside [From, From+WindowDays].
func (uc *UpcomingRenewalsUseCase) Execute(ctx context.Context, input UpcomingRenewalsInput) (*UpcomingRenewalsOutput, error) {
	from := input.From
	if from.IsZero() {
		from = time.Now().UTC()
	}
	windowDays := input.WindowDays
	if windowDays <= 0 {
		windowDays = DefaultRenewalWindowDays
	}
	until := from.AddDate(0, 0, windowDays)

	subscriptions, err := uc.subscriptionRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	upcoming := make([]*SubscriptionOutput, 0)
	for _, s := range subscriptions {
		if !s.IsActive {
			continue
		}
		if s.NextRenewal.Before(from) || s.NextRenewal.After(until) {
			continue
		}
		upcoming = append(upcoming, newSubscriptionOutput(s))
	}

	return &UpcomingRenewalsOutput{
		From:          from,
		Until:         until,
		Subscriptions: upcoming,
	}, nil
}
