// Package subscription contains subscription-related use cases.
package subscription

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spaarbot/backend/internal/domain/analytics"
	"github.com/spaarbot/backend/internal/domain/entity"
	domainerror "github.com/spaarbot/backend/internal/domain/error"
)

// SubscriptionOutput represents a single subscription in the output.
type SubscriptionOutput struct {
	ID            uuid.UUID
	Name          string
	Amount        decimal.Decimal
	BillingPeriod entity.BillingPeriod
	NextRenewal   time.Time
	CategoryID    *uuid.UUID
	IsActive      bool
	MonthlyCost   decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func newSubscriptionOutput(s *entity.Subscription) *SubscriptionOutput {
	return &SubscriptionOutput{
		ID:            s.ID,
		Name:          s.Name,
		Amount:        s.Amount,
		BillingPeriod: s.BillingPeriod,
		NextRenewal:   s.NextRenewal,
		CategoryID:    s.CategoryID,
		IsActive:      s.IsActive,
		MonthlyCost:   monthlyCost(s),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// monthlyCost normalizes a subscription's amount to a per-month figure.
func monthlyCost(s *entity.Subscription) decimal.Decimal {
	if s.BillingPeriod == entity.BillingPeriodYear {
		return analytics.Round2(s.Amount.Div(decimal.NewFromInt(12)))
	}
	return s.Amount
}

// isValidBillingPeriod validates the billing period.
func isValidBillingPeriod(period entity.BillingPeriod) bool {
	return period == entity.BillingPeriodMonth || period == entity.BillingPeriodYear
}

// validateAmount rejects negative subscription amounts.
func validateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domainerror.NewSubscriptionError(
			domainerror.ErrCodeNegativeSubscription,
			"amount must not be negative",
			domainerror.ErrNegativeSubscriptionAmount,
		)
	}
	return nil
}
