// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillingPeriod represents how often a subscription renews.
type BillingPeriod string

const (
	BillingPeriodMonth BillingPeriod = "month"
	BillingPeriodYear  BillingPeriod = "year"
)

// Subscription represents a recurring charge tracked by the user
// (streaming services, rent, insurance, ...).
type Subscription struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	Amount        decimal.Decimal
	BillingPeriod BillingPeriod
	NextRenewal   time.Time
	CategoryID    *uuid.UUID
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time // Soft-delete support
}

// NewSubscription creates a new Subscription entity.
func NewSubscription(
	userID uuid.UUID,
	name string,
	amount decimal.Decimal,
	billingPeriod BillingPeriod,
	nextRenewal time.Time,
	categoryID *uuid.UUID,
) *Subscription {
	now := time.Now().UTC()

	return &Subscription{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		Amount:        amount,
		BillingPeriod: billingPeriod,
		NextRenewal:   nextRenewal,
		CategoryID:    categoryID,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Advance moves NextRenewal one billing period forward.
func (s *Subscription) Advance() {
	switch s.BillingPeriod {
	case BillingPeriodYear:
		s.NextRenewal = s.NextRenewal.AddDate(1, 0, 0)
	default:
		s.NextRenewal = s.NextRenewal.AddDate(0, 1, 0)
	}
	s.UpdatedAt = time.Now().UTC()
}

// RecurringCandidate represents a charge pattern detected in transaction
// history that looks like an untracked subscription.
type RecurringCandidate struct {
	Description string
	AvgAmount   decimal.Decimal
	LastAmount  decimal.Decimal
	Occurrences int
	FirstDate   time.Time
	LastDate    time.Time
	TypicalDay  int // day of month the charge usually lands on
}
