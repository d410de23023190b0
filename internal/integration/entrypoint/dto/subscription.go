// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/spaarbot/backend/internal/application/usecase/subscription"
	"github.com/spaarbot/backend/internal/domain/entity"
)

// CreateSubscriptionRequest represents the request body for subscription creation.
type CreateSubscriptionRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=100"`
	Amount        string  `json:"amount" binding:"required"`
	BillingPeriod string  `json:"billing_period" binding:"required,oneof=month year"`
	NextRenewal   string  `json:"next_renewal" binding:"required"`
	CategoryID    *string `json:"category_id,omitempty"`
}

// UpdateSubscriptionRequest represents the request body for subscription update.
type UpdateSubscriptionRequest struct {
	Name          *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Amount        *string `json:"amount,omitempty"`
	BillingPeriod *string `json:"billing_period,omitempty" binding:"omitempty,oneof=month year"`
	NextRenewal   *string `json:"next_renewal,omitempty"`
	CategoryID    *string `json:"category_id,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

// SubscriptionResponse represents a single subscription in API responses.
type SubscriptionResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Amount        string    `json:"amount"`
	BillingPeriod string    `json:"billing_period"`
	NextRenewal   string    `json:"next_renewal"`
	CategoryID    *string   `json:"category_id,omitempty"`
	IsActive      bool      `json:"is_active"`
	MonthlyCost   string    `json:"monthly_cost"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SubscriptionListResponse represents the response for listing subscriptions.
type SubscriptionListResponse struct {
	Subscriptions    []SubscriptionResponse `json:"subscriptions"`
	TotalMonthlyCost string                 `json:"total_monthly_cost"`
}

// UpcomingRenewalsResponse represents the response for upcoming renewals.
type UpcomingRenewalsResponse struct {
	From          string                 `json:"from"`
	Until         string                 `json:"until"`
	Subscriptions []SubscriptionResponse `json:"subscriptions"`
}

// RecurringCandidateResponse represents a detected recurring charge pattern.
type RecurringCandidateResponse struct {
	Description string `json:"description"`
	AvgAmount   string `json:"avg_amount"`
	LastAmount  string `json:"last_amount"`
	Occurrences int    `json:"occurrences"`
	FirstDate   string `json:"first_date"`
	LastDate    string `json:"last_date"`
	TypicalDay  int    `json:"typical_day"`
}

// RecurringCandidatesResponse represents the response for recurring detection.
type RecurringCandidatesResponse struct {
	Candidates []RecurringCandidateResponse `json:"candidates"`
}

// ToSubscriptionResponse converts a use case subscription output to a response DTO.
func ToSubscriptionResponse(s *subscription.SubscriptionOutput) SubscriptionResponse {
	response := SubscriptionResponse{
		ID:            s.ID.String(),
		Name:          s.Name,
		Amount:        s.Amount.StringFixed(2),
		BillingPeriod: string(s.BillingPeriod),
		NextRenewal:   s.NextRenewal.Format("2006-01-02"),
		IsActive:      s.IsActive,
		MonthlyCost:   s.MonthlyCost.StringFixed(2),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	if s.CategoryID != nil {
		id := s.CategoryID.String()
		response.CategoryID = &id
	}
	return response
}

func toSubscriptionResponses(subscriptions []*subscription.SubscriptionOutput) []SubscriptionResponse {
	responses := make([]SubscriptionResponse, 0, len(subscriptions))
	for _, s := range subscriptions {
		responses = append(responses, ToSubscriptionResponse(s))
	}
	return responses
}

// ToSubscriptionListResponse converts a list use case output to a response DTO.
func ToSubscriptionListResponse(output *subscription.ListSubscriptionsOutput) SubscriptionListResponse {
	return SubscriptionListResponse{
		Subscriptions:    toSubscriptionResponses(output.Subscriptions),
		TotalMonthlyCost: output.TotalMonthlyCost.StringFixed(2),
	}
}

// ToUpcomingRenewalsResponse converts a renewals use case output to a response DTO.
func ToUpcomingRenewalsResponse(output *subscription.UpcomingRenewalsOutput) UpcomingRenewalsResponse {
	return UpcomingRenewalsResponse{
		From:          output.From.Format("2006-01-02"),
		Until:         output.Until.Format("2006-01-02"),
		Subscriptions: toSubscriptionResponses(output.Subscriptions),
	}
}

// ToRecurringCandidatesResponse converts detected candidates to a response DTO.
func ToRecurringCandidatesResponse(candidates []*entity.RecurringCandidate) RecurringCandidatesResponse {
	response := RecurringCandidatesResponse{
		Candidates: make([]RecurringCandidateResponse, 0, len(candidates)),
	}
	for _, c := range candidates {
		response.Candidates = append(response.Candidates, RecurringCandidateResponse{
			Description: c.Description,
			AvgAmount:   c.AvgAmount.StringFixed(2),
			LastAmount:  c.LastAmount.StringFixed(2),
			Occurrences: c.Occurrences,
			FirstDate:   c.FirstDate.Format("2006-01-02"),
			LastDate:    c.LastDate.Format("2006-01-02"),
			TypicalDay:  c.TypicalDay,
		})
	}
	return response
}
