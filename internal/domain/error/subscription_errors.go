// Package error defines domain-specific errors for the SpaarBot application.
package error

import "errors"

// Subscription domain errors.
var (
	// ErrSubscriptionNotFound is returned when a subscription is not found in the system.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrSubscriptionNameRequired is returned when a subscription name is empty.
	ErrSubscriptionNameRequired = errors.New("subscription name is required")

	// ErrInvalidBillingPeriod is returned when the billing period is invalid.
	ErrInvalidBillingPeriod = errors.New("billing period must be 'month' or 'year'")

	// ErrInvalidRenewalDate is returned when the next renewal date is missing or invalid.
	ErrInvalidRenewalDate = errors.New("invalid next renewal date")

	// ErrNegativeSubscriptionAmount is returned when the subscription amount is negative.
	ErrNegativeSubscriptionAmount = errors.New("subscription amount must not be negative")

	// ErrNotAuthorizedToModifySubscription is returned when user is not authorized to modify a subscription.
	ErrNotAuthorizedToModifySubscription = errors.New("not authorized to modify subscription")
)

// SubscriptionErrorCode defines error codes for subscription errors.
// Format: SUB-XXYYYY where XX is category and YYYY is specific error.
type SubscriptionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeSubscriptionNotFound      SubscriptionErrorCode = "SUB-010001"
	ErrCodeSubscriptionNameRequired  SubscriptionErrorCode = "SUB-010002"
	ErrCodeInvalidBillingPeriod      SubscriptionErrorCode = "SUB-010003"
	ErrCodeInvalidRenewalDate        SubscriptionErrorCode = "SUB-010004"
	ErrCodeNegativeSubscription      SubscriptionErrorCode = "SUB-010005"
	ErrCodeNotAuthorizedSubscription SubscriptionErrorCode = "SUB-010006"

	// Internal errors (99XXXX)
	ErrCodeSubscriptionInternalError SubscriptionErrorCode = "SUB-990001"
)

// SubscriptionError represents a subscription error with code and message.
type SubscriptionError struct {
	Code    SubscriptionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SubscriptionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SubscriptionError) Unwrap() error {
	return e.Err
}

// NewSubscriptionError creates a new SubscriptionError with the given code and message.
func NewSubscriptionError(code SubscriptionErrorCode, message string, err error) *SubscriptionError {
	return &SubscriptionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
