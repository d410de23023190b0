// Package error defines domain-specific errors for the SpaarBot application.
package error

import "errors"

// Analytics domain errors.
var (
	// ErrInvalidDate is returned when a transaction's timestamp cannot be
	// mapped to a bucket key.
	ErrInvalidDate = errors.New("invalid transaction date")

	// ErrInvalidAmount is returned when an amount is negative or non-finite.
	ErrInvalidAmount = errors.New("invalid transaction amount")

	// ErrAmountPrecision is returned when an amount carries more than two
	// fractional digits.
	ErrAmountPrecision = errors.New("amount must have at most 2 decimal places")

	// ErrUnknownGranularity is returned when a granularity is not day, isoWeek or month.
	ErrUnknownGranularity = errors.New("granularity must be: day, isoWeek, or month")
)

// AnalyticsErrorCode defines error codes for analytics errors.
// Format: ANL-XXYYYY where XX is category and YYYY is specific error.
type AnalyticsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidDate        AnalyticsErrorCode = "ANL-010001"
	ErrCodeInvalidAmount      AnalyticsErrorCode = "ANL-010002"
	ErrCodeAmountPrecision    AnalyticsErrorCode = "ANL-010003"
	ErrCodeUnknownGranularity AnalyticsErrorCode = "ANL-010004"
)

// AnalyticsError represents an analytics error with code and message.
type AnalyticsError struct {
	Code    AnalyticsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AnalyticsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AnalyticsError) Unwrap() error {
	return e.Err
}

// NewAnalyticsError creates a new AnalyticsError with the given code and message.
func NewAnalyticsError(code AnalyticsErrorCode, message string, err error) *AnalyticsError {
	return &AnalyticsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
