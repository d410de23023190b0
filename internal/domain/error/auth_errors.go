// Package error defines domain-specific errors for the SpaarBot application.
package error

import "errors"

// Auth domain errors.
var (
	// ErrMissingInitData is returned when the Telegram init data is not provided.
	ErrMissingInitData = errors.New("init data is required")

	// ErrInvalidInitData is returned when the Telegram init data signature does not verify.
	ErrInvalidInitData = errors.New("init data signature is invalid")

	// ErrExpiredInitData is returned when the Telegram init data is older than the allowed age.
	ErrExpiredInitData = errors.New("init data has expired")

	// ErrMissingToken is returned when no session token is provided.
	ErrMissingToken = errors.New("token is required")

	// ErrInvalidToken is returned when a session token is invalid or expired.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrRateLimited is returned when too many authentication attempts are made.
	ErrRateLimited = errors.New("too many attempts")
)

// AuthErrorCode defines error codes for auth errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingInitData AuthErrorCode = "AUTH-010001"
	ErrCodeInvalidInitData AuthErrorCode = "AUTH-010002"
	ErrCodeExpiredInitData AuthErrorCode = "AUTH-010003"
	ErrCodeMissingToken    AuthErrorCode = "AUTH-010004"
	ErrCodeInvalidToken    AuthErrorCode = "AUTH-010005"

	// Throttling errors (02XXXX)
	ErrCodeRateLimited AuthErrorCode = "AUTH-020001"

	// Internal errors (99XXXX)
	ErrCodeAuthInternalError AuthErrorCode = "AUTH-990001"
)

// AuthError represents an auth error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
