// Package error defines domain-specific errors for the SpaarBot application.
package error

import "errors"

// Chat domain errors.
var (
	// ErrEmptyChatMessage is returned when a chat message has no content.
	ErrEmptyChatMessage = errors.New("message content is required")

	// ErrChatMessageTooLong is returned when a chat message exceeds the maximum length.
	ErrChatMessageTooLong = errors.New("message too long")

	// ErrAssistantUnavailable is returned when the AI service is not configured or unreachable.
	ErrAssistantUnavailable = errors.New("assistant is not available")
)

// ChatErrorCode defines error codes for chat errors.
// Format: CHT-XXYYYY where XX is category and YYYY is specific error.
type ChatErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeEmptyChatMessage   ChatErrorCode = "CHT-010001"
	ErrCodeChatMessageTooLong ChatErrorCode = "CHT-010002"

	// Upstream errors (02XXXX)
	ErrCodeAssistantUnavailable ChatErrorCode = "CHT-020001"

	// Internal errors (99XXXX)
	ErrCodeChatInternalError ChatErrorCode = "CHT-990001"
)

// ChatError represents a chat error with code and message.
type ChatError struct {
	Code    ChatErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ChatError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ChatError) Unwrap() error {
	return e.Err
}

// NewChatError creates a new ChatError with the given code and message.
func NewChatError(code ChatErrorCode, message string, err error) *ChatError {
	return &ChatError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
