// Package error defines domain-specific errors for the SpaarBot application.
package error

import "errors"

// Bank import domain errors.
var (
	// ErrEmptyStatement is returned when an uploaded statement contains no rows.
	ErrEmptyStatement = errors.New("statement contains no rows")

	// ErrMalformedStatement is returned when a statement cannot be parsed as CSV.
	ErrMalformedStatement = errors.New("statement is not valid CSV")

	// ErrMissingStatementColumns is returned when required columns are absent.
	ErrMissingStatementColumns = errors.New("statement must have date, description and amount columns")

	// ErrNoImportableRows is returned when every row of a statement was rejected.
	ErrNoImportableRows = errors.New("no importable rows in statement")
)

// ImportErrorCode defines error codes for bank import errors.
// Format: IMP-XXYYYY where XX is category and YYYY is specific error.
type ImportErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeEmptyStatement          ImportErrorCode = "IMP-010001"
	ErrCodeMalformedStatement      ImportErrorCode = "IMP-010002"
	ErrCodeMissingStatementColumns ImportErrorCode = "IMP-010003"
	ErrCodeNoImportableRows        ImportErrorCode = "IMP-010004"

	// Internal errors (99XXXX)
	ErrCodeImportInternalError ImportErrorCode = "IMP-990001"
)

// ImportError represents a bank import error with code and message.
type ImportError struct {
	Code    ImportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ImportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError with the given code and message.
func NewImportError(code ImportErrorCode, message string, err error) *ImportError {
	return &ImportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
