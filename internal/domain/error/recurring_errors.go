// Package error defines domain-specific errors for the expense tracker.
package error

import "errors"

// Recurring expense domain errors.
var (
	// ErrRecurringNotFound is returned when a recurring expense is not found in the system.
	ErrRecurringNotFound = errors.New("recurring expense not found")

	// ErrInvalidFrequency is returned when the frequency is not one of the enumerated values.
	ErrInvalidFrequency = errors.New("invalid frequency")

	// ErrInvalidDayOfMonth is returned when the day of month is outside the 1-31 range.
	ErrInvalidDayOfMonth = errors.New("day of month must be between 1 and 31")

	// ErrNotAuthorizedToModifyRecurring is returned when the user is not authorized to modify a recurring expense.
	ErrNotAuthorizedToModifyRecurring = errors.New("not authorized to modify recurring expense")

	// ErrInvalidEndDate is returned when the end date is not after the start date.
	ErrInvalidEndDate = errors.New("end date must be after start date")
)

// RecurringErrorCode defines error codes for recurring expense errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecurringErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeRecurringNotFound      RecurringErrorCode = "REC-010001"
	ErrCodeInvalidFrequency       RecurringErrorCode = "REC-010002"
	ErrCodeInvalidDayOfMonth      RecurringErrorCode = "REC-010003"
	ErrCodeNotAuthorizedRecurring RecurringErrorCode = "REC-010004"
	ErrCodeInvalidEndDate         RecurringErrorCode = "REC-010005"
	ErrCodeMissingRecurringFields RecurringErrorCode = "REC-010006"
)

// RecurringError represents a recurring expense error with code and message.
type RecurringError struct {
	Code    RecurringErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecurringError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecurringError) Unwrap() error {
	return e.Err
}

// NewRecurringError creates a new RecurringError with the given code and message.
func NewRecurringError(code RecurringErrorCode, message string, err error) *RecurringError {
	return &RecurringError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
