// Package error defines domain-specific errors for the expense tracker.
package error

import "errors"

// Expense domain errors.
var (
	// ErrExpenseNotFound is returned when an expense is not found in the system.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrNotAuthorizedToModifyExpense is returned when the user is not authorized to modify an expense.
	ErrNotAuthorizedToModifyExpense = errors.New("not authorized to modify expense")

	// ErrInvalidExpenseAmount is returned when the expense amount is not positive.
	ErrInvalidExpenseAmount = errors.New("expense amount must be positive")

	// ErrInvalidCurrency is returned when the currency is not one of the supported values.
	ErrInvalidCurrency = errors.New("invalid currency")

	// ErrCategoryNotFoundForExpense is returned when the referenced category is not found.
	ErrCategoryNotFoundForExpense = errors.New("category not found")

	// ErrDescriptionTooLong is returned when the expense description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrNotesTooLong is returned when the expense notes exceed the maximum length.
	ErrNotesTooLong = errors.New("notes too long")
)

// ExpenseErrorCode defines error codes for expense errors.
// Format: EXP-XXYYYY where XX is category and YYYY is specific error.
type ExpenseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidExpenseAmount ExpenseErrorCode = "EXP-010001"
	ErrCodeInvalidCurrency      ExpenseErrorCode = "EXP-010002"
	ErrCodeExpenseNotFound      ExpenseErrorCode = "EXP-010003"
	ErrCodeNotAuthorizedExpense ExpenseErrorCode = "EXP-010004"
	ErrCodeExpCategoryNotFound  ExpenseErrorCode = "EXP-010005"
	ErrCodeDescriptionTooLong   ExpenseErrorCode = "EXP-010006"
	ErrCodeNotesTooLong         ExpenseErrorCode = "EXP-010007"
	ErrCodeMissingExpenseFields ExpenseErrorCode = "EXP-010008"
)

// ExpenseError represents an expense error with code and message.
type ExpenseError struct {
	Code    ExpenseErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExpenseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExpenseError) Unwrap() error {
	return e.Err
}

// NewExpenseError creates a new ExpenseError with the given code and message.
func NewExpenseError(code ExpenseErrorCode, message string, err error) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
