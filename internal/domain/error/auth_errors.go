// Package error defines domain-specific errors for the expense tracker.
package error

import "errors"

// Auth domain errors.
var (
	// ErrEmailAlreadyRegistered is returned when registering with an email that already exists.
	ErrEmailAlreadyRegistered = errors.New("email already registered")

	// ErrInvalidCredentials is returned when login credentials do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserNotFound is returned when a user is not found in the system.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidToken is returned when a token is malformed or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// AuthErrorCode defines error codes for auth errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	ErrCodeEmailAlreadyRegistered AuthErrorCode = "AUTH-010001"
	ErrCodeInvalidCredentials     AuthErrorCode = "AUTH-010002"
	ErrCodeMissingToken           AuthErrorCode = "AUTH-010003"
	ErrCodeInvalidToken           AuthErrorCode = "AUTH-010004"
	ErrCodeRateLimited            AuthErrorCode = "AUTH-010005"
	ErrCodeMissingAuthFields      AuthErrorCode = "AUTH-010006"
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
