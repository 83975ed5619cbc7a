package errors

import (
	"errors"
	"fmt"
)

// ErrorCode is a machine-readable error identifier. Client UIs branch on the
// code, never on the human-readable message.
type ErrorCode string

const (
	// Authentication & Authorization
	ErrCodeInvalidCredentials     ErrorCode = "invalid_credentials"
	ErrCodeUnauthorized           ErrorCode = "unauthorized"
	ErrCodePasswordChangeRequired ErrorCode = "password_change_required"

	// Password rotation
	ErrCodeInvalidOldPassword ErrorCode = "invalid_old_password"
	ErrCodePasswordTooShort   ErrorCode = "password_too_short"
	ErrCodePasswordUnchanged  ErrorCode = "password_unchanged"

	// Validation
	ErrCodeValidation      ErrorCode = "validation_error"
	ErrCodeMissingRequired ErrorCode = "missing_required"

	// Resource
	ErrCodeNotFound       ErrorCode = "not_found"
	ErrCodeAlreadyExists  ErrorCode = "already_exists"
	ErrCodeCampaignClosed ErrorCode = "campaign_closed"

	// Rate Limiting
	ErrCodeRateLimitExceeded ErrorCode = "rate_limit_exceeded"

	// Internal
	ErrCodeInternal ErrorCode = "internal_error"
	ErrCodeDatabase ErrorCode = "database_error"
)

// AppError is a structured error that can be returned to clients
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details any       `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithCause adds a cause to the error
func (e *AppError) WithCause(err error) *AppError {
	e.cause = err
	return e
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError
func Wrap(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Common error constructors

func InvalidCredentials() *AppError {
	return New(ErrCodeInvalidCredentials, "Invalid credentials")
}

func Unauthorized(message string) *AppError {
	return New(ErrCodeUnauthorized, message)
}

func PasswordChangeRequired() *AppError {
	return New(ErrCodePasswordChangeRequired, "Password change required before accessing this resource")
}

func InvalidOldPassword() *AppError {
	return New(ErrCodeInvalidOldPassword, "Current password is incorrect")
}

func PasswordTooShort(minLength int) *AppError {
	return New(ErrCodePasswordTooShort, fmt.Sprintf("New password must be at least %d characters", minLength))
}

func PasswordUnchanged() *AppError {
	return New(ErrCodePasswordUnchanged, "New password must differ from the current one")
}

func NotFound(resource string) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

func AlreadyExists(resource string) *AppError {
	return New(ErrCodeAlreadyExists, fmt.Sprintf("%s already exists", resource))
}

func CampaignClosed() *AppError {
	return New(ErrCodeCampaignClosed, "Campaign is closed")
}

func ValidationError(message string) *AppError {
	return New(ErrCodeValidation, message)
}

func MissingRequired(field string) *AppError {
	return New(ErrCodeMissingRequired, fmt.Sprintf("%s is required", field))
}

func RateLimitExceeded() *AppError {
	return New(ErrCodeRateLimitExceeded, "Too many attempts, try again later")
}

func Internal(message string) *AppError {
	return New(ErrCodeInternal, message)
}

func Database(cause error) *AppError {
	return Wrap(ErrCodeDatabase, "Database error", cause)
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetCode returns the error code if the error is an AppError, otherwise returns ErrCodeInternal
func GetCode(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ErrCodeInternal
}
