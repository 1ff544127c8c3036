package errors

import (
	"net/http"

	"saasadmin/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// Is matches any BaseError carrying the same business error code, so variants
// produced by WithDetails or WithMessage still satisfy errors.Is.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)

	return ok && t.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// WithMessage replaces the user-facing message, keeping the code.
func (e *BaseError) WithMessage(message string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   message,
		details:   e.details,
	}
}

// Authentication errors
var (
	ErrMissingCredential = NewBaseError(
		http.StatusUnauthorized,
		"MISSING_CREDENTIAL",
		"Access token required",
		"",
	)

	ErrMalformedToken = NewBaseError(
		http.StatusUnauthorized,
		"MALFORMED_TOKEN",
		"Invalid token",
		"",
	)

	ErrExpiredToken = NewBaseError(
		http.StatusUnauthorized,
		"EXPIRED_TOKEN",
		"Token expired",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid credentials",
		"",
	)

	ErrRefreshTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_TOKEN_INVALID",
		"Invalid or expired refresh token",
		"",
	)

	// ErrInactiveAccount is returned by authenticate; missing and inactive users look the same.
	ErrInactiveAccount = NewBaseError(
		http.StatusUnauthorized,
		"INACTIVE_ACCOUNT",
		"User not found or inactive",
		"",
	)

	// ErrAccountNotActive is the login-time variant, only reachable with a correct password.
	ErrAccountNotActive = ErrInactiveAccount.WithMessage("Account is not active")
)

// Authorization errors
var (
	ErrPermissionDenied = NewBaseError(
		http.StatusForbidden,
		"PERMISSION_DENIED",
		"Insufficient permissions",
		"",
	)

	ErrTenantAccessDenied = NewBaseError(
		http.StatusForbidden,
		"TENANT_ACCESS_DENIED",
		"Access denied to this tenant",
		"",
	)
)

// Password change errors
var (
	ErrWrongCurrentPassword = NewBaseError(
		http.StatusBadRequest,
		"WRONG_CURRENT_PASSWORD",
		"Current password is incorrect",
		"",
	)

	ErrWeakNewPassword = NewBaseError(
		http.StatusBadRequest,
		"WEAK_NEW_PASSWORD",
		"New password does not meet strength requirements",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Password processing failed",
		"",
	)
)

// Directory errors
var (
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrTenantNotFound = NewBaseError(
		http.StatusNotFound,
		"TENANT_NOT_FOUND",
		"Tenant not found",
		"",
	)

	ErrInvalidTenantID = NewBaseError(
		http.StatusBadRequest,
		"INVALID_TENANT_ID",
		"Valid tenant ID is required",
		"",
	)
)

// Account management errors
var (
	ErrEmailAlreadyExists = NewBaseError(
		http.StatusConflict,
		"EMAIL_ALREADY_EXISTS",
		"Email already exists",
		"",
	)

	ErrInvalidRoleID = NewBaseError(
		http.StatusBadRequest,
		"INVALID_ROLE_ID",
		"Invalid role ID",
		"",
	)

	ErrNoFieldsToUpdate = NewBaseError(
		http.StatusBadRequest,
		"NO_FIELDS_TO_UPDATE",
		"No fields to update",
		"",
	)

	ErrCannotDeleteSelf = NewBaseError(
		http.StatusBadRequest,
		"CANNOT_DELETE_SELF",
		"Cannot delete your own account",
		"",
	)
)

// Tenant management errors
var (
	ErrTenantConflict = NewBaseError(
		http.StatusConflict,
		"TENANT_CONFLICT",
		"Slug or email already exists",
		"",
	)

	ErrTenantHasUsers = NewBaseError(
		http.StatusConflict,
		"TENANT_HAS_USERS",
		"Cannot delete tenant with existing users",
		"",
	)
)

// General errors
var (
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Validation failed",
		"",
	)

	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error to errors.Is and errors.As.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
