package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches by code so wrapped copies compare equal to their sentinel
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Predefined domain errors
var (
	// Validation
	ErrInvalidInput     = NewDomainError("VALIDATION_ERROR", "invalid input")
	ErrDuplicateKey     = NewDomainError("DUPLICATE_KEY", "record already exists")
	ErrEmailTaken       = NewDomainError("DUPLICATE_KEY", "email already registered")
	ErrPasswordMismatch = NewDomainError("VALIDATION_ERROR", "current password is incorrect")

	// Authentication
	ErrUnauthorized       = NewDomainError("UNAUTHORIZED", "unauthorized")
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "invalid username or password")
	ErrInvalidChallenge   = NewDomainError("INVALID_CHALLENGE", "invalid or expired verification code")

	// Resources
	ErrStudentNotFound = NewDomainError("NOT_FOUND", "student not found")
	ErrUserNotFound    = NewDomainError("NOT_FOUND", "user not found")
	ErrMarkNotFound    = NewDomainError("NOT_FOUND", "mark entry not found")
	ErrNotFound        = NewDomainError("NOT_FOUND", "record not found")

	// System
	ErrStorage  = NewDomainError("STORAGE_FAILURE", "unexpected storage failure")
	ErrInternal = NewDomainError("INTERNAL_ERROR", "internal server error")
)

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes.
// This should only be used in the handler/presentation layer.
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	case "VALIDATION_ERROR", "DUPLICATE_KEY", "INVALID_CHALLENGE":
		return http.StatusBadRequest
	case "UNAUTHORIZED", "INVALID_CREDENTIALS":
		return http.StatusUnauthorized
	case "NOT_FOUND":
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts the user-facing error message.
// Storage failures stay generic, the underlying detail goes to the
// operator log only.
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}
