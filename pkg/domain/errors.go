package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Error codes
const (
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// NewNotFoundError creates a new not found error. A NotFound on the primary
// entity of an analysis is surfaced to the caller as a hard failure; missing
// auxiliary data (cohorts, histories) never is.
func NewNotFoundError(resource string) error {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewValidationError creates a new validation error
func NewValidationError(msg string) error {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(err error) error {
	return &DomainError{
		Code:    ErrCodeInternal,
		Message: "An internal error occurred",
		Err:     err,
	}
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(msg string) error {
	return &DomainError{
		Code:    ErrCodeBadRequest,
		Message: msg,
	}
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == ErrCodeNotFound
	}
	return false
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == ErrCodeValidation
	}
	return false
}

// GetErrorCode extracts the error code from a domain error
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrCodeInternal
}
