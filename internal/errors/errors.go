// Package errors provides typed error definitions for detention.
// Every error that reaches the HTTP boundary is classified by its code so the
// boundary can pick a status without exposing the error text to the client.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique identifier for different error types
type ErrorCode string

const (
	// Configuration errors
	ErrConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrConfigInvalid  ErrorCode = "CONFIG_INVALID"
	ErrConfigParse    ErrorCode = "CONFIG_PARSE"

	// Request errors
	ErrMissingShortHash   ErrorCode = "MISSING_SHORT_HASH"
	ErrInvalidRequestType ErrorCode = "INVALID_REQUEST_TYPE"
	ErrValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrRouteNotFound      ErrorCode = "ROUTE_NOT_FOUND"

	// Instance errors
	ErrInstanceNotFound ErrorCode = "INSTANCE_NOT_FOUND"

	// Network/API errors
	ErrAPICall    ErrorCode = "API_CALL"
	ErrAuthFailed ErrorCode = "AUTH_FAILED"

	// Rendering errors
	ErrRenderFailed ErrorCode = "RENDER_FAILED"

	// Internal errors
	ErrInternal ErrorCode = "INTERNAL_ERROR"
)

// DetentionError represents a structured error with additional context
type DetentionError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	Context    map[string]interface{} `json:"context,omitempty"`
	HTTPStatus int                    `json:"-"`
}

// Error implements the error interface
func (e *DetentionError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *DetentionError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *DetentionError) WithContext(key string, value interface{}) *DetentionError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithCause adds the underlying cause error
func (e *DetentionError) WithCause(cause error) *DetentionError {
	e.Cause = cause
	return e
}

// GetHTTPStatus returns the appropriate HTTP status code for this error
func (e *DetentionError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}

	switch e.Code {
	case ErrMissingShortHash, ErrInvalidRequestType, ErrValidationFailed:
		return http.StatusBadRequest
	case ErrInstanceNotFound, ErrRouteNotFound, ErrConfigNotFound:
		return http.StatusNotFound
	case ErrAuthFailed:
		return http.StatusUnauthorized
	case ErrAPICall:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new DetentionError
func New(code ErrorCode, message string) *DetentionError {
	return &DetentionError{
		Code:    code,
		Message: message,
	}
}

// NewWithDetails creates a new DetentionError with details
func NewWithDetails(code ErrorCode, message, details string) *DetentionError {
	return &DetentionError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// WrapWithDetails creates a new DetentionError with details that wraps an existing error
func WrapWithDetails(code ErrorCode, message, details string, cause error) *DetentionError {
	return &DetentionError{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}

// As finds the first DetentionError in err's chain
func As(err error) (*DetentionError, bool) {
	var de *DetentionError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// GetCode extracts the error code from an error chain, if it holds a DetentionError
func GetCode(err error) ErrorCode {
	if de, ok := As(err); ok {
		return de.Code
	}
	return ""
}

// HasCode checks if an error has a specific error code
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}
