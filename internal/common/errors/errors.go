// Package errors provides the structured error type returned when survey
// catalogs, source configurations or response documents cannot be used.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeCatalogLoadFailed ErrorCode = "CATALOG_LOAD_FAILED"
	ErrCodeCatalogInvalid    ErrorCode = "CATALOG_INVALID"

	ErrCodeSourceNotFound ErrorCode = "SOURCE_NOT_FOUND"

	ErrCodeResponsesInvalid ErrorCode = "RESPONSES_INVALID"

	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key/value pair and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

// NewCatalogLoadFailedError reports a catalog file that could not be read or decoded.
func NewCatalogLoadFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogLoadFailed,
		Message:   "Survey catalog could not be loaded",
		Details:   fmt.Sprintf("path: %s, error: %v", path, err),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewCatalogInvalidError reports a structural authoring defect in the catalog.
func NewCatalogInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogInvalid,
		Message:   "Survey catalog failed validation",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewSourceNotFoundError is returned by strict source lookups.
func NewSourceNotFoundError(source string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSourceNotFound,
		Message:   "Source configuration not found",
		Details:   fmt.Sprintf("source: %s", source),
		Timestamp: time.Now().UTC(),
	}
}

// NewResponsesInvalidError reports a response document with the wrong shape.
func NewResponsesInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeResponsesInvalid,
		Message:   "Survey responses failed validation",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigInvalidError reports an unusable application configuration.
func NewConfigInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvalid,
		Message:   "Invalid configuration",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code == code
	}
	return false
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "CATALOG"):
		return "CATALOG"
	case strings.HasPrefix(codeStr, "SOURCE"):
		return "SOURCE"
	case strings.HasPrefix(codeStr, "RESPONSES"):
		return "INPUT"
	case strings.HasPrefix(codeStr, "CONFIG"):
		return "CONFIG"
	default:
		return "OTHER"
	}
}
