// Package errors provides structured error types for asset internalization
// failures. Every failure the engine can hit maps to one of the ErrorType
// categories; the engine recovers all of them into an Invalid outcome rather
// than propagating them to callers.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	// ErrorTypeSource marks identifiers that are neither a valid local
	// path, URL, nor an existing file/directory/archive.
	ErrorTypeSource ErrorType = "source"
	// ErrorTypeFetch marks failed network fetches or local reads.
	ErrorTypeFetch ErrorType = "fetch"
	// ErrorTypeWrite marks failed writes to the storage disk.
	ErrorTypeWrite ErrorType = "write"
	// ErrorTypeArchive marks archives that cannot be extracted.
	ErrorTypeArchive  ErrorType = "archive"
	ErrorTypeConfig   ErrorType = "config"
	ErrorTypeInternal ErrorType = "internal"
)

// BassetError is a structured error type with context.
type BassetError struct {
	Type    ErrorType
	Code    string
	Message string
	Cause   error
	Asset   string
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *BassetError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Asset != "" {
		parts = append(parts, "asset:"+e.Asset)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *BassetError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *BassetError) Is(target error) bool {
	var t *BassetError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithAsset adds the asset identifier the error relates to.
func (e *BassetError) WithAsset(asset string) *BassetError {
	e.Asset = asset

	return e
}

// WithContext adds context information to the error.
func (e *BassetError) WithContext(key string, value interface{}) *BassetError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// NewSourceError creates an error for an unusable asset identifier.
func NewSourceError(code, message string) *BassetError {
	return &BassetError{
		Type:    ErrorTypeSource,
		Code:    code,
		Message: message,
	}
}

// NewFetchError creates an error for a failed download or local read.
func NewFetchError(code, message string, cause error) *BassetError {
	return &BassetError{
		Type:    ErrorTypeFetch,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewWriteError creates an error for a failed storage write.
func NewWriteError(code, message string) *BassetError {
	return &BassetError{
		Type:    ErrorTypeWrite,
		Code:    code,
		Message: message,
	}
}

// NewArchiveError creates an error for a failed archive extraction.
func NewArchiveError(code, message string, cause error) *BassetError {
	return &BassetError{
		Type:    ErrorTypeArchive,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string, cause error) *BassetError {
	return &BassetError{
		Type:    ErrorTypeConfig,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsType reports whether err is a BassetError of the given type.
func IsType(err error, t ErrorType) bool {
	var be *BassetError
	if errors.As(err, &be) {
		return be.Type == t
	}

	return false
}
