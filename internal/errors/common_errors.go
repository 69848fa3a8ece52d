package errors

import (
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeParsing      ErrorType = "PARSING"
	ErrTypeValidation   ErrorType = "VALIDATION"
	ErrTypeCurrency     ErrorType = "CURRENCY"
	ErrTypeEmptyDataset ErrorType = "EMPTY_DATASET"
	ErrTypeStorage      ErrorType = "STORAGE"
	ErrTypeRender       ErrorType = "RENDER"
	ErrTypeNotFound     ErrorType = "NOT_FOUND"
	ErrTypeConfig       ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Helper functions for common error types

// NewParsingError creates a parsing-related error. The cause is joined with
// ErrMalformedValue so callers can match either.
func NewParsingError(message string, cause error) *AppError {
	if cause == nil {
		return NewAppError(ErrTypeParsing, message, ErrMalformedValue)
	}
	return NewAppError(ErrTypeParsing, message, fmt.Errorf("%w: %w", ErrMalformedValue, cause))
}

// NewRowRejectedError reports a row that fails the presence checks and
// should be skipped.
func NewRowRejectedError(reason string) *AppError {
	return NewAppError(ErrTypeValidation, reason, ErrRowRejected)
}

// NewCurrencyError reports a currency code missing from the rate table.
func NewCurrencyError(code string) *AppError {
	return NewAppError(ErrTypeCurrency, fmt.Sprintf("unknown currency code %q", code), ErrUnknownCurrency).
		WithContext("currency", code)
}

// NewMissingColumnError reports a required header column that is absent.
func NewMissingColumnError(column string) *AppError {
	return NewAppError(ErrTypeValidation, fmt.Sprintf("required column %q not found in header", column), ErrMissingColumn).
		WithContext("column", column)
}

// NewEmptyDatasetError reports that no valid vacancy reached the aggregator.
func NewEmptyDatasetError() *AppError {
	return NewAppError(ErrTypeEmptyDataset, "no valid vacancies to aggregate", ErrEmptyDataset)
}

// NewUnknownModeError reports an output mode answer that is not offered.
func NewUnknownModeError(input string) *AppError {
	return NewAppError(ErrTypeValidation, fmt.Sprintf("unknown output mode %q", input), ErrUnknownMode).
		WithContext("input", input)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewRenderError creates an error for a failed chart, workbook or document render.
func NewRenderError(message string, cause error) *AppError {
	return NewAppError(ErrTypeRender, message, cause)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
