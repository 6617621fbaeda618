// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters, missing data, type mismatches
//   - Data/Resource errors (200-299): Data not found, query failures, unavailable resources
//   - Indicator errors (300-399): Technical indicator calculation and lookup errors
//   - Input and model errors (400-499): Feature series and trading model errors
//   - Backtest errors (600-699): Backtesting engine and run errors
//   - Market data errors (700-799): Exchange download and candle writing errors
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidParameter, "invalid parameter value")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeRunNotFound, "run %s not found", runID)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeQueryFailed, "failed to execute query", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeRunNotFound) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode of the outermost coded error in the chain.
// Returns ErrCodeUnknown if the chain holds neither an *Error nor an
// *InsufficientDataError.
func GetCode(err error) ErrorCode {
	for ; err != nil; err = errors.Unwrap(err) {
		if code, ok := codeOf(err); ok {
			return code
		}
	}

	return ErrCodeUnknown
}

// HasCode reports whether any coded error in the chain carries the given code.
// Inputs wrap indicator errors and the engine wraps input errors, so the
// code of interest is not always the outermost one.
func HasCode(err error, code ErrorCode) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if c, ok := codeOf(err); ok && c == code {
			return true
		}
	}

	return false
}

// codeOf reports the code carried by err itself, without unwrapping.
func codeOf(err error) (ErrorCode, bool) {
	switch e := err.(type) {
	case *Error:
		return e.Code, true
	case *InsufficientDataError:
		return ErrCodeInsufficientData, true
	default:
		return ErrCodeUnknown, false
	}
}

// InsufficientDataError is returned when a calculation or a run receives
// fewer candles than it needs.
type InsufficientDataError struct {
	Required  int    // Minimum candles required
	Available int    // Candles actually supplied
	Name      string // Optional: indicator or input name
}

// NewInsufficientDataError creates a new InsufficientDataError.
func NewInsufficientDataError(required, available int, name string) *InsufficientDataError {
	return &InsufficientDataError{
		Required:  required,
		Available: available,
		Name:      name,
	}
}

// Error implements the error interface.
func (e *InsufficientDataError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("[%d] insufficient data: required %d candles, got %d",
			ErrCodeInsufficientData, e.Required, e.Available)
	}

	return fmt.Sprintf("[%d] insufficient data for %s: required %d candles, got %d",
		ErrCodeInsufficientData, e.Name, e.Required, e.Available)
}

// IsInsufficientDataError checks if an error is an InsufficientDataError.
// It uses errors.As to check the error chain.
func IsInsufficientDataError(err error) bool {
	var insufficientErr *InsufficientDataError

	return errors.As(err, &insufficientErr)
}
