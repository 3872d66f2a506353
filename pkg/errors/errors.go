package errors

import (
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeNetwork      ErrorType = "network"
	ErrorTypeProcessing   ErrorType = "processing"
	ErrorTypeTimeout      ErrorType = "timeout"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeInternal     ErrorType = "internal"

	// Pixel buffer errors raised by the conversion pipeline
	ErrorTypeInvalidBufferSize ErrorType = "invalid_buffer_size"
	ErrorTypeInvalidDimensions ErrorType = "invalid_dimensions"
	ErrorTypeUnsupportedFormat ErrorType = "unsupported_format"
)

// Sentinels for errors.Is. Matching compares the error type only.
var (
	ErrInvalidBufferSize = &AppError{Type: ErrorTypeInvalidBufferSize, Message: "invalid buffer size"}
	ErrInvalidDimensions = &AppError{Type: ErrorTypeInvalidDimensions, Message: "invalid dimensions"}
	ErrUnsupportedFormat = &AppError{Type: ErrorTypeUnsupportedFormat, Message: "unsupported format"}
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"status_code"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError of the same type
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// BufferSizeError carries the sample counts of a rejected pixel buffer
type BufferSizeError struct {
	Expected int
	Actual   int
}

func (e *BufferSizeError) Error() string {
	return fmt.Sprintf("expected length %d, got %d", e.Expected, e.Actual)
}

// NewInvalidBufferSizeError creates an error for a buffer whose length does not match its dimensions
func NewInvalidBufferSizeError(expected, actual int) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidBufferSize,
		Message:    "buffer length does not match width*height*channels",
		Details:    fmt.Sprintf("expected=%d actual=%d", expected, actual),
		StatusCode: http.StatusBadRequest,
		Cause:      &BufferSizeError{Expected: expected, Actual: actual},
	}
}

// NewInvalidDimensionsError creates an error for unusable image dimensions
func NewInvalidDimensionsError(message string, width, height int) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidDimensions,
		Message:    message,
		Details:    fmt.Sprintf("width=%d height=%d", width, height),
		StatusCode: http.StatusBadRequest,
	}
}

// NewUnsupportedFormatError creates an error for an unknown pixel format or sample kind
func NewUnsupportedFormatError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnsupportedFormat,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewNetworkError creates a new network error
func NewNetworkError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNetwork,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewProcessingError creates a new processing error
func NewProcessingError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeProcessing,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeTimeout,
		Message:    message,
		StatusCode: http.StatusGatewayTimeout,
		Cause:      cause,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
		Cause:      cause,
	}
}

// IsType checks if the error chain contains an AppError of a specific type
func IsType(err error, errorType ErrorType) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.Type == errorType {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// GetStatusCode extracts the HTTP status code from an error
func GetStatusCode(err error) int {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.StatusCode != 0 {
			return appErr.StatusCode
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return http.StatusInternalServerError
}
