package entities

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies a failed backend call.
type ErrorCode string

const (
	ErrorCodeBadRequest          ErrorCode = "BAD_REQUEST"
	ErrorCodeUnauthorized        ErrorCode = "UNAUTHORIZED"
	ErrorCodeForbidden           ErrorCode = "FORBIDDEN"
	ErrorCodeNotFound            ErrorCode = "NOT_FOUND"
	ErrorCodeConflict            ErrorCode = "CONFLICT"
	ErrorCodeValidation          ErrorCode = "VALIDATION_ERROR"
	ErrorCodeRateLimited         ErrorCode = "RATE_LIMITED"
	ErrorCodeInternalServer      ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrorCodeBadGateway          ErrorCode = "BAD_GATEWAY"
	ErrorCodeServiceUnavailable  ErrorCode = "SERVICE_UNAVAILABLE"
	ErrorCodeGatewayTimeout      ErrorCode = "GATEWAY_TIMEOUT"
	ErrorCodeNetwork             ErrorCode = "NETWORK_ERROR"
	ErrorCodeUnknown             ErrorCode = "UNKNOWN_ERROR"
	ErrorCodeNotImplemented      ErrorCode = "NOT_IMPLEMENTED"
	ErrorCodeNotSupported        ErrorCode = "NOT_SUPPORTED"
	ErrorCodeDecode              ErrorCode = "DECODE_ERROR"
	ErrorCodeInvalidInput        ErrorCode = "INVALID_INPUT"
)

// HTTPStatusCode builds the fallback code for statuses outside the known table.
func HTTPStatusCode(status int) ErrorCode {
	return ErrorCode(fmt.Sprintf("HTTP_%d", status))
}

// APIError is the single error shape every adapter returns.
type APIError struct {
	Code       ErrorCode
	Message    string // always prefixed with the provider display name
	Provider   string
	StatusCode int // zero when no response was received
	Retryable  bool
	Cause      error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// Equal compares everything but the cause, which is usually not comparable.
func (e *APIError) Equal(other *APIError) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.Code == other.Code &&
		e.Message == other.Message &&
		e.Provider == other.Provider &&
		e.StatusCode == other.StatusCode &&
		e.Retryable == other.Retryable
}

// AsAPIError extracts an APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsErrorCode reports whether err carries the given code.
func IsErrorCode(err error, code ErrorCode) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Code == code
}

// IsRetryable reports whether the failed call may succeed if repeated.
func IsRetryable(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Retryable
}

// NewNotImplementedError is returned by every contract method a backend does not override.
func NewNotImplementedError(provider, operation string) *APIError {
	return &APIError{
		Code:     ErrorCodeNotImplemented,
		Message:  fmt.Sprintf("%s: %s is not implemented", provider, operation),
		Provider: provider,
	}
}

// NewNotSupportedError reports a capability the backend does not offer.
func NewNotSupportedError(provider, feature string) *APIError {
	return &APIError{
		Code:     ErrorCodeNotSupported,
		Message:  fmt.Sprintf("%s: %s is not supported by this backend", provider, feature),
		Provider: provider,
	}
}

// NewDecodeError wraps a response body that does not match the expected shape.
func NewDecodeError(provider string, cause error) *APIError {
	return &APIError{
		Code:     ErrorCodeDecode,
		Message:  fmt.Sprintf("%s: unexpected response payload: %v", provider, cause),
		Provider: provider,
		Cause:    cause,
	}
}

// NewInvalidInputError rejects tool arguments before any backend is called.
func NewInvalidInputError(provider string, cause error) *APIError {
	return &APIError{
		Code:     ErrorCodeInvalidInput,
		Message:  fmt.Sprintf("%s: invalid input: %v", provider, cause),
		Provider: provider,
		Cause:    cause,
	}
}

// NewConflictError reports a state conflict detected by the adapter itself.
func NewConflictError(provider, detail string) *APIError {
	return &APIError{
		Code:       ErrorCodeConflict,
		Message:    fmt.Sprintf("%s: Conflict: %s", provider, detail),
		Provider:   provider,
		StatusCode: http.StatusConflict,
	}
}
