package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/enrique89ve/hive-challenge-analyzer/internal/types"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	// CategoryNetwork represents transport failures where no response was obtained
	CategoryNetwork ErrorCategory = "network"
	// CategoryProvider represents upstream API failures (non-success status)
	CategoryProvider ErrorCategory = "provider"
	// CategoryValidation represents caller input validation errors
	CategoryValidation ErrorCategory = "validation"
	// CategoryParse represents malformed data from an external source
	CategoryParse ErrorCategory = "parse"
	// CategorySystem represents internal errors
	CategorySystem ErrorCategory = "system"
)

// CategorizedError represents an error with category and HTTP status code
type CategorizedError struct {
	Category   ErrorCategory
	StatusCode int
	Code       string
	Message    string
	Details    map[string]interface{}
	Cause      error
}

// Error implements the error interface
func (e *CategorizedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *CategorizedError) Unwrap() error {
	return e.Cause
}

// ToServiceError converts to a ServiceError
func (e *CategorizedError) ToServiceError() *types.ServiceError {
	return &types.ServiceError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	}
}

// NewNetworkError creates an error for a transport failure where no
// response was obtained from an external call.
func NewNetworkError(endpoint string, cause error) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryNetwork,
		StatusCode: http.StatusBadGateway,
		Code:       "NETWORK_ERROR",
		Message:    fmt.Sprintf("no response from %s", endpoint),
		Cause:      cause,
		Details: map[string]interface{}{
			"endpoint": endpoint,
		},
	}
}

// NewUpstreamError creates an error for a non-success status returned by
// an external API.
func NewUpstreamError(status int, endpoint string) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryProvider,
		StatusCode: http.StatusBadGateway,
		Code:       "UPSTREAM_API_ERROR",
		Message:    fmt.Sprintf("upstream API returned HTTP %d", status),
		Details: map[string]interface{}{
			"status":   status,
			"endpoint": endpoint,
		},
	}
}

// NewInvalidRangeError creates an error for an inverted or empty date range
func NewInvalidRangeError(reason string) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryValidation,
		StatusCode: http.StatusBadRequest,
		Code:       "INVALID_DATE_RANGE",
		Message:    reason,
	}
}

// NewInvalidParameterError creates an invalid parameter error
func NewInvalidParameterError(param string, reason string) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryValidation,
		StatusCode: http.StatusBadRequest,
		Code:       "INVALID_PARAMETER",
		Message:    fmt.Sprintf("invalid parameter '%s': %s", param, reason),
		Details: map[string]interface{}{
			"parameter": param,
			"reason":    reason,
		},
	}
}

// NewParseError creates an error for malformed data from an external source
func NewParseError(source string, cause error) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryParse,
		StatusCode: http.StatusBadGateway,
		Code:       "PARSE_ERROR",
		Message:    fmt.Sprintf("malformed data from %s", source),
		Cause:      cause,
		Details: map[string]interface{}{
			"source": source,
		},
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string, cause error) *CategorizedError {
	return &CategorizedError{
		Category:   CategorySystem,
		StatusCode: http.StatusInternalServerError,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		Cause:      cause,
	}
}

// Categorize categorizes an existing error
func Categorize(err error) *CategorizedError {
	if err == nil {
		return nil
	}

	var catErr *CategorizedError
	if errors.As(err, &catErr) {
		return catErr
	}

	return NewInternalError("unexpected error", err)
}

// GetHTTPStatusCode returns the HTTP status code for an error
func GetHTTPStatusCode(err error) int {
	if catErr := Categorize(err); catErr != nil {
		return catErr.StatusCode
	}
	return http.StatusInternalServerError
}

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool {
	catErr := Categorize(err)
	return catErr != nil && catErr.Category == CategoryNetwork
}

// IsUpstream reports whether err is an upstream API failure.
func IsUpstream(err error) bool {
	catErr := Categorize(err)
	return catErr != nil && catErr.Category == CategoryProvider
}

// IsRetryable determines if an error is retryable
func IsRetryable(err error) bool {
	catErr := Categorize(err)
	if catErr == nil {
		return false
	}

	switch catErr.Category {
	case CategoryNetwork, CategoryProvider:
		return true
	default:
		return false
	}
}
