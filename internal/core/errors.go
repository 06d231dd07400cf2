package core

import (
	"fmt"
	"net/http"
)

// ErrorType classifies a gateway error.
type ErrorType string

const (
	// ErrorTypeInvalidRequest indicates a client error (400): bad field
	// ranges, unknown categories, malformed bodies.
	ErrorTypeInvalidRequest ErrorType = "invalid_request_error"
	// ErrorTypeNotFound indicates the provider returned zero usable
	// features for a geocode/reverse lookup (404).
	ErrorTypeNotFound ErrorType = "not_found_error"
	// ErrorTypeUpstream indicates a transport failure, timeout, or
	// non-success status from the provider (502).
	ErrorTypeUpstream ErrorType = "upstream_error"
)

// GatewayError is the base error type for all gateway errors.
type GatewayError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code"`
	Provider   string    `json:"provider,omitempty"`
	// Original error for debugging (not exposed to clients)
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *GatewayError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Provider, e.Type, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the error unwrapping interface.
func (e *GatewayError) Unwrap() error {
	return e.Err
}

// HTTPStatusCode returns the HTTP status code for this error.
func (e *GatewayError) HTTPStatusCode() int {
	if e.StatusCode != 0 {
		return e.StatusCode
	}
	switch e.Type {
	case ErrorTypeInvalidRequest:
		return http.StatusBadRequest
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ToJSON converts the error to a JSON-compatible map.
func (e *GatewayError) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"error": map[string]interface{}{
			"type":    e.Type,
			"message": e.Message,
		},
	}
}

// NewInvalidRequestError creates a new invalid request error (400).
func NewInvalidRequestError(message string, err error) *GatewayError {
	return &GatewayError{
		Type:       ErrorTypeInvalidRequest,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Err:        err,
	}
}

// NewInvalidCategoryError creates the rejection for a category that is not in
// the mapping table. The request never reaches the provider.
func NewInvalidCategoryError(category string) *GatewayError {
	return &GatewayError{
		Type:       ErrorTypeInvalidRequest,
		Message:    "invalid category: " + category,
		StatusCode: http.StatusBadRequest,
	}
}

// NewNotFoundError creates a new not found error (404).
func NewNotFoundError(message string) *GatewayError {
	return &GatewayError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewUpstreamError creates the uniform upstream-failure error (502). Any
// transport error, timeout, or non-success status collapses into this.
func NewUpstreamError(provider string, message string, err error) *GatewayError {
	return &GatewayError{
		Type:       ErrorTypeUpstream,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Provider:   provider,
		Err:        err,
	}
}
