package errx

import "net/http"

// Type represents the category of error
type Type string

const (
	// TypeInternal represents failures inside this process
	TypeInternal Type = "INTERNAL"

	// TypeValidation represents malformed input, local or rejected by a remote API
	TypeValidation Type = "VALIDATION"

	// TypeAuthorization represents rejected or missing credentials
	TypeAuthorization Type = "AUTHORIZATION"

	// TypeNotFound represents a missing resource
	TypeNotFound Type = "NOT_FOUND"

	// TypeConflict represents a resource conflict
	TypeConflict Type = "CONFLICT"

	// TypeRateLimit represents throttling by a remote API
	TypeRateLimit Type = "RATE_LIMIT"

	// TypeExternal represents any other failure of a remote service
	TypeExternal Type = "EXTERNAL"
)

// String returns the string representation of the error type
func (t Type) String() string {
	return string(t)
}

// HTTPStatus returns the status code an HTTP server should answer with
// for an error of this type.
func (t Type) HTTPStatus() int {
	switch t {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeAuthorization:
		return http.StatusUnauthorized
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeRateLimit:
		return http.StatusTooManyRequests
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// TypeFromStatus classifies a status code received from a remote API.
// Statuses below 400 are not errors and classify as TypeInternal so a
// caller never mistakes them for a remote rejection.
func TypeFromStatus(status int) Type {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return TypeAuthorization
	case status == http.StatusNotFound:
		return TypeNotFound
	case status == http.StatusConflict:
		return TypeConflict
	case status == http.StatusTooManyRequests:
		return TypeRateLimit
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return TypeValidation
	case status >= 400:
		return TypeExternal
	default:
		return TypeInternal
	}
}

// Validation creates a validation error
func Validation(message string) *Error {
	return New(message, TypeValidation)
}

// Unauthorized creates an authorization error
func Unauthorized(message string) *Error {
	return New(message, TypeAuthorization)
}

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(message, TypeNotFound)
}

// Internal creates an internal error
func Internal(message string) *Error {
	return New(message, TypeInternal)
}

// External creates an external service error
func External(message string) *Error {
	return New(message, TypeExternal)
}
