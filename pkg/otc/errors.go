package otc

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind identifies a member of the closed error taxonomy. Every failure the
// library surfaces is an *Error carrying exactly one Kind.
type Kind string

const (
	// KindAPI is the catch-all for response codes with no dedicated kind.
	KindAPI Kind = "api"

	// KindValidation covers malformed input, whether rejected locally before
	// any request is issued or reported by the provider as a 400.
	KindValidation Kind = "validation"

	// KindAuthentication covers a 401 response or a missing credential at
	// construction time.
	KindAuthentication Kind = "authentication"

	// KindNotFound covers a 404 response.
	KindNotFound Kind = "not_found"

	// KindRateLimit covers a 429 response.
	KindRateLimit Kind = "rate_limit"

	// KindServer covers 5xx responses.
	KindServer Kind = "server"

	// KindNetwork covers transport failures where no response was received.
	KindNetwork Kind = "network"
)

// Error is the base type for every error raised by this library. Callers can
// match broadly with errors.As(*Error) or narrowly with the Is* helpers.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int

	// ResponseData holds the decoded error body when the provider returned
	// parsable JSON, nil otherwise.
	ResponseData interface{}

	// RetryAfter is the provider's Retry-After hint on 429 responses, zero
	// when absent. The library itself never retries.
	RetryAfter time.Duration

	// Err is the underlying cause for network failures.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s (status: %d)", e.Message, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	default:
		return e.Message
	}
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorFromStatus maps a non-success HTTP status code onto its taxonomy kind.
func ErrorFromStatus(statusCode int, message string, responseData interface{}) *Error {
	kind := KindAPI

	switch {
	case statusCode == http.StatusBadRequest:
		kind = KindValidation
	case statusCode == http.StatusUnauthorized:
		kind = KindAuthentication
	case statusCode == http.StatusNotFound:
		kind = KindNotFound
	case statusCode == http.StatusTooManyRequests:
		kind = KindRateLimit
	case statusCode >= 500 && statusCode <= 599:
		kind = KindServer
	}

	return &Error{
		Kind:         kind,
		Message:      message,
		StatusCode:   statusCode,
		ResponseData: responseData,
	}
}

// NewValidationError builds a local, pre-flight validation error. It carries
// no status code because no request was issued.
func NewValidationError(format string, args ...interface{}) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewAuthenticationError builds a construction-time credential error.
func NewAuthenticationError(message string) *Error {
	return &Error{
		Kind:    KindAuthentication,
		Message: message,
	}
}

// NewNetworkError wraps a transport failure where no response was received.
func NewNetworkError(message string, cause error) *Error {
	return &Error{
		Kind:    KindNetwork,
		Message: message,
		Err:     cause,
	}
}

func hasKind(err error, kind Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}

	return false
}

// IsValidation checks if the error is a validation error, local or
// server-reported.
func IsValidation(err error) bool {
	return hasKind(err, KindValidation)
}

// IsAuthentication checks if the error is an authentication error.
func IsAuthentication(err error) bool {
	return hasKind(err, KindAuthentication)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasKind(err, KindNotFound)
}

// IsRateLimit checks if the error is a rate limit error.
func IsRateLimit(err error) bool {
	return hasKind(err, KindRateLimit)
}

// IsServer checks if the error is a provider-side 5xx error.
func IsServer(err error) bool {
	return hasKind(err, KindServer)
}

// IsNetwork checks if the error is a transport failure.
func IsNetwork(err error) bool {
	return hasKind(err, KindNetwork)
}
