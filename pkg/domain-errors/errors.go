// Package domainerrors defines the error taxonomy shared across services and
// the single place where domain error codes map to HTTP statuses.
//
// Expected business outcomes (a name mismatch, a salary below threshold) are
// NOT errors; services return them as values. Only infrastructure faults and
// request-shape problems travel through this package.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error for transport mapping and logging.
type Code string

const (
	// CodeInvalidInput marks missing or malformed caller input (HTTP 400).
	CodeInvalidInput Code = "invalid_input"
	// CodeNotFound marks an absent PAN, offer, or application (HTTP 404).
	CodeNotFound Code = "not_found"
	// CodeConflict marks a state transition that already happened, e.g. an
	// offer token redeemed twice (HTTP 409).
	CodeConflict Code = "conflict"
	// CodeUpstream marks a storage or delivery collaborator failure (HTTP 500).
	CodeUpstream Code = "upstream_error"
	// CodeInternal marks everything else we did not expect (HTTP 500).
	CodeInternal Code = "internal_error"
)

// DomainError carries a code and a caller-safe message. The wrapped cause, if
// any, is for server-side logs only and must never reach the client.
type DomainError struct {
	Code    Code
	Message string
	cause   error
}

func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error { return e.cause }

// New creates a DomainError with a caller-safe message.
func New(code Code, message string) error {
	return &DomainError{Code: code, Message: message}
}

// Newf creates a DomainError with a formatted caller-safe message.
func Newf(code Code, format string, args ...any) error {
	return &DomainError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and caller-safe message to an underlying cause.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &DomainError{Code: code, Message: message, cause: err}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that did not originate in this package.
func CodeOf(err error) Code {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf extracts the caller-safe message, falling back to a generic one so
// raw error text never leaks to clients.
func MessageOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal server error"
}

// ToHTTPStatus maps a code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUpstream, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
