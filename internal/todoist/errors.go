package todoist

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ValidationError reports an argument that failed a contract check before
// any request was made.
type ValidationError struct {
	// Field is the offending argument name, e.g. "priority".
	Field string

	// Constraint describes the violated rule, e.g. "must be between 1 and 4".
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Constraint)
}

// Required returns a ValidationError for a missing required field.
func Required(field string) *ValidationError {
	return &ValidationError{Field: field, Constraint: "is required"}
}

// APIError is a non-success response from Todoist. Body holds the
// remote diagnostic verbatim.
type APIError struct {
	Op         string
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("todoist %s: %s %s returned %d: %s", e.Op, e.Method, e.Path, e.StatusCode, msg)
}

// Message returns the remote diagnostic, falling back to the status text.
func (e *APIError) Message() string {
	if msg := strings.TrimSpace(e.Body); msg != "" {
		return msg
	}
	return http.StatusText(e.StatusCode)
}

// TransientError wraps a failure to reach Todoist at all: DNS, connection
// refused, timeouts, cancelled contexts. Callers may retry.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("todoist %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// ConfigurationError is a missing or invalid setting detected at startup.
type ConfigurationError struct {
	Setting string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s %s", e.Setting, e.Reason)
}

// IsNotFound reports whether err is a 404 from Todoist.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsAuthFailure reports whether Todoist rejected the credential.
func IsAuthFailure(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		(apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden)
}

// IsTransient reports whether err is a *TransientError.
func IsTransient(err error) bool {
	var transient *TransientError
	return errors.As(err, &transient)
}
