package common

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/todoist-mcp/internal/todoist"
)

// Failure kinds reported to clients, metrics and the audit log.
const (
	KindValidation      = "validation_error"
	KindRemoteRejection = "remote_rejection"
	KindTransient       = "transient_error"
	KindConfiguration   = "configuration_error"
	KindInternal        = "internal_error"
)

// Reasons refine a remote rejection.
const (
	ReasonNotFound     = "not_found"
	ReasonUnauthorized = "unauthorized"
)

// Failure is the structured payload of a failed tool call.
type Failure struct {
	Kind       string `json:"error"`
	Message    string `json:"message"`
	Field      string `json:"field,omitempty"`
	Constraint string `json:"constraint,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Retryable  bool   `json:"retryable"`
}

// ErrorKind classifies err into one of the Kind constants.
func ErrorKind(err error) string {
	var (
		validationErr *todoist.ValidationError
		apiErr        *todoist.APIError
		configErr     *todoist.ConfigurationError
	)
	switch {
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.As(err, &apiErr):
		return KindRemoteRejection
	case todoist.IsTransient(err),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return KindTransient
	case errors.As(err, &configErr):
		return KindConfiguration
	default:
		return KindInternal
	}
}

// FailureFromError builds the client facing description of err.
func FailureFromError(err error) Failure {
	f := Failure{Kind: ErrorKind(err), Message: err.Error()}

	switch f.Kind {
	case KindValidation:
		var validationErr *todoist.ValidationError
		errors.As(err, &validationErr)
		f.Field = validationErr.Field
		f.Constraint = validationErr.Constraint
	case KindRemoteRejection:
		var apiErr *todoist.APIError
		errors.As(err, &apiErr)
		f.Message = apiErr.Message()
		f.StatusCode = apiErr.StatusCode
		switch {
		case todoist.IsNotFound(err):
			f.Reason = ReasonNotFound
		case todoist.IsAuthFailure(err):
			f.Reason = ReasonUnauthorized
		}
	case KindTransient:
		f.Retryable = true
	}
	return f
}

// ToolResultFromError converts err into an IsError tool result whose text
// is the JSON encoded Failure.
func ToolResultFromError(err error) *mcp.CallToolResult {
	payload, marshalErr := json.MarshalIndent(FailureFromError(err), "", "  ")
	if marshalErr != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultError(string(payload))
}
