package todoist

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	notFound := &APIError{Op: "projects.delete", Method: http.MethodDelete, Path: "/projects/1", StatusCode: 404, Body: "Project not found"}
	unauthorized := &APIError{StatusCode: 401}
	forbidden := &APIError{StatusCode: 403, Body: "Forbidden"}
	transient := &TransientError{Op: "tasks.get", Err: context.DeadlineExceeded}

	tests := []struct {
		name          string
		err           error
		wantNotFound  bool
		wantAuth      bool
		wantTransient bool
	}{
		{name: "not found", err: notFound, wantNotFound: true},
		{name: "wrapped not found", err: fmt.Errorf("outer: %w", notFound), wantNotFound: true},
		{name: "unauthorized", err: unauthorized, wantAuth: true},
		{name: "forbidden", err: forbidden, wantAuth: true},
		{name: "transient", err: transient, wantTransient: true},
		{name: "validation", err: Required("task_id")},
		{name: "plain", err: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantNotFound, IsNotFound(tt.err))
			assert.Equal(t, tt.wantAuth, IsAuthFailure(tt.err))
			assert.Equal(t, tt.wantTransient, IsTransient(tt.err))
		})
	}
}

func TestAPIError_Message(t *testing.T) {
	assert.Equal(t, "Project not found", (&APIError{StatusCode: 404, Body: "Project not found\n"}).Message())
	assert.Equal(t, "Unauthorized", (&APIError{StatusCode: 401}).Message())
	assert.Contains(t, (&APIError{Op: "tasks.get", Method: "GET", Path: "/tasks/1", StatusCode: 500}).Error(), "returned 500")
}

func TestTransientError_Unwrap(t *testing.T) {
	err := &TransientError{Op: "tasks.get", Err: context.DeadlineExceeded}
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "priority", Constraint: "must be between 1 and 4"}
	assert.Equal(t, `invalid argument "priority": must be between 1 and 4`, err.Error())
	assert.Equal(t, `invalid argument "content": is required`, Required("content").Error())
}
