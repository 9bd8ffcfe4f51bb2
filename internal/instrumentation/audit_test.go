package instrumentation

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attrsByKey(attrs []slog.Attr) map[string]slog.Value {
	out := make(map[string]slog.Value, len(attrs))
	for _, a := range attrs {
		out[a.Key] = a.Value
	}
	return out
}

func TestToolInvocation_CompleteSuccess(t *testing.T) {
	ti := NewToolInvocation("todoist_get_task").
		WithOperation(ResourceTasks, OperationGet).
		WithResourceID("123")
	time.Sleep(time.Millisecond)
	ti.CompleteSuccess()

	assert.True(t, ti.Success)
	assert.Equal(t, StatusSuccess, ti.Status())
	assert.Greater(t, ti.Duration, time.Duration(0))
	assert.Empty(t, ti.Error)
}

func TestToolInvocation_CompleteWithError(t *testing.T) {
	ti := NewToolInvocation("todoist_delete_project").
		CompleteWithError(errors.New("project not found"), "remote_rejection")

	assert.False(t, ti.Success)
	assert.Equal(t, StatusError, ti.Status())
	assert.Equal(t, "project not found", ti.Error)
	assert.Equal(t, "remote_rejection", ti.ErrorKind)
}

func TestToolInvocation_LogAttrs(t *testing.T) {
	ti := NewToolInvocation("todoist_add_comment").
		WithOperation(ResourceComments, OperationCreate).
		WithResourceID("task-1").
		WithContent("Need to buy milk")
	ti.CompleteSuccess()

	tests := []struct {
		name           string
		includeContent bool
	}{
		{name: "without content", includeContent: false},
		{name: "with content", includeContent: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := attrsByKey(ti.LogAttrs(tt.includeContent))

			assert.Equal(t, "todoist_add_comment", attrs["tool"].String())
			assert.Equal(t, ResourceComments, attrs["resource"].String())
			assert.Equal(t, OperationCreate, attrs["operation"].String())
			assert.Equal(t, "task-1", attrs["resource_id"].String())
			_, hasContent := attrs["content"]
			assert.Equal(t, tt.includeContent, hasContent)
			_, hasError := attrs["error"]
			assert.False(t, hasError)
		})
	}
}

func TestToolInvocation_WithSpanContext_NoSpan(t *testing.T) {
	ti := NewToolInvocation("tool").WithSpanContext(context.Background())
	assert.Empty(t, ti.TraceID)
	assert.Empty(t, ti.SpanID)
}

func TestAuditLogger_LogToolInvocation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	al := NewAuditLoggerWithConfig(logger, AuditLoggingConfig{Enabled: true})

	al.LogToolInvocation(NewToolInvocation("todoist_get_projects").CompleteSuccess())
	al.LogToolInvocation(NewToolInvocation("todoist_add_task").CompleteWithError(errors.New("bad priority"), "validation_error"))

	out := buf.String()
	assert.Contains(t, out, "level=INFO msg=tool_executed")
	assert.Contains(t, out, "level=WARN msg=tool_failed")
	assert.Contains(t, out, "component=audit")
	assert.Contains(t, out, "error_kind=validation_error")
	assert.False(t, al.IncludeContent())
}

func TestAuditLogger_Disabled(t *testing.T) {
	var buf bytes.Buffer
	al := NewAuditLoggerWithConfig(slog.New(slog.NewTextHandler(&buf, nil)), AuditLoggingConfig{Enabled: false})

	al.LogToolInvocation(NewToolInvocation("tool").CompleteSuccess())
	assert.Empty(t, buf.String())
}

func TestAuditLogger_Nil(t *testing.T) {
	var al *AuditLogger
	require.NotPanics(t, func() {
		al.LogToolInvocation(NewToolInvocation("tool").CompleteSuccess())
	})
	assert.False(t, al.IncludeContent())
}
