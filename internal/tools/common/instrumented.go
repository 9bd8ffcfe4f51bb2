package common

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/teemow/todoist-mcp/internal/instrumentation"
	"github.com/teemow/todoist-mcp/internal/logging"
	"github.com/teemow/todoist-mcp/internal/server"
)

// ToolHandler is the signature of a tool implementation. Returned errors
// are converted into structured failure results by InstrumentedToolHandler.
type ToolHandler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// contentPreviewRunes bounds the user content copied into audit records.
const contentPreviewRunes = 80

// idArguments are checked in order to find the entity a call targets.
var idArguments = []string{"task_id", "comment_id", "section_id", "project_id"}

// InstrumentedToolHandler wraps a tool handler with tracing, metrics and
// audit logging, and turns handler errors into failure results.
//
// Usage:
//
//	s.AddTool(tool, common.InstrumentedToolHandler("todoist_get_task",
//	    instrumentation.ResourceTasks, instrumentation.OperationGet, true, sc, handler))
func InstrumentedToolHandler(
	toolName string,
	resource string,
	operation string,
	readOnly bool,
	sc *server.ServerContext,
	handler ToolHandler,
) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		resourceID := targetID(args)

		ctx, span := instrumentation.StartToolSpan(ctx, toolName,
			instrumentation.NewSpanAttributeBuilder().
				WithOperation(resource, operation).
				WithResourceID(resourceID).
				WithReadOnly(readOnly).
				Build()...,
		)
		defer span.End()

		auditLogger := sc.AuditLogger()
		invocation := instrumentation.NewToolInvocation(toolName).
			WithOperation(resource, operation).
			WithResourceID(resourceID).
			WithSpanContext(ctx)
		if auditLogger.IncludeContent() {
			invocation.WithContent(contentPreview(args))
		}

		start := time.Now()
		result, err := handler(ctx, request)
		duration := time.Since(start)

		logger := logging.WithResource(logging.WithOperation(logging.WithTool(sc.Logger(), toolName), operation), resource)
		logAttrs := []any{logging.ResourceID(resourceID), slog.Duration(logging.KeyDuration, duration)}

		status := instrumentation.StatusSuccess
		if err != nil {
			status = instrumentation.StatusError
			kind := ErrorKind(err)
			result = ToolResultFromError(err)

			instrumentation.SetSpanError(span, err)
			span.SetAttributes(attribute.String(instrumentation.SpanAttrErrorKind, kind))
			invocation.CompleteWithError(err, kind)
			sc.Metrics().RecordToolFailure(ctx, toolName, kind)

			// Validation failures never reach Todoist.
			if kind != KindValidation {
				sc.Metrics().RecordAPIOperation(ctx, resource, operation, status, duration)
			}

			logAttrs = append(logAttrs, logging.Err(err), slog.String(logging.KeyErrorKind, kind))
		} else {
			instrumentation.SetSpanSuccess(span)
			invocation.CompleteSuccess()
			sc.Metrics().RecordAPIOperation(ctx, resource, operation, status, duration)
		}

		logger.Debug("tool call finished", append(logAttrs, logging.Status(status))...)
		sc.Metrics().RecordToolInvocationWithResource(ctx, toolName, status, resource, duration)
		auditLogger.LogToolInvocation(invocation)

		return result, nil
	}
}

func targetID(args map[string]any) string {
	for _, key := range idArguments {
		if id, ok := args[key].(string); ok && id != "" {
			return id
		}
	}
	return ""
}

func contentPreview(args map[string]any) string {
	for _, key := range []string{"content", "name", "filter"} {
		if s, ok := args[key].(string); ok && s != "" {
			return logging.Preview(s, contentPreviewRunes)
		}
	}
	return ""
}
