// Package instrumentation provides OpenTelemetry metrics, tracing and audit
// logging for the todoist-mcp server.
//
// # Metrics
//
// Server/HTTP:
//   - http_requests_total, http_request_duration_seconds (method, path, status)
//   - mcp_active_sessions
//
// Todoist API:
//   - todoist_api_operations_total, todoist_api_operation_duration_seconds
//     (service, resource, operation, status)
//
// MCP tools:
//   - mcp_tool_invocations_total, mcp_tool_duration_seconds (tool, status)
//   - mcp_tool_failures_total (tool, kind)
//
// # Exporters
//
// Metrics: prometheus (default, served on the metrics port), otlp, stdout.
// Traces: none (default), otlp, stdout. The stdout exporters write to stderr.
//
// # Configuration
//
//	INSTRUMENTATION_ENABLED=true
//	METRICS_EXPORTER=prometheus
//	TRACING_EXPORTER=otlp
//	OTEL_EXPORTER_OTLP_ENDPOINT=localhost:4318
//	OTEL_TRACES_SAMPLER_ARG=0.1
//	AUDIT_LOGGING_ENABLED=true
//	AUDIT_LOGGING_INCLUDE_CONTENT=false
//
// # Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer provider.Shutdown(ctx)
//
//	provider.Metrics().RecordToolInvocation(ctx, "todoist_get_tasks", instrumentation.StatusSuccess, elapsed)
package instrumentation
