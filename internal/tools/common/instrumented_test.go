package common

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/teemow/todoist-mcp/internal/instrumentation"
	"github.com/teemow/todoist-mcp/internal/server"
	"github.com/teemow/todoist-mcp/internal/todoist"
)

type fixture struct {
	sc     *server.ServerContext
	reader *sdkmetric.ManualReader
	audit  *bytes.Buffer
}

func newFixture(t *testing.T, includeContent bool) *fixture {
	t.Helper()

	client, err := todoist.NewClient(todoist.Config{Token: "test-token", BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)
	sc, err := server.NewServerContext(context.Background(), client)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	metrics, err := instrumentation.NewMetrics(mp.Meter("test"), false)
	require.NoError(t, err)
	sc.SetMetrics(metrics)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	sc.SetAuditLogger(instrumentation.NewAuditLoggerWithConfig(logger, instrumentation.AuditLoggingConfig{
		Enabled:        true,
		IncludeContent: includeContent,
	}))

	return &fixture{sc: sc, reader: reader, audit: &buf}
}

func (f *fixture) sum(t *testing.T, name string) []metricdata.DataPoint[int64] {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, f.reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m.Data.(metricdata.Sum[int64]).DataPoints
			}
		}
	}
	return nil
}

func (f *fixture) auditRecord(t *testing.T) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(f.audit.String()), "\n")
	require.Len(t, lines, 1)
	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	return record
}

func attr(set attribute.Set, key string) string {
	v, _ := set.Value(attribute.Key(key))
	return v.AsString()
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func TestInstrumentedToolHandler_Success(t *testing.T) {
	f := newFixture(t, false)

	called := false
	wrapped := InstrumentedToolHandler("todoist_get_task", instrumentation.ResourceTasks, instrumentation.OperationGet, true, f.sc,
		func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			called = true
			return mcp.NewToolResultText(`{"id":"42"}`), nil
		})

	result, err := wrapped(context.Background(), callRequest(map[string]any{"task_id": "42"}))
	require.NoError(t, err)
	assert.True(t, called)
	assert.False(t, result.IsError)
	assert.Equal(t, `{"id":"42"}`, resultText(t, result))

	invocations := f.sum(t, "mcp_tool_invocations_total")
	require.Len(t, invocations, 1)
	assert.Equal(t, instrumentation.StatusSuccess, attr(invocations[0].Attributes, "status"))

	apiOps := f.sum(t, "todoist_api_operations_total")
	require.Len(t, apiOps, 1)
	assert.Equal(t, instrumentation.ResourceTasks, attr(apiOps[0].Attributes, "resource"))

	record := f.auditRecord(t)
	assert.Equal(t, "todoist_get_task", record["tool"])
	assert.Equal(t, "42", record["resource_id"])
	assert.Equal(t, true, record["success"])
}

func TestInstrumentedToolHandler_ValidationFailure(t *testing.T) {
	f := newFixture(t, false)

	wrapped := InstrumentedToolHandler("todoist_get_task", instrumentation.ResourceTasks, instrumentation.OperationGet, true, f.sc,
		func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return nil, todoist.Required("task_id")
		})

	result, err := wrapped(context.Background(), callRequest(nil))
	require.NoError(t, err, "failures travel in the result")
	require.True(t, result.IsError)

	var failure Failure
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &failure))
	assert.Equal(t, KindValidation, failure.Kind)
	assert.Equal(t, "task_id", failure.Field)

	failures := f.sum(t, "mcp_tool_failures_total")
	require.Len(t, failures, 1)
	assert.Equal(t, KindValidation, attr(failures[0].Attributes, "kind"))

	assert.Empty(t, f.sum(t, "todoist_api_operations_total"), "no API call was made")

	record := f.auditRecord(t)
	assert.Equal(t, KindValidation, record["error_kind"])
}

func TestInstrumentedToolHandler_RemoteRejection(t *testing.T) {
	f := newFixture(t, false)

	wrapped := InstrumentedToolHandler("todoist_delete_project", instrumentation.ResourceProjects, instrumentation.OperationDelete, false, f.sc,
		func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return nil, &todoist.APIError{StatusCode: 404, Body: "Project not found"}
		})

	result, err := wrapped(context.Background(), callRequest(map[string]any{"project_id": "9"}))
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Project not found")

	apiOps := f.sum(t, "todoist_api_operations_total")
	require.Len(t, apiOps, 1)
	assert.Equal(t, instrumentation.StatusError, attr(apiOps[0].Attributes, "status"))
}

func TestInstrumentedToolHandler_ContentPreview(t *testing.T) {
	tests := []struct {
		name           string
		includeContent bool
		wantContent    bool
	}{
		{name: "content omitted by default", includeContent: false, wantContent: false},
		{name: "content included when configured", includeContent: true, wantContent: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.includeContent)
			wrapped := InstrumentedToolHandler("todoist_add_task", instrumentation.ResourceTasks, instrumentation.OperationCreate, false, f.sc,
				func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
					return mcp.NewToolResultText("{}"), nil
				})

			_, err := wrapped(context.Background(), callRequest(map[string]any{"content": "Buy milk"}))
			require.NoError(t, err)

			record := f.auditRecord(t)
			if tt.wantContent {
				assert.Equal(t, "Buy milk", record["content"])
			} else {
				assert.NotContains(t, record, "content")
			}
		})
	}
}

func TestInstrumentedToolHandler_NoInstrumentation(t *testing.T) {
	client, err := todoist.NewClient(todoist.Config{Token: "test-token"})
	require.NoError(t, err)
	sc, err := server.NewServerContext(context.Background(), client)
	require.NoError(t, err)
	defer func() { _ = sc.Shutdown() }()

	wrapped := InstrumentedToolHandler("todoist_get_projects", instrumentation.ResourceProjects, instrumentation.OperationList, true, sc,
		func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("[]"), nil
		})

	result, err := wrapped(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", resultText(t, result))
}

func TestInstrumentedToolHandler_DebugLogAndSpan(t *testing.T) {
	tests := []struct {
		name       string
		tool       string
		resource   string
		operation  string
		readOnly   bool
		err        error
		wantStatus string
		wantKind   string
	}{
		{
			name: "read succeeds", tool: "todoist_get_section",
			resource: instrumentation.ResourceSections, operation: instrumentation.OperationGet, readOnly: true,
			wantStatus: instrumentation.StatusSuccess,
		},
		{
			name: "write is rejected", tool: "todoist_update_section",
			resource: instrumentation.ResourceSections, operation: instrumentation.OperationUpdate,
			err:        &todoist.APIError{StatusCode: 401, Body: "Unauthorized"},
			wantStatus: instrumentation.StatusError, wantKind: KindRemoteRejection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := tracetest.NewSpanRecorder()
			tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
			previous := otel.GetTracerProvider()
			otel.SetTracerProvider(tp)
			t.Cleanup(func() {
				otel.SetTracerProvider(previous)
				_ = tp.Shutdown(context.Background())
			})

			f := newFixture(t, false)
			var logs bytes.Buffer
			f.sc.SetLogger(slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))

			wrapped := InstrumentedToolHandler(tt.tool, tt.resource, tt.operation, tt.readOnly, f.sc,
				func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return mcp.NewToolResultText("{}"), nil
				})

			_, err := wrapped(context.Background(), callRequest(map[string]any{"section_id": "s1"}))
			require.NoError(t, err)

			var record map[string]any
			require.NoError(t, json.Unmarshal(bytes.TrimSpace(logs.Bytes()), &record))
			assert.Equal(t, "tool call finished", record["msg"])
			assert.Equal(t, tt.tool, record["tool"])
			assert.Equal(t, tt.operation, record["operation"])
			assert.Equal(t, tt.resource, record["resource"])
			assert.Equal(t, "s1", record["resource_id"])
			assert.Equal(t, tt.wantStatus, record["status"])
			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, record["error_kind"])
			} else {
				assert.NotContains(t, record, "error_kind")
			}

			spans := recorder.Ended()
			require.Len(t, spans, 1)
			readOnly := false
			for _, kv := range spans[0].Attributes() {
				if string(kv.Key) == instrumentation.SpanAttrReadOnly {
					readOnly = kv.Value.AsBool()
				}
			}
			assert.Equal(t, tt.readOnly, readOnly)
		})
	}
}

func TestTargetID(t *testing.T) {
	assert.Equal(t, "t1", targetID(map[string]any{"project_id": "p1", "task_id": "t1"}))
	assert.Equal(t, "p1", targetID(map[string]any{"project_id": "p1"}))
	assert.Equal(t, "", targetID(map[string]any{"task_id": 12}))
	assert.Equal(t, "", targetID(nil))
}
