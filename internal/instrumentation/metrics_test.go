package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T, detailed bool) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp.Meter("test"), detailed)
	require.NoError(t, err)
	return m, reader
}

func collectSum(t *testing.T, reader *sdkmetric.ManualReader, name string) []metricdata.DataPoint[int64] {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			return sum.DataPoints
		}
	}
	t.Fatalf("metric %s not found", name)
	return nil
}

func attrValue(set attribute.Set, key string) string {
	v, ok := set.Value(attribute.Key(key))
	if !ok {
		return ""
	}
	return v.AsString()
}

func TestMetrics_RecordHTTPRequest(t *testing.T) {
	m, reader := newTestMetrics(t, false)
	ctx := context.Background()

	m.RecordHTTPRequest(ctx, "POST", "/mcp", 200, 100*time.Millisecond)
	m.RecordHTTPRequest(ctx, "POST", "/mcp", 200, 50*time.Millisecond)

	points := collectSum(t, reader, "http_requests_total")
	require.Len(t, points, 1)
	assert.Equal(t, int64(2), points[0].Value)
	assert.Equal(t, "200", attrValue(points[0].Attributes, attrStatus))
}

func TestMetrics_RecordAPIOperation(t *testing.T) {
	m, reader := newTestMetrics(t, false)
	ctx := context.Background()

	m.RecordAPIOperation(ctx, ResourceTasks, OperationComplete, StatusSuccess, 200*time.Millisecond)
	m.RecordAPIOperation(ctx, ResourceTasks, OperationComplete, StatusError, 200*time.Millisecond)

	points := collectSum(t, reader, "todoist_api_operations_total")
	require.Len(t, points, 2)
	for _, p := range points {
		assert.Equal(t, ServiceTodoist, attrValue(p.Attributes, attrService))
		assert.Equal(t, ResourceTasks, attrValue(p.Attributes, attrResource))
		assert.Equal(t, int64(1), p.Value)
	}
}

func TestMetrics_RecordToolInvocation_DetailedLabels(t *testing.T) {
	tests := []struct {
		name         string
		detailed     bool
		wantResource string
	}{
		{name: "default labels", detailed: false, wantResource: ""},
		{name: "detailed labels", detailed: true, wantResource: ResourceComments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, reader := newTestMetrics(t, tt.detailed)
			m.RecordToolInvocationWithResource(context.Background(), "todoist_add_comment", StatusSuccess, ResourceComments, time.Second)

			points := collectSum(t, reader, "mcp_tool_invocations_total")
			require.Len(t, points, 1)
			assert.Equal(t, "todoist_add_comment", attrValue(points[0].Attributes, attrTool))
			assert.Equal(t, tt.wantResource, attrValue(points[0].Attributes, attrResource))
		})
	}
}

func TestMetrics_RecordToolFailure(t *testing.T) {
	m, reader := newTestMetrics(t, false)
	m.RecordToolFailure(context.Background(), "todoist_add_task", "validation_error")

	points := collectSum(t, reader, "mcp_tool_failures_total")
	require.Len(t, points, 1)
	assert.Equal(t, "validation_error", attrValue(points[0].Attributes, attrKind))
}

func TestMetrics_ActiveSessions(t *testing.T) {
	m, reader := newTestMetrics(t, false)
	ctx := context.Background()

	m.IncrementActiveSessions(ctx)
	m.IncrementActiveSessions(ctx)
	m.DecrementActiveSessions(ctx)

	points := collectSum(t, reader, "mcp_active_sessions")
	require.Len(t, points, 1)
	assert.Equal(t, int64(1), points[0].Value)
}

func TestMetrics_NoOp(t *testing.T) {
	ctx := context.Background()

	for _, m := range []*Metrics{nil, {}} {
		m.RecordHTTPRequest(ctx, "GET", "/mcp", 200, time.Millisecond)
		m.RecordAPIOperation(ctx, ResourceProjects, OperationList, StatusSuccess, time.Millisecond)
		m.RecordToolInvocation(ctx, "tool", StatusSuccess, time.Millisecond)
		m.RecordToolFailure(ctx, "tool", "internal_error")
		m.IncrementActiveSessions(ctx)
		m.DecrementActiveSessions(ctx)
	}
}
