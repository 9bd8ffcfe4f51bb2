package todoist_tools

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/todoist-mcp/internal/server"
	"github.com/teemow/todoist-mcp/internal/todoist"
	"github.com/teemow/todoist-mcp/internal/tools/common"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  map[string]string
	Body   map[string]any
}

// testEnv runs the registered tools against a fake Todoist server.
type testEnv struct {
	t        *testing.T
	server   *mcpserver.MCPServer
	srv      *httptest.Server
	mu       sync.Mutex
	requests []recordedRequest
}

func newTestEnv(t *testing.T, respond http.HandlerFunc) *testEnv {
	t.Helper()
	env := &testEnv{t: t}

	env.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := recordedRequest{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Query:  map[string]string{},
		}
		for k := range r.URL.Query() {
			req.Query[k] = r.URL.Query().Get(k)
		}
		data, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		if len(data) > 0 {
			assert.NoError(t, json.Unmarshal(data, &req.Body))
		}
		// The responder sees the same body.
		r.Body = io.NopCloser(bytes.NewReader(data))
		env.mu.Lock()
		env.requests = append(env.requests, req)
		env.mu.Unlock()

		if respond == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		respond(w, r)
	}))
	t.Cleanup(env.srv.Close)

	client, err := todoist.NewClient(todoist.Config{Token: "test-token", BaseURL: env.srv.URL})
	require.NoError(t, err)
	sc, err := server.NewServerContext(context.Background(), client)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })

	env.server = mcpserver.NewMCPServer("todoist-mcp", "test", mcpserver.WithToolCapabilities(true))
	require.NoError(t, RegisterTodoistTools(env.server, sc, false))
	return env
}

func (e *testEnv) recorded() []recordedRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]recordedRequest(nil), e.requests...)
}

func (e *testEnv) call(name string, args map[string]any) *mcp.CallToolResult {
	e.t.Helper()

	tool, ok := e.server.ListTools()[name]
	require.True(e.t, ok, "tool %s is not registered", name)

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	result, err := tool.Handler(context.Background(), req)
	require.NoError(e.t, err)
	require.NotNil(e.t, result)
	return result
}

func textAt(t *testing.T, result *mcp.CallToolResult, i int) string {
	t.Helper()
	require.Greater(t, len(result.Content), i)
	text, ok := result.Content[i].(mcp.TextContent)
	require.True(t, ok, "content %d is %T", i, result.Content[i])
	return text.Text
}

func failureOf(t *testing.T, result *mcp.CallToolResult) common.Failure {
	t.Helper()
	require.True(t, result.IsError, "expected a failure, got %s", textAt(t, result, 0))
	var f common.Failure
	require.NoError(t, json.Unmarshal([]byte(textAt(t, result, 0)), &f))
	return f
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
