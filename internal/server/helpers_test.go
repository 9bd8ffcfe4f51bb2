package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teemow/todoist-mcp/internal/todoist"
)

func newTestServerContext(t *testing.T) *ServerContext {
	t.Helper()

	client, err := todoist.NewClient(todoist.Config{Token: "test-token", BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	sc, err := NewServerContext(context.Background(), client)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}
