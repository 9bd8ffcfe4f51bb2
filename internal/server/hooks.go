package server

import (
	"context"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// SessionHooks tracks MCP client sessions in the active session gauge and the log.
func SessionHooks(sc *ServerContext) *mcpserver.Hooks {
	hooks := &mcpserver.Hooks{}

	hooks.AddOnRegisterSession(func(ctx context.Context, session mcpserver.ClientSession) {
		sc.Metrics().IncrementActiveSessions(ctx)
		sc.Logger().Debug("session registered", "session_id", session.SessionID())
	})
	hooks.AddOnUnregisterSession(func(ctx context.Context, session mcpserver.ClientSession) {
		sc.Metrics().DecrementActiveSessions(ctx)
		sc.Logger().Debug("session unregistered", "session_id", session.SessionID())
	})

	return hooks
}
