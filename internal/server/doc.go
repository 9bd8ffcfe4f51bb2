// Package server holds the runtime shared by every MCP tool of todoist-mcp
// and the HTTP surfaces around it.
//
// # Key Components
//
// ServerContext carries the Todoist client, logger, metrics recorder and
// audit logger that tool handlers use. It has no per-request state; the
// same context serves every session.
//
// HTTPServer mounts the streamable HTTP transport on /mcp, guarded by:
//   - an optional static bearer token (MCP_HTTP_AUTH_TOKEN)
//   - per client IP rate limiting
//   - security headers and HTTP request metrics
//
// HealthChecker serves /healthz, /readyz and /healthz/detailed next to the
// MCP endpoint. MetricsServer exposes Prometheus metrics on a separate port.
package server
