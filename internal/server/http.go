package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

const (
	// DefaultHTTPAddr is the default listen address of the streamable HTTP transport.
	DefaultHTTPAddr = ":8080"

	// MCPEndpointPath is where the streamable HTTP transport is mounted.
	MCPEndpointPath = "/mcp"

	DefaultRateLimit = 10.0
	DefaultRateBurst = 20
)

// HTTPServerConfig configures the streamable HTTP transport.
type HTTPServerConfig struct {
	Addr string

	// AuthToken, when set, is required as a bearer token on /mcp.
	AuthToken string

	// RateLimit is requests per second per client IP. Zero disables limiting.
	RateLimit float64
	RateBurst int

	// TrustProxy honors X-Forwarded-For when identifying clients.
	TrustProxy bool

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string
	TLSKeyFile  string

	// DisableStreaming makes the transport answer with plain JSON instead of SSE.
	DisableStreaming bool
}

// HTTPServer serves the MCP streamable HTTP transport next to the health probes.
type HTTPServer struct {
	config      HTTPServerConfig
	handler     http.Handler
	httpServer  *http.Server
	health      *HealthChecker
	rateLimiter *RateLimiter
	listener    net.Listener
}

// NewHTTPServer wires mcpServer behind the middleware chain. health may be nil.
func NewHTTPServer(mcpServer *mcpserver.MCPServer, sc *ServerContext, health *HealthChecker, config HTTPServerConfig) (*HTTPServer, error) {
	if mcpServer == nil {
		return nil, fmt.Errorf("mcp server is required")
	}
	if (config.TLSCertFile == "") != (config.TLSKeyFile == "") {
		return nil, fmt.Errorf("both TLS certificate and key files must be provided")
	}
	if config.Addr == "" {
		config.Addr = DefaultHTTPAddr
	}

	opts := []mcpserver.StreamableHTTPOption{mcpserver.WithEndpointPath(MCPEndpointPath)}
	if config.DisableStreaming {
		opts = append(opts, mcpserver.WithDisableStreaming(true))
	}
	var mcpHandler http.Handler = mcpserver.NewStreamableHTTPServer(mcpServer, opts...)

	s := &HTTPServer{config: config, health: health}

	mcpHandler = BearerAuthMiddleware(config.AuthToken, mcpHandler)
	if config.RateLimit > 0 {
		burst := config.RateBurst
		if burst <= 0 {
			burst = DefaultRateBurst
		}
		s.rateLimiter = NewRateLimiter(config.RateLimit, burst, config.TrustProxy)
		mcpHandler = s.rateLimiter.Middleware(mcpHandler)
	}
	mcpHandler = SecurityHeadersMiddleware(mcpHandler)
	if sc != nil {
		mcpHandler = MetricsMiddleware(sc.Metrics(), MCPEndpointPath, mcpHandler)
	}

	mux := http.NewServeMux()
	mux.Handle(MCPEndpointPath, mcpHandler)
	if health != nil {
		health.RegisterHealthEndpoints(mux)
	}
	s.handler = mux

	s.httpServer = &http.Server{
		Addr:              config.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

// Handler returns the root handler, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.handler
}

// Start listens and serves until Shutdown. It returns nil after a graceful shutdown.
func (s *HTTPServer) Start() error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}
	s.listener = ln

	tls := s.config.TLSCertFile != ""
	slog.Info("starting streamable HTTP server",
		"addr", ln.Addr().String(),
		"endpoint", MCPEndpointPath,
		"tls", tls,
		"auth", s.config.AuthToken != "",
	)

	if tls {
		err = s.httpServer.ServeTLS(ln, s.config.TLSCertFile, s.config.TLSKeyFile)
	} else {
		err = s.httpServer.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown marks the server not ready, then drains connections.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.health != nil {
		s.health.SetReady(false)
	}
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
