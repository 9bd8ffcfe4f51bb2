package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/todoist-mcp/internal/instrumentation"
	"github.com/teemow/todoist-mcp/internal/logging"
	"github.com/teemow/todoist-mcp/internal/server"
	"github.com/teemow/todoist-mcp/internal/todoist"
	"github.com/teemow/todoist-mcp/internal/tools/todoist_tools"
)

const (
	transportStdio          = "stdio"
	transportStreamableHTTP = "streamable-http"

	// EnvHTTPAuthToken holds the static bearer token required on /mcp.
	EnvHTTPAuthToken = "MCP_HTTP_AUTH_TOKEN"
)

// serveOptions holds the flags of the serve command.
type serveOptions struct {
	Transport        string
	HTTPAddr         string
	ReadOnly         bool
	Debug            bool
	LogFormat        string
	DisableStreaming bool
	TrustProxy       bool

	// TLS/HTTPS support
	TLSCertFile string
	TLSKeyFile  string

	// Metrics server configuration
	MetricsEnabled bool
	MetricsAddr    string

	RateLimit float64
	RateBurst int

	AuthToken string
}

func newServeCmd() *cobra.Command {
	opts := serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server with the Todoist tools.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport on /mcp

Configuration:
  TODOIST_API_TOKEN      Todoist API token (required)
  TODOIST_API_BASE_URL   Override the API base URL
  TODOIST_API_TIMEOUT    Per request timeout, e.g. 30s
  MCP_HTTP_AUTH_TOKEN    Bearer token required by the HTTP transport

Use --read-only to expose only the tools that never modify data.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loadServeEnvVars(cmd, &opts)
			if err := opts.Validate(); err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return runServe(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Transport, "transport", transportStdio, "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&opts.HTTPAddr, "http-addr", server.DefaultHTTPAddr, "HTTP server address (for streamable-http transport)")
	cmd.Flags().BoolVar(&opts.ReadOnly, "read-only", false, "Only register tools that never modify Todoist data")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&opts.LogFormat, "log-format", logging.FormatText, "Log format: text or json")
	cmd.Flags().BoolVar(&opts.DisableStreaming, "disable-streaming", false, "Disable SSE streaming for HTTP transport (for compatibility with certain clients)")
	cmd.Flags().BoolVar(&opts.TrustProxy, "trust-proxy", false, "Use X-Forwarded-For to identify clients for rate limiting. Only enable behind a trusted proxy.")

	// TLS flags for HTTPS support
	cmd.Flags().StringVar(&opts.TLSCertFile, "tls-cert-file", "", "Path to TLS certificate file (PEM format). If provided with --tls-key-file, enables HTTPS. Can also use TLS_CERT_FILE env var.")
	cmd.Flags().StringVar(&opts.TLSKeyFile, "tls-key-file", "", "Path to TLS private key file (PEM format). If provided with --tls-cert-file, enables HTTPS. Can also use TLS_KEY_FILE env var.")

	// Metrics server flags
	cmd.Flags().BoolVar(&opts.MetricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address. Can also use METRICS_ADDR env var.")

	cmd.Flags().Float64Var(&opts.RateLimit, "rate-limit", server.DefaultRateLimit, "Requests per second per client IP on /mcp (0 disables)")
	cmd.Flags().IntVar(&opts.RateBurst, "rate-burst", server.DefaultRateBurst, "Burst size of the per client rate limit")

	return cmd
}

// loadServeEnvVars fills options from the environment. Environment variables
// only apply when the matching flag was not explicitly set.
func loadServeEnvVars(cmd *cobra.Command, opts *serveOptions) {
	if !cmd.Flags().Changed("tls-cert-file") {
		if v := os.Getenv("TLS_CERT_FILE"); v != "" {
			opts.TLSCertFile = v
		}
	}
	if !cmd.Flags().Changed("tls-key-file") {
		if v := os.Getenv("TLS_KEY_FILE"); v != "" {
			opts.TLSKeyFile = v
		}
	}
	if !cmd.Flags().Changed("metrics-enabled") {
		if v, err := strconv.ParseBool(os.Getenv("METRICS_ENABLED")); err == nil {
			opts.MetricsEnabled = v
		}
	}
	if !cmd.Flags().Changed("metrics-addr") {
		if v := os.Getenv("METRICS_ADDR"); v != "" {
			opts.MetricsAddr = v
		}
	}
	opts.AuthToken = os.Getenv(EnvHTTPAuthToken)
}

// Validate checks flag combinations before anything is started.
func (o serveOptions) Validate() error {
	switch o.Transport {
	case transportStdio, transportStreamableHTTP:
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: %s, %s)", o.Transport, transportStdio, transportStreamableHTTP)
	}
	switch o.LogFormat {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("unsupported log format: %s (supported: %s, %s)", o.LogFormat, logging.FormatText, logging.FormatJSON)
	}
	if (o.TLSCertFile == "") != (o.TLSKeyFile == "") {
		return fmt.Errorf("both --tls-cert-file and --tls-key-file must be provided to enable HTTPS")
	}
	if o.RateLimit < 0 {
		return fmt.Errorf("--rate-limit must not be negative")
	}
	if o.RateLimit > 0 && o.RateBurst < 1 {
		return fmt.Errorf("--rate-burst must be at least 1")
	}
	return nil
}

func runServe(ctx context.Context, opts serveOptions) error {
	// Logs go to stderr; stdout belongs to the stdio transport.
	logger, err := logging.NewLogger(os.Stderr, opts.Debug, opts.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	todoistConfig, err := todoist.ConfigFromEnv()
	if err != nil {
		return err
	}
	todoistConfig.UserAgent = "todoist-mcp/" + version

	client, err := todoist.NewClient(todoistConfig, todoist.WithLogger(logging.NewSlogAdapter(logger)))
	if err != nil {
		return fmt.Errorf("failed to create todoist client: %w", err)
	}

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	// Start metrics server if enabled and not in stdio mode
	if opts.Transport != transportStdio && opts.MetricsEnabled && provider.PrometheusEnabled() {
		metricsServer, err := startMetricsServer(opts.MetricsAddr, provider, logger)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Warn("metrics server shutdown failed", logging.Err(err))
			}
		}()
	}

	serverContext, err := server.NewServerContext(ctx, client)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() { _ = serverContext.Shutdown() }()

	serverContext.SetLogger(logger)
	if provider.Enabled() {
		serverContext.SetMetrics(provider.Metrics())
	}
	if instrConfig.AuditLogging.Enabled {
		serverContext.SetAuditLogger(instrumentation.NewAuditLoggerWithConfig(logger, instrConfig.AuditLogging))
	}

	mcpSrv := newMCPServer(serverContext)
	if err := todoist_tools.RegisterTodoistTools(mcpSrv, serverContext, opts.ReadOnly); err != nil {
		return fmt.Errorf("failed to register Todoist tools: %w", err)
	}

	logger.Info("starting todoist-mcp",
		slog.String(logging.KeyTransport, opts.Transport),
		slog.Bool("read_only", opts.ReadOnly),
		slog.String("version", version),
		slog.String("token", logging.SanitizeToken(todoistConfig.Token)),
	)

	switch opts.Transport {
	case transportStdio:
		return runStdioServer(mcpSrv)
	case transportStreamableHTTP:
		return runStreamableHTTPServer(ctx, mcpSrv, serverContext, opts, logger)
	default:
		return fmt.Errorf("unsupported transport type: %s", opts.Transport)
	}
}

// newMCPServer creates the MCP server shared by every transport.
func newMCPServer(sc *server.ServerContext) *mcpserver.MCPServer {
	return mcpserver.NewMCPServer("todoist-mcp", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithRecovery(),
		mcpserver.WithHooks(server.SessionHooks(sc)),
	)
}

func startMetricsServer(addr string, provider *instrumentation.Provider, logger *slog.Logger) (*server.MetricsServer, error) {
	metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
		Addr:                    addr,
		InstrumentationProvider: provider,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics server: %w", err)
	}

	// Use ready channel to confirm metrics server started successfully
	metricsReady := make(chan struct{})
	metricsErr := make(chan error, 1)
	go func() {
		if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && !errors.Is(err, http.ErrServerClosed) {
			metricsErr <- err
		}
	}()

	select {
	case <-metricsReady:
		logger.Info("metrics server started", slog.String("addr", metricsServer.Addr()))
		return metricsServer, nil
	case err := <-metricsErr:
		return nil, fmt.Errorf("metrics server failed to start: %w", err)
	case <-time.After(5 * time.Second):
		return nil, fmt.Errorf("metrics server startup timed out")
	}
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	if err := mcpserver.ServeStdio(mcpSrv); err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, sc *server.ServerContext, opts serveOptions, logger *slog.Logger) error {
	health := server.NewHealthChecker(sc, version)
	httpServer, err := server.NewHTTPServer(mcpSrv, sc, health, server.HTTPServerConfig{
		Addr:             opts.HTTPAddr,
		AuthToken:        opts.AuthToken,
		RateLimit:        opts.RateLimit,
		RateBurst:        opts.RateBurst,
		TrustProxy:       opts.TrustProxy,
		TLSCertFile:      opts.TLSCertFile,
		TLSKeyFile:       opts.TLSKeyFile,
		DisableStreaming: opts.DisableStreaming,
	})
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}

	if opts.AuthToken == "" {
		logger.Warn("HTTP transport has no bearer token, set " + EnvHTTPAuthToken + " to require one")
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.Start(); err != nil {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
	}

	logger.Info("HTTP server gracefully stopped")
	return nil
}
