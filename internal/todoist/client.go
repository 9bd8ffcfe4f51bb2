package todoist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/oauth2"

	"github.com/teemow/todoist-mcp/internal/instrumentation"
	"github.com/teemow/todoist-mcp/internal/logging"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 10 << 20

// Client talks to the Todoist REST API. It is safe for concurrent use and
// holds no state besides its immutable configuration.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     logging.Logger
}

var _ API = (*Client)(nil)

type clientOptions struct {
	transport http.RoundTripper
	logger    logging.Logger
}

// Option customizes NewClient.
type Option func(*clientOptions)

// WithTransport sets the base transport below the auth and tracing layers.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) {
		o.transport = rt
	}
}

// WithLogger sets the logger used for per-request debug logs.
func WithLogger(logger logging.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// NewClient creates a client from cfg. The token is attached to every
// request as a bearer credential.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := clientOptions{
		transport: http.DefaultTransport,
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.Token,
		TokenType:   "Bearer",
	})

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &oauth2.Transport{
				Source: tokenSource,
				Base:   otelhttp.NewTransport(o.transport),
			},
		},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		logger:    o.logger,
	}, nil
}

// do performs one request and decodes a 2xx body into out. out may be nil
// for operations Todoist acknowledges without content.
func (c *Client) do(ctx context.Context, resource, operation, method, path string, query url.Values, body, out any) error {
	_, err := c.send(ctx, resource, operation, method, path, query, body, out)
	return err
}

// send is do reporting whether a response body was decoded into out.
func (c *Client) send(ctx context.Context, resource, operation, method, path string, query url.Values, body, out any) (bool, error) {
	ctx, span := instrumentation.StartAPISpan(ctx, resource, operation)
	defer span.End()

	op := resource + "." + operation
	status, decoded, err := c.roundTrip(ctx, op, method, path, query, body, out)
	if status != 0 {
		span.SetAttributes(attribute.Int(instrumentation.SpanAttrStatusCode, status))
	}
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return false, err
	}
	instrumentation.SetSpanSuccess(span)
	return decoded, nil
}

// sendEntity creates or updates an entity. It returns a nil entity when
// Todoist acknowledged the write without a body.
func sendEntity[T any](ctx context.Context, c *Client, resource, operation, path string, body any) (*T, error) {
	var entity T
	decoded, err := c.send(ctx, resource, operation, http.MethodPost, path, nil, body, &entity)
	if err != nil || !decoded {
		return nil, err
	}
	return &entity, nil
}

func (c *Client) roundTrip(ctx context.Context, op, method, path string, query url.Values, body, out any) (int, bool, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, false, fmt.Errorf("failed to encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, false, fmt.Errorf("failed to build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost {
		req.Header.Set("X-Request-Id", uuid.NewString())
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("todoist request failed", "op", op, "method", method, "path", path, logging.Err(err))
		return 0, false, &TransientError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, false, &TransientError{Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	c.logger.Debug("todoist request",
		"op", op,
		"method", method,
		"path", path,
		logging.KeyStatusCode, resp.StatusCode,
		logging.KeyDuration, time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, false, &APIError{
			Op:         op,
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return resp.StatusCode, false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, false, fmt.Errorf("failed to decode %s response: %w", op, err)
	}
	return resp.StatusCode, true, nil
}

// entityPath joins a collection and an escaped identifier.
func entityPath(collection, id string, suffix ...string) string {
	parts := append([]string{"", collection, url.PathEscape(id)}, suffix...)
	return strings.Join(parts, "/")
}

func requireID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return Required(field)
	}
	return nil
}

func (p PageOptions) values() url.Values {
	q := url.Values{}
	if p.Cursor != "" {
		q.Set("cursor", p.Cursor)
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(min(p.Limit, MaxPageSize)))
	}
	return q
}
