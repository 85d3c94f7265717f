// Package storefrontapi is the HTTP client for the remote storefront API that
// owns products, orders and sales reports. It implements the catalog, trade
// and report gateways.
package storefrontapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shoplite/storefront/internal/domain/integration"
	"github.com/shoplite/storefront/internal/infrastructure/logger"
	"github.com/shoplite/storefront/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// maxResponseSize limits the response body size to prevent memory exhaustion
	maxResponseSize = 10 * 1024 * 1024

	// RequestIDHeader carries the gateway's request id to the API
	RequestIDHeader = "X-Request-ID"

	defaultTimeout = 10 * time.Second
)

// ErrMissingBaseURL is returned by NewClient when Config.BaseURL is empty or not absolute
var ErrMissingBaseURL = errors.New("storefrontapi: base URL must be an absolute http(s) URL")

// Config holds the API location and per-request timeout
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the storefront API over HTTP/JSON
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for cfg.BaseURL
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return nil, ErrMissingBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("storefrontapi")
	return c, nil
}

// errorBody is the API's error envelope: {"error": "Product not found"}
type errorBody struct {
	Error string `json:"error"`
}

// doJSON sends body (if any) as JSON and decodes a successful response into out.
// Transport failures wrap ErrAPIUnavailable, 404 wraps ErrAPINotFound, any other
// status >= 400 wraps ErrAPIRequestFailed and an undecodable body wraps
// ErrAPIInvalidResponse.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	ctx, span := telemetry.StartSpan(ctx, "storefrontapi "+method+" "+path,
		telemetry.WithSpanKind(trace.SpanKindClient),
		telemetry.WithAttribute(telemetry.SpanAttrHTTPMethod, method),
		telemetry.WithAttribute(telemetry.SpanAttrHTTPURL, endpoint.String()),
	)
	defer span.End()

	err := c.send(ctx, span, method, endpoint.String(), body, out)
	if err != nil {
		telemetry.RecordError(span, err)
	}
	return err
}

func (c *Client) send(ctx context.Context, span trace.Span, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("storefrontapi: failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("storefrontapi: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := logger.GetRequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx, _ = logger.WithRequestID(ctx, c.logger, requestID)
	}
	req.Header.Set(RequestIDHeader, requestID)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	log := logger.WithLogger(ctx, c.logger)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("storefront API unreachable",
			zap.String("method", method),
			zap.String("url", endpoint),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", integration.ErrAPIUnavailable, err)
	}
	defer resp.Body.Close()

	telemetry.SetAttributes(span, telemetry.SpanAttrHTTPStatus, resp.StatusCode)
	log.Debug("storefront API call",
		zap.String("method", method),
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", integration.ErrAPIUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		msg := apiErrorMessage(data)
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", integration.ErrAPINotFound, msg)
		}
		return fmt.Errorf("%w: HTTP %d: %s", integration.ErrAPIRequestFailed, resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", integration.ErrAPIInvalidResponse, err)
	}
	return nil
}

// apiErrorMessage extracts {"error": "..."} or falls back to a trimmed body excerpt.
func apiErrorMessage(data []byte) string {
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err == nil && eb.Error != "" {
		return eb.Error
	}
	text := strings.TrimSpace(string(data))
	if len(text) > 200 {
		text = text[:200]
	}
	if text == "" {
		return "no response body"
	}
	return text
}
