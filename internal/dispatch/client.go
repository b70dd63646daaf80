// Package dispatch sends generation requests to the remote service.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mithrel/docsmith/internal/metrics"
	"github.com/mithrel/docsmith/pkg/api"
)

// DefaultBaseURL is the public docsmith service.
const DefaultBaseURL = "https://docsmith.onrender.com"

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 8 << 20

// Client issues one POST per Dispatch. It never retries, caches or
// deduplicates.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	log        *zap.Logger
	metrics    *metrics.Metrics
}

type Option func(*Client)

// WithHTTPClient replaces the default client (no timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets a client-side timeout; zero keeps none. It applies to a
// copy, so a shared client passed to WithHTTPClient is left untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// BaseURL reports the service root requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

type generateRequest struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Dispatch posts url and kind to the kind's endpoint and returns the response
// body as text. Any transport failure or non-2xx status is a
// *api.GenerationError.
func (c *Client) Dispatch(ctx context.Context, url string, kind api.Kind) (string, error) {
	endpoint := kind.Endpoint()
	reqID := uuid.NewString()
	start := time.Now()

	body, status, err := c.post(ctx, endpoint, reqID, generateRequest{URL: url, Type: string(kind)})
	dur := time.Since(start)
	c.metrics.ObserveRequest(string(kind), err == nil, dur)

	fields := []zap.Field{
		zap.String("kind", string(kind)),
		zap.String("endpoint", endpoint),
		zap.String("request_id", reqID),
		zap.Int("status", status),
		zap.Duration("latency", dur),
	}
	if err != nil {
		c.log.Warn("generation failed", append(fields, zap.Error(err))...)
		return "", &api.GenerationError{Kind: kind, Status: status, Err: err}
	}
	c.log.Info("generation finished", append(fields, zap.Int("bytes", len(body)))...)
	return decodeBody(body), nil
}

func (c *Client) post(ctx context.Context, endpoint, reqID string, payload generateRequest) ([]byte, int, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadBytes))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/plain")
	req.Header.Set("X-Request-ID", reqID)

	c.log.Debug("dispatching", zap.String("url", url), zap.String("repo", payload.URL), zap.String("request_id", reqID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, fmt.Errorf("service answered %d: %s", resp.StatusCode, errorDetail(body))
	}
	return body, resp.StatusCode, nil
}

// decodeBody unwraps a JSON string literal (the service serialises its text
// that way); anything else is returned unchanged.
func decodeBody(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) >= 2 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return string(body)
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// errorDetail pulls the service's error detail out of a failure body.
func errorDetail(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Detail != "" {
		return er.Detail
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "…"
	}
	if s == "" {
		return "empty body"
	}
	return s
}

type pingResponse struct {
	Message string `json:"message"`
}

// Ping checks the service's keep-alive route and returns its message.
func (c *Client) Ping(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ping", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ping failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ping failed with status %d", resp.StatusCode)
	}
	var pr pingResponse
	if err := json.Unmarshal(body, &pr); err == nil && pr.Message != "" {
		return pr.Message, nil
	}
	return strings.TrimSpace(string(body)), nil
}
