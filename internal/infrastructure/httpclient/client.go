package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/metrics"
)

// DefaultTimeout bounds every single HTTP call.
const DefaultTimeout = 30 * time.Second

// RequestIDHeader carries the identifier attached to every outbound call.
const RequestIDHeader = "X-Request-Id"

// Config describes one backend endpoint.
type Config struct {
	Backend  string // configured name, used as metrics label
	Provider string // display name, used as error message prefix
	BaseURL  string
	Headers  map[string]string
	Timeout  time.Duration
	Debug    bool
}

// Client issues JSON calls against a single backend. It holds no per-call state and
// is safe for concurrent use.
type Client struct {
	config     Config
	httpClient *http.Client
	collector  *metrics.Collector
}

// Option customizes a Client.
type Option func(*Client)

// WithCollector records every call on the given metrics collector.
func WithCollector(collector *metrics.Collector) Option {
	return func(c *Client) {
		c.collector = collector
	}
}

// WithHTTPClient replaces the pooled default transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithDebug logs requests, responses and normalized errors.
func WithDebug(enabled bool) Option {
	return func(c *Client) {
		c.config.Debug = enabled
	}
}

// New creates a Client for the given backend.
func New(config Config, opts ...Option) *Client {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	config.BaseURL = strings.TrimSuffix(config.BaseURL, "/")

	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = config.Timeout

	client := &Client{config: config, httpClient: httpClient}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Provider returns the display name attached to errors.
func (c *Client) Provider() string {
	return c.config.Provider
}

// Get fetches path. query is nil, url.Values or a struct with `url` tags.
func (c *Client) Get(ctx context.Context, path string, query, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post sends body as JSON.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Put sends body as JSON.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Patch sends body as JSON.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete removes path. Some endpoints (file deletion) require a JSON body.
func (c *Client) Delete(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, body, out)
}

// Do performs one call and decodes a 2xx body into out, which may be nil or a
// *json.RawMessage. Every failure is returned as *entities.APIError.
func (c *Client) Do(ctx context.Context, method, path string, query, body, out any) error {
	if err := c.do(ctx, method, path, query, body, out); err != nil {
		return Normalize(err, c.config.Provider, c.config.Debug)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, params, body, out any) error {
	endpoint, err := c.buildURL(path, params)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		data, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return fmt.Errorf("failed to encode request body: %w", marshalErr)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	for key, value := range c.config.Headers {
		req.Header.Set(key, value)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	entry := logger.WithFields(logger.Fields{
		"provider":   c.config.Provider,
		"method":     method,
		"url":        endpoint,
		"request_id": requestID,
	})
	if c.config.Debug {
		entry.Debug("backend request")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.collector.ObserveRequest(c.config.Backend, method, 0, time.Since(start))
		return &RequestError{Method: method, URL: endpoint, Cause: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	c.collector.ObserveRequest(c.config.Backend, method, resp.StatusCode, elapsed)
	if c.config.Debug {
		entry.WithFields(logger.Fields{
			"status":   resp.StatusCode,
			"duration": elapsed.String(),
		}).Debug("backend response")
	}
	if err != nil {
		return &RequestError{Method: method, URL: endpoint, Cause: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &ResponseError{
			Method:     method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       payload,
			Header:     resp.Header,
		}
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], payload...)
		return nil
	}
	if decodeErr := json.Unmarshal(payload, out); decodeErr != nil {
		return entities.NewDecodeError(c.config.Provider, decodeErr)
	}
	return nil
}

func (c *Client) buildURL(path string, params any) (string, error) {
	if c.config.BaseURL == "" {
		return "", fmt.Errorf("base URL is not configured")
	}
	endpoint, err := url.Parse(c.config.BaseURL + "/" + strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid request URL: %w", err)
	}

	values, err := encodeQuery(params)
	if err != nil {
		return "", err
	}
	if len(values) > 0 {
		merged := endpoint.Query()
		for key, list := range values {
			for _, value := range list {
				merged.Add(key, value)
			}
		}
		endpoint.RawQuery = merged.Encode()
	}
	return endpoint.String(), nil
}

func encodeQuery(params any) (url.Values, error) {
	switch typed := params.(type) {
	case nil:
		return nil, nil
	case url.Values:
		return typed, nil
	default:
		values, err := query.Values(params)
		if err != nil {
			return nil, fmt.Errorf("failed to encode query: %w", err)
		}
		return values, nil
	}
}

// EscapePath escapes every segment of a slash separated repository path.
func EscapePath(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
