// Package api wraps HTTP access to the exchange backend. Every call is
// normalized into a Result: transport failures, non-2xx statuses and
// backend rejections all come back as Success=false with a message, so
// nothing above this layer ever sees a raw transport error.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bitdesk/bitdesk/pkg/logger"
)

// TokenSource supplies the current bearer token, or "" when the session
// is unauthenticated.
type TokenSource func() string

// Result is the uniform outcome of one backend call. Data holds the raw
// response body on success; Message carries the normalized failure text
// otherwise.
type Result struct {
	Success bool
	Data    json.RawMessage
	Message string
}

// Client is the HTTP client for the exchange backend.
type Client struct {
	http           *resty.Client
	tokenSource    TokenSource
	onUnauthorized func()
	log            *logrus.Entry
}

// Option configures a Client.
type Option func(*Client)

// WithTokenSource installs the bearer-token supplier.
func WithTokenSource(src TokenSource) Option {
	return func(c *Client) { c.tokenSource = src }
}

// WithUnauthorizedHook installs the global 401 handler. It fires on any
// 401 regardless of which caller issued the request.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// New creates a client for the given backend base URL.
func New(baseURL string, opts ...Option) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(15 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "bitdesk")

	c := &Client{
		http: rc,
		log:  logger.WithField("module", "api"),
	}
	for _, opt := range opts {
		opt(c)
	}

	rc.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if c.tokenSource != nil {
			if token := c.tokenSource(); token != "" {
				req.SetHeader("Authorization", "Bearer "+token)
			}
		}
		req.SetHeader("X-Request-ID", uuid.NewString())
		return nil
	})

	return c
}

// Get issues a GET and normalizes the outcome.
func (c *Client) Get(ctx context.Context, endpoint string) Result {
	return c.do(ctx, http.MethodGet, endpoint, nil)
}

// Post issues a POST with a JSON body and normalizes the outcome.
func (c *Client) Post(ctx context.Context, endpoint string, body interface{}) Result {
	return c.do(ctx, http.MethodPost, endpoint, body)
}

// Delete issues a DELETE and normalizes the outcome.
func (c *Client) Delete(ctx context.Context, endpoint string) Result {
	return c.do(ctx, http.MethodDelete, endpoint, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body interface{}) Result {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, endpoint)
	elapsed := time.Since(start)

	if err != nil {
		c.log.WithFields(logrus.Fields{"method": method, "endpoint": endpoint, "elapsed": elapsed}).
			Warnf("transport error: %v", err)
		return Result{Success: false, Message: "request failed"}
	}

	c.log.WithFields(logrus.Fields{"method": method, "endpoint": endpoint, "status": resp.StatusCode(), "elapsed": elapsed}).
		Debug("request complete")

	if resp.StatusCode() == http.StatusUnauthorized {
		// Global 401 policy: drop stored credentials and force the
		// login route, no matter which component made the call.
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return Result{Success: false, Message: errorMessage(resp.Body(), "session expired")}
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return Result{Success: false, Message: errorMessage(resp.Body(), "request failed")}
	}

	return Result{Success: true, Data: json.RawMessage(resp.Body())}
}

// errorMessage extracts the backend's human-readable message from an
// error body, falling back to def.
func errorMessage(body []byte, def string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return def
}
