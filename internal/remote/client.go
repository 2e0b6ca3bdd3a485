// Package remote talks to the LIMS REST API and implements the domain repositories.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ganot/unolims/internal/config"
	"github.com/ganot/unolims/internal/logging"
	"github.com/ganot/unolims/internal/repository"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries a per-call id the API can log alongside ours.
const RequestIDHeader = "X-Request-ID"

// Client is the shared HTTP collaborator of every repository in this package.
type Client struct {
	http   *resty.Client
	logger *zap.Logger

	mu    sync.RWMutex
	token string
}

// New creates a client for the API described by cfg.
func New(cfg config.APIConfig, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient, logger: logging.OrNop(logger)}
}

// SetToken sets the bearer token sent with every call. An empty token clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type tokenKey struct{}

// WithToken returns a context whose calls authenticate with token instead of
// the client's own. An empty token sends no Authorization header.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func (c *Client) tokenFor(ctx context.Context) string {
	if token, ok := ctx.Value(tokenKey{}).(string); ok {
		return token
	}
	return c.Token()
}

type call struct {
	method string
	path   string
	params map[string]string
	query  map[string]string
	body   any
	out    any
	// single marks a one-record read: an empty or null body means not found.
	single bool
	// lenient ignores undecodable success bodies, for writes whose reply is informational.
	lenient bool
}

func (c *Client) do(ctx context.Context, cl call) error {
	reqID := uuid.NewString()
	req := c.http.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, reqID)
	if token := c.tokenFor(ctx); token != "" {
		req.SetAuthToken(token)
	}
	if len(cl.params) > 0 {
		req.SetPathParams(cl.params)
	}
	if len(cl.query) > 0 {
		req.SetQueryParams(cl.query)
	}
	if cl.body != nil {
		req.SetBody(cl.body)
	}

	start := time.Now()
	resp, err := req.Execute(cl.method, cl.path)
	if err != nil {
		c.logger.Warn("remote call failed",
			zap.String("method", cl.method),
			zap.String("path", cl.path),
			zap.String("request_id", reqID),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %s %s: %w", repository.ErrUnavailable, cl.method, cl.path, err)
	}

	status := resp.StatusCode()
	c.logger.Debug("remote call",
		zap.String("method", cl.method),
		zap.String("path", cl.path),
		zap.Int("status", status),
		zap.Duration("duration", time.Since(start)),
		zap.String("request_id", reqID),
	)

	if status == http.StatusNotFound {
		return repository.ErrNotFound
	}
	if !resp.IsSuccess() {
		return &repository.RemoteError{Status: status, Message: serverMessage(resp.Body())}
	}

	err = decode(resp.Body(), cl.out, cl.single)
	if err != nil && cl.lenient {
		c.logger.Debug("ignoring write reply", zap.String("path", cl.path), zap.Error(err))
		return nil
	}
	return err
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, call{method: http.MethodGet, path: path, out: out})
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, call{method: http.MethodPost, path: path, body: body, out: out, lenient: true})
}

// decode reads a success body into out. Lists may arrive bare or as {"data": [...]}.
func decode(body []byte, out any, single bool) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		if single {
			return repository.ErrNotFound
		}
		return nil
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if json.Unmarshal(body, &envelope) == nil && len(envelope.Data) > 0 {
			return decode(envelope.Data, out, single)
		}
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// serverMessage extracts the human readable reason from an error body.
func serverMessage(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	for _, key := range []string{"erro", "message", "error"} {
		var msg string
		if raw, ok := fields[key]; ok && json.Unmarshal(raw, &msg) == nil && msg != "" {
			return msg
		}
	}
	return ""
}
