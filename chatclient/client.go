// Package chatclient posts user text to the chat endpoint and extracts the reply.
package chatclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/linanwx/chatwidget/logger"
	"github.com/linanwx/chatwidget/widget"
)

const (
	DefaultPath = "/chat"

	maxBodyBytes = 1 << 20
)

// ErrResponseTooLarge is the cause when a response body exceeds 1 MiB.
var ErrResponseTooLarge = errors.New("response too large")

// Client sends one POST per Reply call. It never retries.
type Client struct {
	baseURL    string
	path       string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithPath sets the endpoint path appended to the base URL.
func WithPath(path string) Option {
	return func(c *Client) {
		path = strings.TrimSpace(path)
		if path == "" {
			return
		}
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		c.path = path
	}
}

// WithTimeout bounds each request. Zero keeps the default of no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			hc := *c.httpClient
			hc.Timeout = d
			c.httpClient = &hc
		}
	}
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		path:       DefaultPath,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.baseURL + c.path
}

// Reply posts {"message": text} and returns the "reply" string of the
// response. Every failure wraps widget.ErrReplyFetchFailed.
func (c *Client) Reply(ctx context.Context, text string) (string, error) {
	id := uuid.NewString()
	start := time.Now()

	body, err := sjson.SetBytes([]byte(`{}`), "message", text)
	if err != nil {
		return "", fail("encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", fail("build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	logger.Debug("chat request", "id", id, "endpoint", c.Endpoint(), "chars", len(text))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug("chat request failed", "id", id, "err", err)
		return "", fail("send request", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return "", fail("read response", err)
	}

	logger.Debug("chat response", "id", id, "status", resp.StatusCode, "bytes", len(data), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fail("unexpected status", fmt.Errorf("%s", resp.Status))
	}
	if len(data) > maxBodyBytes {
		return "", fail("read response", ErrResponseTooLarge)
	}
	return decodeReply(data)
}

func decodeReply(data []byte) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", fail("decode response", fmt.Errorf("invalid JSON"))
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return "", fail("decode response", fmt.Errorf("expected object, got %s", root.Type))
	}
	reply := root.Get("reply")
	if !reply.Exists() {
		return "", fail("decode response", fmt.Errorf("missing reply field"))
	}
	if reply.Type != gjson.String {
		return "", fail("decode response", fmt.Errorf("reply is %s, want string", reply.Type))
	}
	return reply.String(), nil
}

func fail(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", widget.ErrReplyFetchFailed, step, err)
}
