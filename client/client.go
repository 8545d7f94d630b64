package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.oblien.com"

// ErrInvalidArgument is wrapped by every local validation failure; no
// request has been sent when it is returned.
var ErrInvalidArgument = errors.New("invalid argument")

// RequestError is returned when the API answers with a non-2xx status.
type RequestError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s request failed: %s", e.Op, e.Message)
}

// Client talks to the Oblien search API. Credentials are fixed at
// construction; a Client holds no mutable state and is safe for
// concurrent use.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	http         *http.Client
	httpStream   *http.Client // no timeout, used for long-lived crawl streams
	logger       *zap.Logger
}

type Option func(*Client)

// WithBaseURL points the client at a different API host, e.g. a staging
// environment. A trailing slash is stripped.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client for search and
// extract calls. The crawl stream keeps its own timeout-free client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger enables debug logging of request dispatch and stream
// handling. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(clientID, clientSecret string, opts ...Option) *Client {
	c := &Client{
		baseURL:      DefaultBaseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
		httpStream: &http.Client{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// newRequest builds an authenticated JSON POST for the given path.
func (c *Client) newRequest(ctx context.Context, path string, payload any) (*http.Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("client-id", c.clientID)
	req.Header.Set("client-secret", c.clientSecret)
	req.Header.Set("request-id", uuid.NewString())
	return req, nil
}

// postJSON sends the payload and decodes a 2xx response body into out.
func (c *Client) postJSON(ctx context.Context, op, path string, payload, out any) error {
	req, err := c.newRequest(ctx, path, payload)
	if err != nil {
		return err
	}

	c.logger.Debug("sending request",
		zap.String("op", op),
		zap.String("path", path),
		zap.String("request_id", req.Header.Get("request-id")))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.apiError(op, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// apiError builds a RequestError from a non-2xx response, preferring the
// {error} field of the body over the status reason phrase.
func (c *Client) apiError(op string, resp *http.Response) error {
	message := http.StatusText(resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err == nil {
		var parsed struct {
			Error string `json:"error"`
		}
		if jerr := json.Unmarshal(body, &parsed); jerr == nil && parsed.Error != "" {
			message = parsed.Error
		}
	}

	c.logger.Debug("request failed",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.String("message", message))

	return &RequestError{Op: op, StatusCode: resp.StatusCode, Message: message}
}
