// Package api talks to the activities HTTP API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/klabast/wb-services/aktivitaeten/internal/activity"
	"github.com/klabast/wb-services/aktivitaeten/internal/logging"
)

// RequestIDHeader carries the per-request ID sent with every API call.
const RequestIDHeader = "X-Request-ID"

const (
	OpList   = "list_activities"
	OpSignup = "signup"
	OpRemove = "remove_participant"
)

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 4 << 20

// Client issues requests against the activities API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: http.DefaultClient,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type messageBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// Activities fetches the full activity collection.
func (c *Client) Activities(ctx context.Context) (*activity.Collection, error) {
	start := time.Now()
	var coll activity.Collection
	err := c.do(ctx, OpList, http.MethodGet, c.baseURL+"/activities", func(body []byte) error {
		return json.Unmarshal(body, &coll)
	})
	observe(OpList, start, err)
	if err != nil {
		return nil, err
	}
	return &coll, nil
}

// Signup registers email for the named activity and returns the server message.
func (c *Client) Signup(ctx context.Context, name, email string) (string, error) {
	target := fmt.Sprintf("%s/activities/%s/signup?email=%s", c.baseURL, url.PathEscape(name), queryEscape(email))
	return c.mutate(ctx, OpSignup, http.MethodPost, target)
}

// RemoveParticipant removes email from the named activity and returns the
// server message.
func (c *Client) RemoveParticipant(ctx context.Context, name, email string) (string, error) {
	target := fmt.Sprintf("%s/activities/%s/participants?email=%s", c.baseURL, url.PathEscape(name), queryEscape(email))
	return c.mutate(ctx, OpRemove, http.MethodDelete, target)
}

// queryEscape percent-encodes v for a query value, with spaces as %20
// rather than '+'.
func queryEscape(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

func (c *Client) mutate(ctx context.Context, op, method, target string) (string, error) {
	start := time.Now()
	var msg messageBody
	err := c.do(ctx, op, method, target, func(body []byte) error {
		// A success without a readable body still counts as success.
		if err := json.Unmarshal(body, &msg); err != nil {
			c.logger.WarnContext(ctx, "undecodable success body", "op", op, "error", err)
		}
		return nil
	})
	observe(op, start, err)
	if err != nil {
		return "", err
	}
	return msg.Message, nil
}

// do performs the request and hands a successful body to decode. Non-success
// statuses become *StatusError, everything else *TransportError.
func (c *Client) do(ctx context.Context, op, method, target string, decode func([]byte) error) error {
	id := uuid.NewString()
	ctx = logging.WithRequestID(ctx, id)

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, id)

	c.logger.DebugContext(ctx, "api request", "op", op, "method", method, "url", target)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "api request failed", "op", op, "error", err)
		return &TransportError{Op: op, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.WarnContext(ctx, "closing response body", "op", op, "error", err)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		c.logger.ErrorContext(ctx, "reading response body", "op", op, "error", err)
		return &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Op: op, StatusCode: resp.StatusCode}
		var msg messageBody
		if json.Unmarshal(body, &msg) == nil {
			statusErr.Detail = msg.Detail
			statusErr.Msg = msg.Message
		}
		c.logger.WarnContext(ctx, "api request rejected", "op", op, "status", resp.StatusCode, "detail", statusErr.Message())
		return statusErr
	}

	if err := decode(body); err != nil {
		c.logger.ErrorContext(ctx, "decoding response", "op", op, "error", err)
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// ServerMessage returns the server-provided text carried by err, if any.
func ServerMessage(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message()
	}
	return ""
}
