package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/masterchefhck/transportdf-mvp-sub001/pkg/errors"
	"github.com/masterchefhck/transportdf-mvp-sub001/pkg/logger"
)

const maxErrorBody = 4 << 10

// Config holds API client configuration
type Config struct {
	BaseURL string
	// Timeout of zero leaves requests without a client deadline.
	Timeout   time.Duration
	Transport http.RoundTripper
}

// Client talks to the backend REST API. It never retries; callers decide
// whether to offer a manual refresh.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *logger.Logger
}

// New creates a new API client
func New(cfg Config, log *logger.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		logger: log.Named("api"),
	}, nil
}

// Get issues GET path and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, path, token string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, token, nil, out)
}

// Post issues POST path with in encoded as JSON and decodes the reply into out.
func (c *Client) Post(ctx context.Context, path, token string, in, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, token, in, out)
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return apperrors.BadRequest("failed to encode request", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return apperrors.Internal("failed to build request", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return c.transportError(ctx, method, path, requestID, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("API request completed",
		logger.String("method", method),
		logger.String("path", path),
		logger.RequestID(requestID),
		logger.Int("status", resp.StatusCode),
		logger.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		appErr := apperrors.FromStatus(resp.StatusCode, errorDetail(resp.Body, resp.Status))
		c.logger.Warn("API request rejected",
			logger.String("method", method),
			logger.String("path", path),
			logger.RequestID(requestID),
			logger.Int("status", resp.StatusCode),
			logger.String("detail", appErr.Message),
		)
		return appErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("Failed to decode API response",
			logger.String("path", path),
			logger.RequestID(requestID),
			logger.Err(err),
		)
		return apperrors.Internal("invalid response body", err)
	}
	return nil
}

func (c *Client) transportError(ctx context.Context, method, path, requestID string, err error) error {
	// cancellation is the caller's own doing (screen unmounted); not an API failure
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		c.logger.Warn("API request timed out",
			logger.String("method", method),
			logger.String("path", path),
			logger.RequestID(requestID),
		)
		return apperrors.Timeout("request timed out", err)
	}
	c.logger.Warn("API request failed",
		logger.String("method", method),
		logger.String("path", path),
		logger.RequestID(requestID),
		logger.Err(err),
	)
	return apperrors.Network("request failed", err)
}

// errorDetail extracts a message from common error envelopes:
// {"detail": "..."}, {"error": "..."}, {"message": "..."}.
func errorDetail(r io.Reader, fallback string) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return fallback
	}
	var envelope struct {
		Detail  interface{} `json:"detail"`
		Error   string      `json:"error"`
		Message string      `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fallback
	}
	switch {
	case envelope.Error != "":
		return envelope.Error
	case envelope.Message != "":
		return envelope.Message
	}
	if s, ok := envelope.Detail.(string); ok && s != "" {
		return s
	}
	return fallback
}
