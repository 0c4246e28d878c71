// Package backend is the HTTP client for the commerce REST backend.
//
// Calls are never retried. They go through a circuit breaker so that an
// unreachable backend fails fast instead of tying up checkout requests.
package backend

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	apperrors "storefront/pkg/errors"
	"storefront/pkg/logger"
)

const (
	// IdempotencyKeyHeader is forwarded on calls that create resources
	IdempotencyKeyHeader = "Idempotency-Key"
	traceIDHeader        = "X-Trace-ID"

	maxErrorBody = 64 << 10
)

// Error is a non-2xx answer from the backend
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend returned %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// AsError extracts a backend rejection from err
func AsError(err error) (*Error, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// Config holds client configuration
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	// TLS overrides the transport's TLS settings when set
	TLS *tls.Config
}

// Client talks JSON to the commerce backend
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[struct{}]
	log     *logger.Logger
}

// NewClient creates a new backend client
func NewClient(cfg Config, log *logger.Logger) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: cfg.Timeout},
		log:     log,
	}

	if cfg.TLS != nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = cfg.TLS
		c.http.Transport = transport
	}

	c.breaker = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "commerce-backend",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// Business rejections mean the backend is up
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			be, ok := AsError(err)
			return ok && be.Status < http.StatusInternalServerError
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return c
}

// RequestOption customizes a single request
type RequestOption func(*http.Request)

// WithIdempotencyKey sets the Idempotency-Key header
func WithIdempotencyKey(key string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(IdempotencyKeyHeader, key)
	}
}

// Post sends body as JSON to path and decodes the response into out.
// out may be nil.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPost, path, body, out, opts...)
}

// Get fetches path and decodes the response into out
func (c *Client) Get(ctx context.Context, path string, out interface{}, opts ...RequestOption) error {
	return c.do(ctx, http.MethodGet, path, nil, out, opts...)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, opts ...RequestOption) error {
	_, err := c.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, c.roundTrip(ctx, method, path, body, out, opts...)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return apperrors.NewUnavailable("commerce backend is unavailable", err)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, out interface{}, opts ...RequestOption) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if traceID := logger.GetTraceID(ctx); traceID != "" {
		req.Header.Set(traceIDHeader, traceID)
	}
	for _, opt := range opts {
		opt(req)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.WithContext(ctx).Debug("backend call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// errorBody covers the shapes the backend uses for failures
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body errorBody
	_ = json.Unmarshal(data, &body)

	message := body.Message
	if message == "" {
		message = body.Error
	}

	return &Error{
		Status:  resp.StatusCode,
		Code:    body.Code,
		Message: message,
	}
}
