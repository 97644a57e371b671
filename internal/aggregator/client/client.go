// Package client provides the provider adapters used by the aggregator.
// Every adapter performs exactly one GET against a fixed upstream and returns
// a transport.Outcome; it never returns an error or panics to the caller.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"halal_scanner_backend/internal/aggregator/transport"
	"halal_scanner_backend/platform/logger"
)

const (
	// CallTimeout bounds every adapter call.
	CallTimeout = 8 * time.Second

	userAgent    = "HalalScanner/1.0"
	maxBodyBytes = 4 << 20
)

// Outcome reasons recorded in failed ledger entries.
const (
	ReasonTimeout    = "timeout"
	ReasonMalformed  = "malformed response"
	ReasonNotFound   = "not found"
	ReasonRejected   = "upstream rejected"
	ReasonConnection = "connection failed"
)

var (
	errNotFound  = errors.New("not found")
	errMalformed = errors.New("malformed response")
	errRejected  = errors.New("upstream rejected")
)

// StatusError is a non-2xx upstream response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d", e.Code)
}

// Client runs provider adapters over one shared http.Client.
type Client struct {
	httpClient *http.Client
	log        *logger.Logger
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTransport replaces the HTTP transport. Tests use it to stub upstreams.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// WithTimeout overrides the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates a provider client.
func New(log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		log:        log,
		timeout:    CallTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// run is the isolating wrapper around one adapter body. The body's error or
// panic becomes a failed outcome with a classified reason.
func (c *Client) run(ctx context.Context, source string, fn func(ctx context.Context) (any, error)) (out transport.Outcome) {
	start := time.Now()
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			c.log.Error("provider adapter panicked", "source", source, "panic", r)
			out = transport.Outcome{Source: source, Error: ReasonMalformed}
		}
		latency := float64(time.Since(start).Microseconds()) / 1000
		c.log.WithContext(ctx).ProviderCall(source, out.Success, latency, out.Error)
	}()

	payload, err := fn(callCtx)
	if err != nil {
		return transport.Outcome{Source: source, Error: Reason(err)}
	}
	return transport.Outcome{Source: source, Success: true, Payload: payload}
}

// Reason maps an adapter error to the ledger reason string.
func Reason(err error) string {
	var statusErr *StatusError
	var netErr net.Error

	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return ReasonTimeout
	case errors.As(err, &statusErr):
		return statusErr.Error()
	case errors.Is(err, errNotFound):
		return ReasonNotFound
	case errors.Is(err, errRejected):
		return ReasonRejected
	case errors.Is(err, errMalformed):
		return ReasonMalformed
	default:
		return ReasonConnection
	}
}

// getJSON issues one GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// Success - continue to decode
	case resp.StatusCode == http.StatusNotFound:
		return errNotFound
	default:
		return &StatusError{Code: resp.StatusCode}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("read body: %w", ctxErr)
		}
		return fmt.Errorf("%w: %v", errMalformed, err)
	}
	return nil
}
