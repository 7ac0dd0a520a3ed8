// Package shopify is the remote-data layer: a GraphQL transport with
// retry classes matching the platform's rate-limit contract, a generic
// cursor-pagination collector, and the order and catalog queries the
// invoice and HSN pipelines run.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/adukale/gst-shopify/internal/model"
)

const (
	// APIVersion pins the Admin API release the queries are written against.
	APIVersion = "2024-10"

	DefaultTimeout         = 10 * time.Second
	DefaultMaxRetries      = 5
	DefaultBackoffBase     = 2 * time.Second
	DefaultRetryAfter      = 5 * time.Second
	DefaultRateLimitBudget = 5 * time.Minute
)

// GraphQLError is one entry of the response `errors` array.
type GraphQLError struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// Response is the GraphQL envelope. Errors alongside partial Data are not
// a transport failure; callers decide whether a partial result is usable.
type Response struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// HasErrors reports whether the platform attached query-level errors.
func (r *Response) HasErrors() bool {
	return len(r.Errors) > 0
}

// Client issues GraphQL requests against one store's Admin API.
// Stateless across calls; retry counters are scoped to a single Do.
type Client struct {
	endpoint        string
	accessToken     string
	httpClient      *http.Client
	maxRetries      int
	backoffBase     time.Duration
	retryAfter      time.Duration
	rateLimitBudget time.Duration
	log             *zap.SugaredLogger
	sleep           func(context.Context, time.Duration) error
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithEndpoint overrides the GraphQL endpoint URL. Intended for tests
// against a local fake.
func WithEndpoint(url string) ClientOption {
	return func(c *Client) { c.endpoint = url }
}

// WithMaxRetries bounds retries of connection-level failures.
func WithMaxRetries(n int) ClientOption {
	return func(c *Client) { c.maxRetries = n }
}

// WithBackoffBase sets the base delay of the exponential connection-failure
// backoff.
func WithBackoffBase(d time.Duration) ClientOption {
	return func(c *Client) { c.backoffBase = d }
}

// WithRateLimitBudget caps the total wall-clock time one Do may spend
// waiting out HTTP 429 responses.
func WithRateLimitBudget(d time.Duration) ClientOption {
	return func(c *Client) { c.rateLimitBudget = d }
}

// WithLogger attaches a logger. The default is a nop logger.
func WithLogger(log *zap.SugaredLogger) ClientOption {
	return func(c *Client) { c.log = log }
}

// WithSleep replaces the delay function so tests can observe waits
// without incurring them.
func WithSleep(fn func(context.Context, time.Duration) error) ClientOption {
	return func(c *Client) { c.sleep = fn }
}

// NewClient creates a client for the given store domain
// (e.g. "example.myshopify.com") and Admin API access token. Credentials
// are explicit constructor inputs; the client reads no environment.
func NewClient(storeDomain, accessToken string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:        fmt.Sprintf("https://%s/admin/api/%s/graphql.json", storeDomain, APIVersion),
		accessToken:     accessToken,
		httpClient:      &http.Client{Timeout: DefaultTimeout},
		maxRetries:      DefaultMaxRetries,
		backoffBase:     DefaultBackoffBase,
		retryAfter:      DefaultRetryAfter,
		rateLimitBudget: DefaultRateLimitBudget,
		log:             zap.NewNop().Sugar(),
		sleep:           sleepCtx,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Do sends one GraphQL request and returns the parsed envelope.
//
// Retry classes are independent: HTTP 429 sleeps out the Retry-After
// header (default 5s) under the rate-limit budget without consuming the
// connection-failure counter; connection errors back off exponentially up
// to the retry bound; any other non-2xx status fails immediately with the
// error body attached.
func (c *Client) Do(ctx context.Context, query string, variables map[string]any) (*Response, error) {
	body := map[string]any{"query": query}
	if variables != nil {
		body["variables"] = variables
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	var (
		connRetries int
		rateWaited  time.Duration
		lastErr     error
	)
	for connRetries <= c.maxRetries {
		resp, err := c.post(ctx, payload)
		if err != nil {
			// Connection-level failure: dial, timeout, reset.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			connRetries++
			lastErr = err
			if connRetries > c.maxRetries {
				break
			}
			delay := c.backoffBase << (connRetries - 1)
			c.log.Warnw("connection error, retrying", "attempt", connRetries, "delay", delay, "error", err)
			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}
			continue
		}

		switch {
		case resp.statusCode == http.StatusTooManyRequests:
			wait := c.retryAfter
			if s := resp.retryAfter; s != "" {
				if secs, perr := strconv.Atoi(s); perr == nil {
					wait = time.Duration(secs) * time.Second
				}
			}
			rateWaited += wait
			if rateWaited > c.rateLimitBudget {
				return nil, &model.MaxRetriesExceededError{
					Attempts: connRetries,
					Cause:    &model.RateLimitedError{RetryAfterSeconds: int(wait / time.Second)},
				}
			}
			c.log.Infow("rate limit hit, backing off", "wait", wait)
			if err := c.sleep(ctx, wait); err != nil {
				return nil, err
			}
			continue

		case resp.statusCode < 200 || resp.statusCode >= 300:
			// Non-transient: bad query, auth failure, schema violation.
			return nil, &model.TransportError{Status: resp.statusCode, Body: string(resp.body)}
		}

		parsed := &Response{}
		if err := json.Unmarshal(resp.body, parsed); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		if parsed.HasErrors() {
			c.log.Warnw("graphql errors in response", "errors", parsed.Errors)
		}
		return parsed, nil
	}

	return nil, &model.MaxRetriesExceededError{Attempts: connRetries, Cause: lastErr}
}

type rawResponse struct {
	statusCode int
	retryAfter string
	body       []byte
}

func (c *Client) post(ctx context.Context, payload []byte) (*rawResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &rawResponse{
		statusCode: resp.StatusCode,
		retryAfter: resp.Header.Get("Retry-After"),
		body:       body,
	}, nil
}
