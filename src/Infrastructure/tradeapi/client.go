// Package tradeapi implements a strongly-typed HTTP client for the trading backend REST API.
//
// Coverage: every endpoint the console consumes, grouped by resource:
// auth, chains, dexes, dex-routers, trading-contracts, wallet, swap and snipes.
//
// Notes:
//   - Successful responses follow a {data: T} envelope; the client returns the unwrapped data.
//   - Failed responses carry a {message} field; it becomes the error message when present.
//   - Authenticated calls read a bearer token from a TokenSource before dispatch. A missing
//     token fails with KindUnauthenticated and no request is sent.
//   - No retries and no timeout policy beyond the configured http.Client.
package tradeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Default HTTP timeouts tuned for an interactive console.
var (
	DefaultHTTPClient = &http.Client{Timeout: 30 * time.Second}
)

// TokenSource yields the bearer token for authenticated calls. An empty token
// means no session.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// Observer receives one call per backend round trip. *metrics.Metrics satisfies it.
type Observer interface {
	ObserveBackend(method, path, outcome string, d time.Duration)
}

// NewClient constructs a new API client. base should be like "https://api.example.com/v1".
func NewClient(base string, opts ...Option) (*Client, error) {
	if base == "" {
		return nil, errors.New("base url is required")
	}
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	c := &Client{
		BaseURL:   u,
		HTTP:      DefaultHTTPClient,
		UserAgent: "tradedesk/1.0",
		Logger:    log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Option functional options.
type Option func(*Client)

func WithHTTPClient(h *http.Client) Option  { return func(c *Client) { c.HTTP = h } }
func WithTokenSource(ts TokenSource) Option { return func(c *Client) { c.Tokens = ts } }
func WithUserAgent(ua string) Option        { return func(c *Client) { c.UserAgent = ua } }
func WithLogger(l zerolog.Logger) Option    { return func(c *Client) { c.Logger = l } }
func WithObserver(o Observer) Option        { return func(c *Client) { c.Observer = o } }
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.HTTP = &http.Client{Timeout: d} }
}

type Client struct {
	BaseURL   *url.URL
	HTTP      *http.Client
	Tokens    TokenSource
	UserAgent string
	Logger    zerolog.Logger
	Observer  Observer
}

// envelope is the success shape of every backend response.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// errorBody is the failure shape; message may be a string or a list of strings.
type errorBody struct {
	Message json.RawMessage `json:"message"`
}

// request describes one backend call.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	auth   bool
}

func (c *Client) do(ctx context.Context, rq request, out any) error {
	u := *c.BaseURL
	u.Path = path.Join(u.Path, rq.path)
	u.RawQuery = rq.query.Encode() // sorted by key, matches the query cache keys

	var token string
	if rq.auth {
		if c.Tokens != nil {
			t, err := c.Tokens.Token(ctx)
			if err != nil {
				return newError(KindUnauthenticated, 0, "Not authenticated", err)
			}
			token = t
		}
		if strings.TrimSpace(token) == "" {
			return newError(KindUnauthenticated, 0, "Not authenticated", ErrNoToken)
		}
	}

	// --- Build request body ---
	var r io.Reader
	contentType := ""
	if rq.body != nil {
		buf, err := json.Marshal(rq.body)
		if err != nil {
			return newError(KindTransport, 0, "marshal body", err)
		}
		r = bytes.NewReader(buf)
		contentType = "application/json"
	}

	// --- Build request ---
	req, err := http.NewRequestWithContext(ctx, rq.method, u.String(), r)
	if err != nil {
		return newError(KindTransport, 0, "new request", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	// --- Execute request ---
	start := time.Now()
	route := routeLabel(rq.path)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.observe(rq.method, route, "transport_error", time.Since(start))
		return newError(KindTransport, 0, err.Error(), err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(rq.method, route, "transport_error", time.Since(start))
		return newError(KindTransport, resp.StatusCode, "read body", err)
	}

	// --- Logging response ---
	c.Logger.Info().
		Str("method", rq.method).
		Str("url", u.String()).
		Int("status", resp.StatusCode).
		Str("duration", time.Since(start).String()).
		Str("response", string(truncateJSON(b, 2048))).
		Msg("http response")

	// --- Status check ---
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.observe(rq.method, route, "http_error", time.Since(start))
		msg := serverMessage(b)
		if msg == "" {
			msg = fmt.Sprintf("http error %d", resp.StatusCode)
		}
		return newError(KindTransport, resp.StatusCode, msg, nil)
	}
	c.observe(rq.method, route, "ok", time.Since(start))

	// --- Decode output ---
	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return newError(KindTransport, resp.StatusCode, "unmarshal envelope", err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return newError(KindTransport, resp.StatusCode, "unmarshal data", err)
	}
	return nil
}

// doJSON decodes the envelope data into T.
func doJSON[T any](c *Client, ctx context.Context, rq request) (T, error) {
	var out T
	err := c.do(ctx, rq, &out)
	return out, err
}

func (c *Client) observe(method, route, outcome string, d time.Duration) {
	if c.Observer != nil {
		c.Observer.ObserveBackend(method, route, outcome, d)
	}
}

// --- Helpers ---

func serverMessage(b []byte) string {
	var eb errorBody
	if err := json.Unmarshal(b, &eb); err != nil || len(eb.Message) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(eb.Message, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(eb.Message, &list); err == nil {
		return strings.Join(list, ", ")
	}
	return ""
}

var numericSegment = regexp.MustCompile(`/\d+(/|$)`)

// routeLabel collapses numeric path segments so metric labels stay bounded.
func routeLabel(p string) string {
	for numericSegment.MatchString(p) {
		p = numericSegment.ReplaceAllString(p, "/:id$1")
	}
	return p
}

func truncateJSON(b []byte, max int) []byte {
	if len(b) > max {
		return b[:max]
	}
	return b
}
