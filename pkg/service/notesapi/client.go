package notesapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/notepad/pkg/utils/logging"
	"github.com/secmon-lab/notepad/pkg/utils/safe"
	"golang.org/x/net/publicsuffix"
)

const (
	// DefaultTimeout bounds a single call including reading the body
	DefaultTimeout = 10 * time.Second

	maxResponseBytes = 1 << 20
)

// Payload is a decoded JSON object response
type Payload map[string]json.RawMessage

// Has reports whether key is present
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Decode unmarshals the member key into v
func (p Payload) Decode(key string, v any) error {
	raw, ok := p[key]
	if !ok {
		return goerr.New("payload member is missing", goerr.V("key", key))
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return goerr.Wrap(err, "failed to decode payload member", goerr.V("key", key))
	}
	return nil
}

// errorMessage returns the error field when it is a non-empty string
func (p Payload) errorMessage() string {
	raw, ok := p["error"]
	if !ok {
		return ""
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err != nil {
		return ""
	}
	return msg
}

// Client talks to the notes backend. The session lives in the cookie jar, like in a browser:
// the client never reads it, it only carries it.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A jar is attached when it has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the per-call timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// New creates a client for the backend at baseURL, e.g. "http://localhost:8080"
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid base URL", goerr.V("baseURL", baseURL))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, goerr.New("base URL must be http or https", goerr.V("baseURL", baseURL))
	}
	if u.Host == "" {
		return nil, goerr.New("base URL has no host", goerr.V("baseURL", baseURL))
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create cookie jar")
		}
		c.http.Jar = jar
	}

	return c, nil
}

// BaseURL returns the normalized backend URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Call sends one request and normalizes the outcome. body, when not nil, is sent as JSON.
// Every error from a sent request is a *Failure. A request that cannot be built,
// such as an unencodable body, fails with a plain error before anything is sent.
func (c *Client) Call(ctx context.Context, method, endpoint string, body any) (Payload, error) {
	payload, _, err := c.call(ctx, method, endpoint, body)
	return payload, err
}

// call is Call that also returns the HTTP status of a successful response
func (c *Client) call(ctx context.Context, method, endpoint string, body any) (Payload, int, error) {
	logger := logging.From(ctx)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, goerr.Wrap(err, "failed to encode request body",
				goerr.V("method", method), goerr.V("endpoint", endpoint))
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, 0, goerr.Wrap(err, "failed to build request",
			goerr.V("method", method), goerr.V("endpoint", endpoint))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug("notes API unreachable", "method", method, "endpoint", endpoint, "error", err)
		return nil, 0, networkFailure(err, method, endpoint)
	}
	defer safe.DrainAndClose(ctx, resp.Body)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, 0, networkFailure(err, method, endpoint)
	}

	logger.Debug("notes API call",
		"method", method,
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	payload, err := parsePayload(raw)
	if err != nil {
		return nil, 0, protocolFailure(err, resp.StatusCode, method, endpoint)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, 0, &Failure{
			Reason:  ReasonRejected,
			Status:  resp.StatusCode,
			Message: payload.errorMessage(),
		}
	}

	return payload, resp.StatusCode, nil
}

func parsePayload(raw []byte) (Payload, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Payload{}, nil
	}

	var payload Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, goerr.Wrap(err, "response body is not a JSON object")
	}
	if payload == nil {
		// literal null
		return nil, goerr.New("response body is null")
	}
	return payload, nil
}
