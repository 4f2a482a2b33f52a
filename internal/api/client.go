package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

// TokenSource returns the bearer token for the next request. An empty token
// sends no Authorization header.
type TokenSource func() string

// Client talks HTTP+JSON to the library gateway.
type Client struct {
	baseURL string
	token   TokenSource
	http    *http.Client
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a Client for the gateway at baseURL.
func New(baseURL string, token TokenSource, opts ...Option) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the gateway root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HasToken reports whether requests will carry a bearer token.
func (c *Client) HasToken() bool {
	return c.token() != ""
}

// do executes the request with the standard gateway headers.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	req.Header.Set("Accept", "application/json")
	if req.Header.Get("Content-Type") == "" && req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	ev := c.log.Debug().
		Str("request_id", reqID).
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Dur("latency", time.Since(start))
	if err != nil {
		ev.Err(err).Msg("gateway request failed")
		return nil, err
	}
	ev.Int("status", resp.StatusCode).Msg("gateway request")
	return resp, nil
}

// send builds and executes a request, returning the raw body of a 2xx
// response. Non-2xx responses become *APIError.
func (c *Client) send(ctx context.Context, method, u string, body interface{}, hdr http.Header) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, err
	}
	for k, vs := range hdr {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if err := checkStatus(resp.StatusCode, data); err != nil {
		return nil, err
	}
	return data, nil
}

// doJSON sends a request and decodes the JSON response into out.
func (c *Client) doJSON(ctx context.Context, method, u string, body, out interface{}) error {
	data, err := c.send(ctx, method, u, body, nil)
	if err != nil {
		return err
	}
	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding %s %s: %w", method, u, err)
		}
	}
	return nil
}

// getList fetches a list endpoint and resolves its shape.
func getList[T any](ctx context.Context, c *Client, u string, perPage int) (ListResult[T], error) {
	hdr := http.Header{}
	hdr.Set("Cache-Control", "no-cache")
	data, err := c.send(ctx, http.MethodGet, u, nil, hdr)
	if err != nil {
		return ListResult[T]{}, err
	}
	res, err := decodeList[T](data, perPage)
	if err != nil {
		return ListResult[T]{}, fmt.Errorf("decoding %s: %w", u, err)
	}
	return res, nil
}

// url builds a gateway URL from path segments.
func (c *Client) url(parts ...string) string {
	return c.baseURL + "/" + strings.Join(parts, "/")
}

// ListParams are the query parameters of paginated list endpoints.
type ListParams struct {
	Page    int
	Search  string
	PerPage int
}

func (p ListParams) query() url.Values {
	q := url.Values{}
	page := p.Page
	if page < 1 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page))
	if s := strings.TrimSpace(p.Search); s != "" {
		q.Set("search", s)
	}
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	return q
}

func withQuery(u string, q url.Values) string {
	if len(q) == 0 {
		return u
	}
	return u + "?" + q.Encode()
}

func id(n int64) string {
	return strconv.FormatInt(n, 10)
}

// checkStatus returns a typed error for non-2xx responses.
func checkStatus(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	return newAPIError(status, body)
}
