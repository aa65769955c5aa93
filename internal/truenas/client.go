package truenas

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// APIPath is the path prefix of the TrueNAS middleware REST API.
const APIPath = "/api/v2.0"

const maxResponseBodySize = 4 << 20 // 4MB

// connection pooling limits; the client only ever talks to one TrueNAS host
const (
	defaultMaxIdleConnsPerHost = 2
	defaultMaxConnsPerHost     = 4
	defaultIdleConnTimeout     = 90 * time.Second
)

// Client issues authenticated GETs against a single TrueNAS API base URL.
//
// The Basic Authorization header is built once at construction and attached
// to every request. Each request runs under a context deadline derived from
// the configured timeout, so a slow upstream cannot hold a refresh cycle
// hostage. Response bodies are limited to 4MB.
//
// A Client is safe for concurrent use, though the dashboard only ever calls
// it from the single poller goroutine.
type Client struct {
	baseURL    string
	authHeader string
	timeout    time.Duration
	httpClient *http.Client
}

// New creates a [Client] for the API rooted at baseURL (scheme, host, port
// and [APIPath], no trailing slash required). The user/password pair is
// encoded into the Authorization header immediately and not retained.
func New(baseURL, user, password string, timeout time.Duration) *Client {
	credentials := base64.StdEncoding.EncodeToString([]byte(user + ":" + password))

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		authHeader: "Basic " + credentials,
		timeout:    timeout,
		httpClient: &http.Client{
			// no client-level timeout - per-request deadlines via context
			Transport: &http.Transport{
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				MaxConnsPerHost:     defaultMaxConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
		},
	}
}

// Jails fetches the jail collection from GET {base}/jail.
func (c *Client) Jails(ctx context.Context) ([]Jail, error) {
	var jails []Jail
	if err := c.get(ctx, "jail", &jails); err != nil {
		return nil, err
	}
	return jails, nil
}

// Plugins fetches the plugin collection from GET {base}/plugin.
func (c *Client) Plugins(ctx context.Context) ([]Plugin, error) {
	var plugins []Plugin
	if err := c.get(ctx, "plugin", &plugins); err != nil {
		return nil, err
	}
	return plugins, nil
}

// get performs one authenticated GET against {base}/{endpoint} and decodes
// the JSON response into out. Transport failures and non-2xx statuses come
// back as [*FetchError], undecodable bodies as [*ParseError].
func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint, nil)
	if err != nil {
		return &FetchError{Endpoint: endpoint, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Endpoint: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return &FetchError{Endpoint: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &ParseError{Endpoint: endpoint, Err: err}
	}
	return nil
}

// Close closes all idle connections in the client's connection pool.
//
// Safe to call multiple times. The client remains usable afterwards; new
// connections are established as needed.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
