// Package api implements the client for the Bookerang server. Every method
// maps to one endpoint of the remote contract; listing responses are
// normalized before they leave this package.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bookerang/bookerang/internal/books"
	"github.com/bookerang/bookerang/internal/session"
	"github.com/jellydator/ttlcache/v3"
)

// Client talks to a Bookerang server on behalf of one session.
type Client struct {
	baseURL    string
	session    *session.Session
	httpClient *http.Client
	cache      *ttlcache.Cache[string, []books.Book]
}

// NewClient creates a client for the server at baseURL. Listing responses are
// cached for cacheTTL; the cache is a thin layer over the server, never a
// source of truth.
func NewClient(baseURL string, sess *session.Session, cacheTTL time.Duration) *Client {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	cache := ttlcache.New(ttlcache.WithTTL[string, []books.Book](cacheTTL))
	go cache.Start()
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		session: sess,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache: cache,
	}
}

// Session returns the session this client authenticates with.
func (c *Client) Session() *session.Session {
	return c.session
}

// newRequest builds a request against the server, attaching the bearer token
// when one is available. Absence of a token simply omits the header; the
// server is responsible for rejecting.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do executes the request and returns the response body for 2xx statuses.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s %s returned status %d", req.Method, req.URL.Path, resp.StatusCode)
	}
	return body, nil
}

// doJSON executes the request and decodes the response into out when out is
// non-nil.
func (c *Client) doJSON(req *http.Request, out any) error {
	body, err := c.do(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// postJSON marshals payload and POSTs it to path.
func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, strings.NewReader(string(data)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doJSON(req, out)
}
