package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// StatusError reports a non-2xx response from the remote store.
type StatusError struct {
	Code   int
	Method string
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote store: %s %s returned %d", e.Method, e.URL, e.Code)
}

// Client talks to a json-server style resource store over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the store at baseURL, e.g.
// "http://localhost:3130".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// NewClientWithHTTP creates a Client using the given http.Client, for tests
// and callers that need custom transport settings.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: hc}
}

func (c *Client) List(ctx context.Context, collection string, out any) error {
	return c.do(ctx, http.MethodGet, c.baseURL+"/"+collection, nil, out)
}

func (c *Client) ListWhere(ctx context.Context, collection string, filter url.Values, out any) error {
	u := c.baseURL + "/" + collection
	if len(filter) > 0 {
		u += "?" + filter.Encode()
	}
	return c.do(ctx, http.MethodGet, u, nil, out)
}

func (c *Client) Create(ctx context.Context, collection string, body any, out any) error {
	return c.do(ctx, http.MethodPost, c.baseURL+"/"+collection, body, out)
}

func (c *Client) Patch(ctx context.Context, collection, id string, fields any) error {
	return c.do(ctx, http.MethodPatch, c.baseURL+"/"+collection+"/"+url.PathEscape(id), fields, nil)
}

func (c *Client) Delete(ctx context.Context, collection, id string) error {
	return c.do(ctx, http.MethodDelete, c.baseURL+"/"+collection+"/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, u string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("remote store request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode, Method: method, URL: u}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
