// Package api implements the HTTP client for the app store backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the app store backend over HTTP.
type Client struct {
	httpClient *http.Client
	// streamClient has no timeout: install streams stay open for the
	// whole install and are bounded by context instead.
	streamClient *http.Client
	baseURL      string
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		streamClient: &http.Client{},
		baseURL:      strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s: %w", path, err)
	}
	return resp, nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}, client *http.Client) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s: %w", path, err)
	}
	return resp, nil
}

// decodeError extracts the backend's JSON error message, falling back to a
// generic message when the body is not the expected shape.
func decodeError(resp *http.Response) error {
	defer resp.Body.Close()
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
		return fmt.Errorf("backend returned HTTP %d", resp.StatusCode)
	}
	return fmt.Errorf("backend: %s", errResp.Error)
}

// Apps fetches the full catalog.
func (c *Client) Apps(ctx context.Context) ([]App, error) {
	resp, err := c.get(ctx, "/api/apps")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}
	var apps []App
	if err := json.NewDecoder(resp.Body).Decode(&apps); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return apps, nil
}

// AddApp registers a new catalog entry.
func (c *Client) AddApp(ctx context.Context, req AddAppRequest) (*App, error) {
	resp, err := c.post(ctx, "/api/apps", req, c.httpClient)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp)
	}
	var app App
	if err := json.NewDecoder(resp.Body).Decode(&app); err != nil {
		return nil, fmt.Errorf("decoding app: %w", err)
	}
	return &app, nil
}

// CheckInstallations asks the backend to re-verify which apps are installed.
func (c *Client) CheckInstallations(ctx context.Context) ([]CheckResult, error) {
	resp, err := c.get(ctx, "/api/check-installations")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}
	var results []CheckResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decoding check results: %w", err)
	}
	return results, nil
}

// Version fetches the installed/latest version pair for one app.
func (c *Client) Version(ctx context.Context, id int) (*VersionInfo, error) {
	resp, err := c.get(ctx, fmt.Sprintf("/api/version/%d", id))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}
	var info VersionInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decoding version info: %w", err)
	}
	return &info, nil
}

// Install runs a blocking install and returns its final result. The request
// stays open for the duration of the install, so callers should bound it
// with the context rather than relying on the shared request timeout.
func (c *Client) Install(ctx context.Context, id int) (*InstallResult, error) {
	resp, err := c.post(ctx, fmt.Sprintf("/api/install/%d", id), nil, c.streamClient)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}
	var result InstallResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding install result: %w", err)
	}
	return &result, nil
}

// Open launches an installed app on the agent host.
func (c *Client) Open(ctx context.Context, id int) (*OpenResult, error) {
	resp, err := c.post(ctx, fmt.Sprintf("/api/open/%d", id), nil, c.httpClient)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var result OpenResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("backend returned HTTP %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("decoding open result: %w", err)
	}
	return &result, nil
}

// Health checks whether the backend is reachable and healthy.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.get(ctx, "/api/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend returned HTTP %d", resp.StatusCode)
	}
	return nil
}
