// Package cloudflare is a minimal Cloudflare API client for tunnel and DNS
// record management.
package cloudflare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultBaseURL = "https://api.cloudflare.com/client/v4"

// Client talks to the Cloudflare v4 API with a bearer token.
type Client struct {
	apiToken   string
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL (used in tests).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new Cloudflare API client.
func NewClient(apiToken string, opts ...ClientOption) *Client {
	c := &Client{
		apiToken:   apiToken,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type apiResponse struct {
	Success    bool            `json:"success"`
	Errors     []apiError      `json:"errors"`
	Result     json.RawMessage `json:"result"`
	ResultInfo resultInfo      `json:"result_info"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type resultInfo struct {
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
}

type zoneResult struct {
	ID string `json:"id"`
}

// GetZoneID returns the zone ID for the given domain.
func (c *Client) GetZoneID(ctx context.Context, domain string) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/zones?name=%s", domain), nil)
	if err != nil {
		return "", fmt.Errorf("get zone ID: %w", err)
	}

	var zones []zoneResult
	if err := json.Unmarshal(resp.Result, &zones); err != nil {
		return "", fmt.Errorf("parse zones: %w", err)
	}
	if len(zones) == 0 {
		return "", fmt.Errorf("no zone found for domain %s", domain)
	}
	return zones[0].ID, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*apiResponse, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var envelope apiResponse
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("parse response: %w (status %d)", err, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !envelope.Success {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, errorSummary(envelope.Errors))
	}
	return &envelope, nil
}

// errorSummary joins API error messages without echoing the whole payload.
func errorSummary(errs []apiError) string {
	if len(errs) == 0 {
		return "unknown error"
	}
	msg := ""
	for i, e := range errs {
		if i > 0 {
			msg += "; "
		}
		msg += fmt.Sprintf("%d: %s", e.Code, e.Message)
	}
	return msg
}
