// Package api is the HTTP consumer of the external data-library REST API.
// All endpoints are idempotent reads; in-flight requests are never aborted,
// superseded responses are discarded by the query controller instead.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rebeliceyang/datadeck/internal/models"
)

// ErrNoBaseURL is returned when the API base URL is not configured. Every
// fetch is fatal without it.
var ErrNoBaseURL = errors.New("api base url is not configured")

// StatusError is a non-2xx response. The body text becomes the visible
// reason in the error overlay.
type StatusError struct {
	Endpoint string
	Status   int
	Reason   string
}

func (e *StatusError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("api %s returned status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("api %s returned status %d: %s", e.Endpoint, e.Status, e.Reason)
}

// ListFetcher is the read surface list views need. Implemented by *Client.
type ListFetcher interface {
	FetchList(ctx context.Context, endpoint string, params url.Values) (*models.ListPage, error)
}

var _ ListFetcher = (*Client)(nil)

// Client talks to the data-library HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	token     string
}

const defaultUserAgent = "datadeck/0.1"

// maxReasonLength caps how much of an error body ends up in a message.
const maxReasonLength = 200

// NewClient builds a Client for the given base URL. The token is optional
// and sent as a bearer credential when present.
func NewClient(baseURL, token string) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, ErrNoBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return &Client{
		baseURL: u,
		// No client-side timeout: a hung request leaves the view refetching
		// until it resolves, matching the controller's ordering model.
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		token:     token,
	}, nil
}

// FetchList retrieves one page of a list endpoint.
func (c *Client) FetchList(ctx context.Context, endpoint string, params url.Values) (*models.ListPage, error) {
	var payload models.ListPage
	rel := &url.URL{Path: endpoint, RawQuery: params.Encode()}
	if err := c.doURL(ctx, rel, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchSummary retrieves a flat summary object (e.g. /dashboard/summary).
func (c *Client) FetchSummary(ctx context.Context, endpoint string) (map[string]any, error) {
	var payload map[string]any
	rel := &url.URL{Path: endpoint}
	if err := c.doURL(ctx, rel, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// SampleRecord fetches a single record from a list endpoint. Column
// discovery uses it to learn field keys absent from the static catalog.
// A nil record with nil error means the endpoint is empty.
func (c *Client) SampleRecord(ctx context.Context, endpoint string) (models.Record, error) {
	params := url.Values{}
	params.Set("page", "1")
	params.Set("limit", "1")
	page, err := c.FetchList(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	if len(page.Data) == 0 {
		return nil, nil
	}
	return page.Data[0], nil
}

func (c *Client) doURL(ctx context.Context, rel *url.URL, dest any) error {
	if c == nil {
		return ErrNoBaseURL
	}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Endpoint: rel.Path,
			Status:   resp.StatusCode,
			Reason:   readReason(resp.Body),
		}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func readReason(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxReasonLength))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}
