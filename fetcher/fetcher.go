// Package fetcher reads incidents and resources from the upstream incident API.
package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-crisismap/types"
)

const snippetLen = 200

// maxBodyBytes caps how much of an upstream response is read.
var maxBodyBytes int64 = 32 << 20

var ErrBodyTooLarge = errors.New("response body too large")

// Client talks to the incident backend at BaseURL.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient returns a client for baseURL. A zero timeout means requests are
// bounded only by their context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// FetchIncidents retrieves GET /api/incidents. The result is nil when the
// payload carries no incidents key.
func (c *Client) FetchIncidents(ctx context.Context) ([]types.Incident, error) {
	var payload struct {
		Incidents []types.Incident `json:"incidents"`
	}
	if err := c.getJSON(ctx, "/api/incidents", &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch incidents: %w", err)
	}
	return payload.Incidents, nil
}

// FetchResources retrieves GET /api/resources.
func (c *Client) FetchResources(ctx context.Context) ([]types.Resource, error) {
	var payload struct {
		Resources []types.Resource `json:"resources"`
	}
	if err := c.getJSON(ctx, "/api/resources", &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch resources: %w", err)
	}
	return payload.Resources, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > maxBodyBytes {
		return fmt.Errorf("%w: over %d bytes", ErrBodyTooLarge, maxBodyBytes)
	}

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode, Body: snippet(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

// StatusError is returned for any non-200 response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API returned non-200 status: %d: %s", e.Code, e.Body)
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > snippetLen {
		s = s[:snippetLen] + "..."
	}
	return s
}
