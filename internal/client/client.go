// Package client talks to the events API on behalf of the CLI.
//
// Browse is the presentation entry point: when the API cannot be reached or
// reports failure, it logs a warning and serves the bundled placeholder
// events instead so the listing never comes back empty-handed.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/event"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/logger"
	"github.com/blink-new/gurgaon-delhi-intellectual-events-finder-rb7rz076/internal/service"
)

// Timeout bounds one API request
const Timeout = 30 * time.Second

// Client is an HTTP client for the retrieval and ingestion endpoints
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the API rooted at baseURL
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http: &http.Client{
			Timeout: Timeout,
		},
	}
}

// eventsResponse is the retrieval envelope, success or failure
type eventsResponse struct {
	Success bool           `json:"success"`
	Events  []*event.Event `json:"events"`
	Count   int            `json:"count"`
	Error   string         `json:"error"`
}

// scrapeResponse is the ingestion envelope, success or failure
type scrapeResponse struct {
	service.Summary
	Error string `json:"error"`
}

// Events queries GET /get-events. A transport error, an undecodable body or
// success=false are all returned as errors.
func (c *Client) Events(ctx context.Context, params url.Values) ([]*event.Event, error) {
	endpoint := c.baseURL + "/get-events"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	var body eventsResponse
	if err := c.do(req, &body); err != nil {
		return nil, err
	}
	if !body.Success {
		return nil, fmt.Errorf("retrieval failed: %s", body.Error)
	}
	if body.Events == nil {
		body.Events = []*event.Event{}
	}

	return body.Events, nil
}

// Browse queries the API and falls back to the placeholder events on any
// failure. The boolean reports whether the placeholder was used.
func (c *Client) Browse(ctx context.Context, params url.Values) ([]*event.Event, bool) {
	events, err := c.Events(ctx, params)
	if err != nil {
		logger.Warn("API failed, using placeholder events", logger.Fields{
			"api_url": c.baseURL,
			"error":   err.Error(),
		})
		return Placeholder(), true
	}
	return events, false
}

// Scrape triggers POST /scrape-events and returns the ingestion summary
func (c *Client) Scrape(ctx context.Context) (*service.Summary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/scrape-events", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	var body scrapeResponse
	if err := c.do(req, &body); err != nil {
		return nil, err
	}
	if !body.Success {
		return nil, fmt.Errorf("scraping failed: %s", body.Error)
	}

	return &body.Summary, nil
}

// do sends req and decodes the JSON envelope. Failure envelopes arrive with
// 4xx/5xx statuses, so the body is decoded regardless of status and the
// status only matters when the body is not JSON.
func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
