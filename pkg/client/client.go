// Package client implements a Go client for the NILU air quality API.
//
// See https://api.nilu.no/ for the upstream API documentation. All data
// is request scoped: every operation performs a single blocking GET and
// hands the decoded rows back to the caller.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/luftdata/nilu/pkg/table"
	"github.com/luftdata/nilu/pkg/version"
)

// DefaultBaseURL is the root of the public NILU API.
const DefaultBaseURL = "https://api.nilu.no"

// Client talks to the NILU API. The zero configuration targets the
// public endpoint; use options to point it elsewhere or to supply a
// custom HTTP client with timeouts or transport settings.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.SugaredLogger
}

type Option func(*Client)

// WithBaseURL overrides the API root, e.g. to target a mock server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithLogger attaches a logger used for request-level debug output.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(options ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		client:  &http.Client{},
		logger:  zap.NewNop().Sugar(),
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// StatusError is returned for any non-2xx response. It carries the
// status and body verbatim; the client never retries and never
// translates transport failures.
type StatusError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response status: %s", e.Status)
}

// get issues a single GET against the endpoint and decodes the JSON
// array response into a table.
func (c *Client) get(ctx context.Context, endpoint string, params []param) (table.Table, error) {
	url := c.baseURL + "/" + endpoint
	if query := encodeParams(params); query != "" {
		url += "?" + query
	}
	c.logger.Debugf("Requesting NILU endpoint: %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create request to NILU: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("nilu-go/%s", version.Version()))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to send request to NILU: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       body,
		}
	}

	var rows table.Table
	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&rows); err != nil {
		return nil, fmt.Errorf("unable to decode NILU response: %w", err)
	}

	return rows, nil
}
