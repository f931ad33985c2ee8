// Package vps fetches the remote Virtual Pinball Spreadsheet resources.
package vps

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Client is the narrow remote-fetch contract the sync layer depends on.
type Client interface {
	// FetchLastUpdated returns the remote publish timestamp in epoch
	// milliseconds.
	FetchLastUpdated(ctx context.Context) (int64, error)
	// FetchLookupTable returns the raw puplookup.csv bytes.
	FetchLookupTable(ctx context.Context) ([]byte, error)
	// FetchDatabase returns the raw vpsdb.json bytes.
	FetchDatabase(ctx context.Context) ([]byte, error)
}

// HTTPClient fetches the VPS GitHub Pages endpoints over HTTP.
type HTTPClient struct {
	http           *http.Client
	lastUpdatedURL string
	lookupURL      string
	databaseURL    string
}

// NewHTTPClient creates a client with a shared request timeout.
func NewHTTPClient(timeout time.Duration, lastUpdatedURL, lookupURL, databaseURL string) *HTTPClient {
	return &HTTPClient{
		http:           &http.Client{Timeout: timeout},
		lastUpdatedURL: lastUpdatedURL,
		lookupURL:      lookupURL,
		databaseURL:    databaseURL,
	}
}

func (c *HTTPClient) FetchLastUpdated(ctx context.Context) (int64, error) {
	body, err := c.get(ctx, c.lastUpdatedURL)
	if err != nil {
		return 0, err
	}
	epoch, err := strconv.ParseInt(strings.TrimSpace(string(body)), 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "parsing remote lastUpdated timestamp")
	}
	return epoch, nil
}

func (c *HTTPClient) FetchLookupTable(ctx context.Context) ([]byte, error) {
	return c.get(ctx, c.lookupURL)
}

func (c *HTTPClient) FetchDatabase(ctx context.Context) ([]byte, error) {
	return c.get(ctx, c.databaseURL)
}

func (c *HTTPClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "building request for %s", url)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading response from %s", url)
	}
	return body, nil
}
