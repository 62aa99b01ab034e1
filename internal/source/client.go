// Package source fetches the photo list from the JSON endpoint.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/pictable/internal/domain"
)

const (
	// DefaultURL is the public photo listing endpoint
	DefaultURL = "https://jsonplaceholder.typicode.com/photos"

	defaultTimeout = 30 * time.Second
	userAgent      = "Pictable/1.0"
)

// Client implements domain.RecordSource over HTTP
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the given endpoint.
// A zero timeout uses the default.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// URL returns the endpoint this client reads from
func (c *Client) URL() string {
	return c.url
}

// FetchRecords performs one unauthenticated GET and decodes the record list
func (c *Client) FetchRecords(ctx context.Context) ([]domain.Record, error) {
	body, err := c.doRequest(ctx)
	if err != nil {
		return nil, err
	}

	var photos []photoDTO
	if err := json.Unmarshal(body, &photos); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}

	records := mapPhotos(photos, c.logger)
	c.logger.Info("fetched records", "count", len(records), "url", c.url)
	return records, nil
}

// doRequest performs the GET and returns the raw body of a 2xx response
func (c *Client) doRequest(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("source request", "method", http.MethodGet, "url", c.url)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("source request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrSourceUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("source request error", "status", resp.StatusCode, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: %d", domain.ErrUnexpectedStatus, resp.StatusCode)
	}

	c.logger.Debug("source response", "status", resp.StatusCode, "bytes", len(body), "elapsed", time.Since(start))
	return body, nil
}
