// Package seriesapi implements domain.SeriesSource against the upstream
// climate-series HTTP API.
package seriesapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/climate-forecast/internal/domain"
)

// Client fetches the historical series from a JSON endpoint returning an
// array of {year, annual_mean, five_year_smooth} objects.
type Client struct {
	httpClient *http.Client
	url        string
	logger     *slog.Logger
}

// NewClient creates a series API client.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		logger:     logger,
	}
}

// FetchSeries implements domain.SeriesSource.
func (c *Client) FetchSeries(ctx context.Context) ([]domain.HistoricalRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("series request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("series API error: status %d: %s", resp.StatusCode, body)
	}

	var records []domain.HistoricalRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	c.logger.Debug("series fetched from upstream", "records", len(records))
	return records, nil
}
