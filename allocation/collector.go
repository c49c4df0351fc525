// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Collector acquires the raw metrics payload. The browser-automation
// scraper lives behind this boundary so the rest of the system never
// touches its brittleness.
type Collector interface {
	Collect(ctx context.Context) (RawMetrics, error)
}

// HTTPCollector fetches raw metrics from the external scraper service.
type HTTPCollector struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPCollector(baseURL string) *HTTPCollector {
	return &HTTPCollector{
		BaseURL: strings.TrimRight(baseURL, "/"),
		// The scrape behind this endpoint can take minutes.
		Client: &http.Client{Timeout: 5 * time.Minute},
	}
}

func (c *HTTPCollector) Collect(ctx context.Context) (RawMetrics, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/metrics", nil)
	if err != nil {
		return RawMetrics{}, fmt.Errorf("failed to build collector request: %w", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return RawMetrics{}, fmt.Errorf("collector request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return RawMetrics{}, fmt.Errorf("collector returned status %d", resp.StatusCode)
	}

	var metrics RawMetrics
	if err := json.NewDecoder(resp.Body).Decode(&metrics); err != nil {
		return RawMetrics{}, fmt.Errorf("failed to decode collector payload: %w", err)
	}
	return metrics, nil
}
