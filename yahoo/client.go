// Package yahoo fetches historical close-price series from a Yahoo Finance
// style v8 chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/devanshm/stockdash/market"
)

// DefaultBaseURL is the public Yahoo Finance chart endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// defaultUserAgent is sent with every request; the upstream rejects requests
// without a browser-like agent.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// ErrRateLimited is returned when the upstream answers 429.
var ErrRateLimited = errors.New("quote source rate limit exceeded")

// Client is an HTTP client for the chart API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the upstream base URL (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTimeout overrides the HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a chart API client with a 30 second timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: defaultUserAgent,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// chartResponse mirrors the v8 chart API response shape. Close prices are
// pointers because the upstream emits JSON nulls for missing candles.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// GetChart fetches the close-price series for symbol over the given range.
// An empty series means the upstream has no data for that symbol/range; it
// is not an error.
func (c *Client) GetChart(ctx context.Context, symbol string, rng market.Range) (market.Series, error) {
	if !rng.Valid() {
		return nil, fmt.Errorf("invalid range %q", rng)
	}
	return c.GetWindow(ctx, symbol, rng.Period(), rng.Interval())
}

// GetWindow fetches a series for an explicit upstream period/interval pair.
// The comparison view uses this directly with its fixed 5d/1h window.
func (c *Client) GetWindow(ctx context.Context, symbol, period, interval string) (market.Series, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	params := url.Values{}
	params.Set("interval", interval)
	params.Set("range", period)

	apiURL := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("chart API error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if apiResp.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error: %s: %s",
			apiResp.Chart.Error.Code, apiResp.Chart.Error.Description)
	}
	if len(apiResp.Chart.Result) == 0 {
		return market.Series{}, nil
	}

	result := apiResp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return market.Series{}, nil
	}
	closes := result.Indicators.Quote[0].Close

	series := make(market.Series, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil || *closes[i] <= 0 {
			continue
		}
		series = append(series, market.Quote{
			Time:  time.Unix(ts, 0).UTC(),
			Price: *closes[i],
		})
	}

	return series, nil
}

// HasData reports whether the symbol has any recent daily history. Used to
// probe NSE/BSE listings during regional symbol resolution.
func (c *Client) HasData(ctx context.Context, symbol string) (bool, error) {
	series, err := c.GetChart(ctx, symbol, market.Range1D)
	if err != nil {
		return false, err
	}
	return !series.Empty(), nil
}
