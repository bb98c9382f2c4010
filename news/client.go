// Package news fetches recent headlines for a symbol from a NewsAPI-style
// "everything" endpoint.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/devanshm/stockdash/market"
)

// DefaultBaseURL is the public NewsAPI endpoint.
const DefaultBaseURL = "https://newsapi.org"

// DefaultPageSize matches the dashboard's five-headline display.
const DefaultPageSize = 5

// Client is an HTTP client for the headlines API.
type Client struct {
	baseURL    string
	apiKey     string
	pageSize   int
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the upstream base URL (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithPageSize overrides how many headlines are requested.
func WithPageSize(n int) Option {
	return func(c *Client) { c.pageSize = n }
}

// NewClient creates a headlines client. The API key is injected, never
// embedded.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		apiKey:   apiKey,
		pageSize: DefaultPageSize,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type articlesResponse struct {
	Status       string `json:"status"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Title string `json:"title"`
	} `json:"articles"`
}

// GetHeadlines returns the most recent headline titles for the symbol.
// Regional suffixes are stripped before querying, so RELIANCE.NS and
// RELIANCE share news. An empty result means no news, not an error.
func (c *Client) GetHeadlines(ctx context.Context, symbol string) ([]string, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	params := url.Values{}
	params.Set("q", market.BaseSymbol(symbol)+" stock")
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", fmt.Sprintf("%d", c.pageSize))
	params.Set("apiKey", c.apiKey)

	apiURL := fmt.Sprintf("%s/v2/everything?%s", c.baseURL, params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("news API error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp articlesResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	headlines := make([]string, 0, len(apiResp.Articles))
	for _, a := range apiResp.Articles {
		if a.Title != "" {
			headlines = append(headlines, a.Title)
		}
	}
	return headlines, nil
}
