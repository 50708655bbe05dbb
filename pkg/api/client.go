package api

// EXCHANGE RATE API CLIENT

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type Client struct {
	rateURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// RateResponse mirrors the published exchange-rate document:
// {"base":"JPY","rates":{"USD":147.2,"GBP":186.5}}.
type RateResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// NewClient creates a rate API client. Pass a nil httpClient to get a
// default one with a 30s timeout; tests inject their own transport.
func NewClient(rateURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		rateURL:    rateURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// FetchRates downloads the current exchange-rate document.
func (c *Client) FetchRates(ctx context.Context) (*RateResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.rateURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var rates RateResponse
	if err := json.NewDecoder(resp.Body).Decode(&rates); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	c.logger.Debug("Fetched exchange rates",
		zap.String("base", rates.Base),
		zap.Int("count", len(rates.Rates)))

	return &rates, nil
}
