package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// nbuDateLayout is the compact date format expected by the NBU statistics API.
const nbuDateLayout = "20060102"

// Outgoing request budget shared by all lookups.
const (
	nbuRequestsPerSecond = 10
	nbuBurst             = 10
)

// RateRecord is a single entry of the provider response.
type RateRecord struct {
	Rate         decimal.Decimal `json:"rate"`
	CurrencyCode string          `json:"cc"`
	Name         string          `json:"txt"`
	ExchangeDate string          `json:"exchangedate"`
}

//go:generate mockgen -destination=../mocks/mock_exchange.go -package=mocks fopassistant/internal/exchange Provider

// Provider returns the official rate records of a currency on a date.
type Provider interface {
	FetchRates(ctx context.Context, currencyCode string, date time.Time) ([]RateRecord, error)
}

// NBUClient queries the National Bank of Ukraine exchange statistics endpoint.
type NBUClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewNBUClient(baseURL string, timeout time.Duration) *NBUClient {
	return &NBUClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(nbuRequestsPerSecond), nbuBurst),
	}
}

func (c *NBUClient) FetchRates(ctx context.Context, currencyCode string, date time.Time) ([]RateRecord, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("NBU request for %s not sent: %w", currencyCode, err)
	}

	query := url.Values{}
	query.Set("valcode", currencyCode)
	query.Set("date", date.Format(nbuDateLayout))
	query.Set("json", "")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build NBU request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call NBU API for %s: %w", currencyCode, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NBU API returned non-OK status %d for %s", resp.StatusCode, currencyCode)
	}

	var records []RateRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode NBU response for %s: %w", currencyCode, err)
	}
	return records, nil
}
