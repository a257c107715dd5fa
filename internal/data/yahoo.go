package data

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"invest-sim/internal/model"
)

// YahooClient fetches historical prices from the Yahoo Finance chart API.
// The endpoint needs no API key; it only insists on a browser-ish User-Agent.
type YahooClient struct {
	BaseURL string
	Client  *http.Client
}

// NewYahooClient creates a chart-API client. If baseURL is empty, defaults to
// "https://query1.finance.yahoo.com".
func NewYahooClient(baseURL string, timeout time.Duration) *YahooClient {
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &YahooClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

// ProviderError represents an error from the market-data provider. The
// engine never retries these; they propagate to the caller unchanged.
type ProviderError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string
}

func (e *ProviderError) Error() string { return e.Message }

// Provider error codes.
const (
	CodeTickerNotFound = "TICKER_NOT_FOUND"
	CodeNoData         = "NO_DATA"
	CodeRateLimited    = "RATE_LIMIT_EXCEEDED"
	CodeAPIError       = "API_ERROR"
)

// chartResponse matches the JSON shape of /v8/finance/chart/{symbol}.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency string `json:"currency"`
				Symbol   string `json:"symbol"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []*float64 `json:"open"`
					High  []*float64 `json:"high"`
					Low   []*float64 `json:"low"`
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

// FetchHistory fetches the daily price series for a ticker over a period
// token ("6mo", "1y", "2y", "5y", "10y", "ytd", "max"). Responses may be
// served from the development cache; concurrent fetches for the same
// (ticker, period) key collapse into a single upstream request.
func (c *YahooClient) FetchHistory(ticker, period string) (*model.History, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}
	if !model.ValidPeriod(period) {
		return nil, fmt.Errorf("unsupported period %q (want one of %s)", period, strings.Join(model.Periods, ", "))
	}

	cache := GetCache()
	key := HistoryCacheKey(ticker, period)
	if cache != nil {
		if cached, found := cache.Get(key); found {
			log.Printf("[Yahoo] Cache hit: %d bars (ticker=%s, period=%s)", len(cached.Bars), ticker, period)
			return cached, nil
		}
	}

	v, err, _ := fetchGroup.Do(key, func() (any, error) {
		return c.fetchHistory(ticker, period)
	})
	if err != nil {
		return nil, err
	}
	hist := v.(*model.History)

	if cache != nil {
		cache.Set(key, hist)
		log.Printf("[Yahoo] Cached response (ticker=%s, period=%s)", ticker, period)
	}
	return hist, nil
}

func (c *YahooClient) fetchHistory(ticker, period string) (*model.History, error) {
	u, err := url.Parse(c.BaseURL + "/v8/finance/chart/" + url.PathEscape(ticker))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("range", period)
	q.Set("interval", "1d")
	q.Set("events", "history")
	u.RawQuery = q.Encode()

	log.Printf("[Yahoo] Request: GET %s (ticker=%s, period=%s)", u.Path, ticker, period)

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; invest-sim)")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(start)
	if err != nil {
		log.Printf("[Yahoo] Request failed: %v (duration: %v)", err, duration)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[Yahoo] Response: %d %s (duration: %v, ticker=%s)", resp.StatusCode, resp.Status, duration, ticker)

	switch resp.StatusCode {
	case http.StatusOK:
		// Success, continue.
	case http.StatusNotFound:
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Code:       CodeTickerNotFound,
			Message:    fmt.Sprintf("ticker %s not found; check the symbol or replace it", ticker),
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Code:       CodeRateLimited,
			Message:    fmt.Sprintf("rate limit exceeded. Retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Code:       CodeAPIError,
			Message:    fmt.Sprintf("provider returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var cr chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if cr.Chart.Error != nil {
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Code:       CodeTickerNotFound,
			Message:    fmt.Sprintf("ticker %s: %s", ticker, cr.Chart.Error.Description),
		}
	}
	if len(cr.Chart.Result) == 0 {
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Code:       CodeNoData,
			Message:    fmt.Sprintf("provider returned no result for %s", ticker),
		}
	}

	res := cr.Chart.Result[0]
	if len(res.Indicators.Quote) == 0 || len(res.Timestamp) == 0 {
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Code:       CodeNoData,
			Message:    fmt.Sprintf("provider returned an empty series for %s (period=%s)", ticker, period),
		}
	}
	quote := res.Indicators.Quote[0]

	bars := make([]model.PriceBar, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		// Bars with a null close are holidays/halts; skip them.
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		bar := model.PriceBar{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			bar.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			bar.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			bar.Low = *quote.Low[i]
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return nil, &ProviderError{
			StatusCode: resp.StatusCode,
			Code:       CodeNoData,
			Message:    fmt.Sprintf("provider returned an empty series for %s (period=%s)", ticker, period),
		}
	}

	log.Printf("[Yahoo] Success: received %d bars (ticker=%s, currency=%s)", len(bars), ticker, res.Meta.Currency)

	return &model.History{
		Ticker:   ticker,
		Currency: res.Meta.Currency,
		Bars:     bars,
	}, nil
}

// FetchMonthly fetches the series and resamples it to month-end closes, the
// granularity the monthly strategies expect. The trailing bar is the current,
// still-open month and is dropped.
func (c *YahooClient) FetchMonthly(ticker, period string) (*model.History, error) {
	hist, err := c.FetchHistory(ticker, period)
	if err != nil {
		return nil, err
	}
	monthly := model.ResampleMonthly(hist.Bars)
	if len(monthly) > 0 {
		monthly = monthly[:len(monthly)-1]
	}
	if len(monthly) == 0 {
		return nil, &ProviderError{
			Code:    CodeNoData,
			Message: fmt.Sprintf("no complete months of data for %s (period=%s)", ticker, period),
		}
	}
	return &model.History{Ticker: hist.Ticker, Currency: hist.Currency, Bars: monthly}, nil
}
