package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"stockvalues/internal/provider"
)

// quoteRange is the lookback window requested for latest quotes. The last
// record inside it is the most recent trading day.
const quoteRange = "1mo"

// ChartResponse is the decoded answer of the chart endpoint.
//
//	{
//	  "chart": {
//	    "result": [{
//	      "meta": {"currency": "USD", "symbol": "AAPL"},
//	      "timestamp": [1700006400],
//	      "indicators": {"quote": [{"close": [189.5]}]}
//	    }],
//	    "error": null
//	  }
//	}
type ChartResponse struct {
	Chart Chart `json:"chart"`
}

// Chart is the top level container of a chart response.
type Chart struct {
	Result []ChartResult `json:"result"`
	Error  *APIError     `json:"error"`
}

// ChartResult holds the series for one symbol.
type ChartResult struct {
	Meta       Meta       `json:"meta"`
	Timestamp  []int64    `json:"timestamp"`
	Indicators Indicators `json:"indicators"`
}

// Meta describes the instrument.
type Meta struct {
	Currency string `json:"currency"`
	Symbol   string `json:"symbol"`
}

// Indicators holds the OHLCV arrays.
type Indicators struct {
	Quote []QuoteSeries `json:"quote"`
}

// QuoteSeries holds the close prices aligned with ChartResult.Timestamp.
// Entries are null for intervals without a trade.
type QuoteSeries struct {
	Close []*float64 `json:"close"`
}

// APIError is the error object Yahoo embeds in chart responses.
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// LastQuote returns the most recent record carrying a close price.
func (r *ChartResponse) LastQuote() (provider.Quote, error) {
	if r == nil || len(r.Chart.Result) == 0 {
		return provider.Quote{}, provider.ErrNoQuotes
	}
	res := r.Chart.Result[0]
	if len(res.Indicators.Quote) == 0 {
		return provider.Quote{}, provider.ErrNoQuotes
	}
	closes := res.Indicators.Quote[0].Close
	for i := min(len(closes), len(res.Timestamp)) - 1; i >= 0; i-- {
		if closes[i] == nil {
			continue
		}
		return provider.Quote{
			Symbol:    provider.Symbol(res.Meta.Symbol),
			Close:     *closes[i],
			Currency:  res.Meta.Currency,
			Timestamp: time.Unix(res.Timestamp[i], 0).UTC(),
		}, nil
	}
	return provider.Quote{}, provider.ErrNoQuotes
}

// GetLatestQuotes retrieves the chart for symbol at the given interval.
func (c *Client) GetLatestQuotes(ctx context.Context, symbol provider.Symbol, interval string) (*ChartResponse, error) {
	query := url.Values{}
	query.Set("interval", interval)
	query.Set("range", quoteRange)

	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(string(symbol)), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var chart ChartResponse
	decodeErr := json.Unmarshal(body, &chart)
	if decodeErr == nil && chart.Chart.Error != nil {
		return nil, chart.Chart.Error
	}

	switch res.StatusCode {
	case http.StatusOK:
		break

	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("unauthorized")

	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("rate limited")

	default:
		return nil, fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("decoding chart response: %w", decodeErr)
	}
	return &chart, nil
}

// FetchLatest implements provider.Provider.
func (c *Client) FetchLatest(ctx context.Context, symbol provider.Symbol, interval string) (provider.Response, error) {
	chart, err := c.GetLatestQuotes(ctx, symbol, interval)
	if err != nil {
		return nil, err
	}
	return chart, nil
}
