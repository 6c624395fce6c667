// Package market fetches benchmark price series from the market data
// provider's chart API and derives monthly ROI series from them.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the interface consumed by the benchmark service. It exists so
// tests can substitute a mock without making real API calls.
type Client interface {
	MonthlyROI(ctx context.Context, symbol string, from, to time.Time) ([]MonthlyReturn, error)
}

// DataClient provides methods for fetching benchmark price data from the
// market data provider. It wraps an HTTP client and derives month-over-month
// returns from monthly closing prices.
type DataClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewDataClient creates a new market data client against the given base URL.
func NewDataClient(baseURL string) *DataClient {
	return &DataClient{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// MonthlyROI fetches monthly closing prices for a symbol and derives the
// month-over-month ROI series covering the inclusive [from, to] month range.
//
// One extra month before the requested range is fetched so the first
// requested month has a prior close to compute its return against. Months
// whose close is missing from the provider response are skipped rather than
// reported as zero.
func (c *DataClient) MonthlyROI(ctx context.Context, symbol string, from, to time.Time) ([]MonthlyReturn, error) {
	// Need the close of the month before the range for the first return.
	fetchStart := from.AddDate(0, -1, 0)
	// period2 is exclusive; extend past the end of the last month.
	fetchEnd := to.AddDate(0, 1, 0)

	response, err := c.queryChart(ctx, symbol, fetchStart, fetchEnd)
	if err != nil {
		return nil, err
	}

	result := response.Chart.Result[0]
	if len(result.Timestamp) == 0 {
		return nil, fmt.Errorf("no price data returned for symbol %s", symbol)
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return nil, fmt.Errorf("no close prices returned for symbol %s", symbol)
	}
	if len(result.Indicators.Quote[0].Close) != len(result.Timestamp) {
		return nil, fmt.Errorf("mismatched data lengths for symbol %s", symbol)
	}

	// Last close seen per month, keyed by month, in timestamp order.
	type monthClose struct {
		month string
		close float64
	}
	closes := []monthClose{}
	for i, ts := range result.Timestamp {
		close := result.Indicators.Quote[0].Close[i]
		if close <= 0 {
			continue
		}
		month := time.Unix(ts, 0).UTC().Format("2006-01")
		if len(closes) > 0 && closes[len(closes)-1].month == month {
			closes[len(closes)-1].close = close
			continue
		}
		closes = append(closes, monthClose{month: month, close: close})
	}

	fromKey := from.UTC().Format("2006-01")
	toKey := to.UTC().Format("2006-01")

	returns := []MonthlyReturn{}
	for i := 1; i < len(closes); i++ {
		month := closes[i].month
		if month < fromKey || month > toKey {
			continue
		}
		prev := closes[i-1].close
		returns = append(returns, MonthlyReturn{
			Month:  month,
			ROIPct: (closes[i].close - prev) / prev * 100,
		})
	}

	return returns, nil
}

// queryChart executes the chart request and handles the common logic for
// reading the response, parsing JSON, and checking for provider errors.
func (c *DataClient) queryChart(ctx context.Context, symbol string, start, end time.Time) (Response, error) {
	url := fmt.Sprintf(
		"%s/v8/finance/chart/%s?interval=1mo&period1=%d&period2=%d",
		c.baseURL,
		symbol,
		start.Unix(),
		end.Unix(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("market data error: %s", *response.Chart.Error)
	}
	if len(response.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	return response, nil
}
