package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/ba3ai/clarus-backend/internal/market"
)

// MockMarketClient is a mock implementation of market.Client for testing.
// It returns predefined monthly returns instead of making actual API calls.
type MockMarketClient struct {
	// MockReturns is the series to return from MonthlyROI
	MockReturns []market.MonthlyReturn
	// MockError is the error to return from MonthlyROI
	MockError error
	// OnQuery, when set, overrides MockReturns/MockError. It receives the
	// 1-based call number, letting tests script per-call behavior such as
	// holding one fetch open while another completes.
	OnQuery func(call int) ([]market.MonthlyReturn, error)

	mu         sync.Mutex
	queryCount int
}

// NewMockMarketClient creates a new mock market client with a small default series.
func NewMockMarketClient() *MockMarketClient {
	return &MockMarketClient{
		MockReturns: []market.MonthlyReturn{
			{Month: "2024-01", ROIPct: 1.5},
			{Month: "2024-02", ROIPct: -0.8},
			{Month: "2024-03", ROIPct: 2.1},
		},
	}
}

// MonthlyROI returns the configured series and error.
func (m *MockMarketClient) MonthlyROI(_ context.Context, _ string, _, _ time.Time) ([]market.MonthlyReturn, error) {
	m.mu.Lock()
	m.queryCount++
	call := m.queryCount
	hook := m.OnQuery
	m.mu.Unlock()

	if hook != nil {
		return hook(call)
	}
	if m.MockError != nil {
		return nil, m.MockError
	}
	return m.MockReturns, nil
}

// QueryCount reports how many times MonthlyROI was called.
func (m *MockMarketClient) QueryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queryCount
}

// WithReturns configures the mock series.
func (m *MockMarketClient) WithReturns(returns []market.MonthlyReturn) *MockMarketClient {
	m.MockReturns = returns
	return m
}

// WithError configures the mock to return the specified error.
func (m *MockMarketClient) WithError(err error) *MockMarketClient {
	m.MockError = err
	return m
}
