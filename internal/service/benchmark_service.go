package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ba3ai/clarus-backend/internal/market"
	"github.com/ba3ai/clarus-backend/internal/model"
	"github.com/ba3ai/clarus-backend/internal/repository"
)

// BenchmarkService maintains the local cache of market benchmark ROI series
// and serves range reads from it.
//
// Refreshes are versioned with a monotonically increasing request id. A
// refresh that finishes after a newer refresh for the same symbol has
// started is discarded instead of committed (last-request-wins; in-flight
// requests are not cancelled). This keeps a slow, stale fetch from
// overwriting the result of a newer one.
type BenchmarkService struct {
	benchmarkRepo *repository.BenchmarkRepository
	client        market.Client

	requestSeq atomic.Uint64
	// per-symbol refresh state, compared at resolution time
	symbols map[string]*symbolRefreshState
}

// symbolRefreshState tracks the newest refresh id for one symbol. commitMu
// serializes the id recheck with the cache write, so a stale result cannot
// slip in between a newer refresh's id bump and its commit.
type symbolRefreshState struct {
	latest   atomic.Uint64
	commitMu sync.Mutex
}

// NewBenchmarkService creates a new BenchmarkService for the given symbols.
func NewBenchmarkService(benchmarkRepo *repository.BenchmarkRepository, client market.Client, symbols []string) *BenchmarkService {
	states := make(map[string]*symbolRefreshState, len(symbols))
	for _, symbol := range symbols {
		states[symbol] = &symbolRefreshState{}
	}
	return &BenchmarkService{
		benchmarkRepo: benchmarkRepo,
		client:        client,
		symbols:       states,
	}
}

// Series reads the cached monthly ROI series for a symbol over the inclusive
// [from, to] month-key range.
func (s *BenchmarkService) Series(symbol, from, to string) ([]model.BenchmarkPoint, error) {
	return s.benchmarkRepo.GetSeries(symbol, from, to)
}

// Refresh fetches the benchmark series for a symbol over [from, to] and
// commits it to the cache, unless a newer refresh for the same symbol
// started while this one was in flight, in which case the result is
// discarded.
func (s *BenchmarkService) Refresh(ctx context.Context, symbol string, from, to time.Time) error {
	state, ok := s.symbols[symbol]
	if !ok {
		return fmt.Errorf("unknown benchmark symbol: %s", symbol)
	}

	id := s.requestSeq.Add(1)
	state.latest.Store(id)

	returns, err := s.client.MonthlyROI(ctx, symbol, from, to)
	if err != nil {
		return fmt.Errorf("failed to fetch benchmark series for %s: %w", symbol, err)
	}

	points := make([]model.BenchmarkPoint, len(returns))
	for i, r := range returns {
		points[i] = model.BenchmarkPoint{
			Symbol: symbol,
			Month:  r.Month,
			ROIPct: r.ROIPct,
		}
	}

	// The staleness check and the cache write must be one atomic step:
	// a newer refresh may bump the id and commit at any point while this
	// one is in flight.
	state.commitMu.Lock()
	defer state.commitMu.Unlock()

	if state.latest.Load() != id {
		log.Printf("Discarding stale benchmark refresh for %s (request %d superseded)", symbol, id)
		return nil
	}

	if err := s.benchmarkRepo.ReplaceSeries(symbol, points); err != nil {
		return err
	}

	return nil
}

// RefreshAll refreshes every configured symbol over the trailing five years.
// Intended as the scheduled job body; individual symbol failures are logged
// and do not abort the remaining symbols.
func (s *BenchmarkService) RefreshAll(ctx context.Context) {
	to := time.Now().UTC()
	from := to.AddDate(-5, 0, 0)

	for symbol := range s.symbols {
		if err := s.Refresh(ctx, symbol, from, to); err != nil {
			log.Printf("Benchmark refresh failed for %s: %v", symbol, err)
		}
	}
}
