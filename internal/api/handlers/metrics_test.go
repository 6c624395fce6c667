package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	custommiddleware "github.com/ba3ai/clarus-backend/internal/api/middleware"
	"github.com/ba3ai/clarus-backend/internal/model"
	"github.com/ba3ai/clarus-backend/internal/repository"
	"github.com/ba3ai/clarus-backend/internal/service"
	"github.com/ba3ai/clarus-backend/internal/testutil"
)

// withEffectiveID scopes a request to an investor the way the identity and
// view-as middleware chain would.
func withEffectiveID(req *http.Request, investorID string) *http.Request {
	ctx := context.WithValue(req.Context(), custommiddleware.CallerIDKey, investorID)
	ctx = context.WithValue(ctx, custommiddleware.EffectiveIDKey, investorID)
	return req.WithContext(ctx)
}

func setupMetricsHandler(t *testing.T, db *sql.DB, client *testutil.MockMarketClient) *MetricsHandler {
	t.Helper()

	benchmarkService := service.NewBenchmarkService(
		repository.NewBenchmarkRepository(db), client, []string{"SPY"},
	)
	return NewMetricsHandler(
		testutil.NewTestOverviewService(t, db),
		testutil.NewTestMetricsService(t, db),
		testutil.NewTestGroupService(t, db),
		benchmarkService,
		"SPY",
	)
}

func TestMetricsHandler_InvestorOverview(t *testing.T) {
	t.Run("returns the investor's own overview", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := setupMetricsHandler(t, db, testutil.NewMockMarketClient())

		investor := testutil.NewInvestor().WithName("Solo").Build(t, db)
		testutil.NewPeriodBalance(investor.ID, "2024-01").WithBalances(1000, 1100).Build(t, db)

		req := withEffectiveID(httptest.NewRequest(http.MethodGet, "/api/metrics/investor-overview", nil), investor.ID)
		w := httptest.NewRecorder()

		handler.InvestorOverview(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var overview model.InvestorOverview
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&overview)

		if overview.InvestorName != "Solo" {
			t.Errorf("Expected investor name Solo, got %q", overview.InvestorName)
		}
		if overview.CurrentValue != 1100 {
			t.Errorf("Expected current value 1100, got %f", overview.CurrentValue)
		}
	})

	t.Run("dispatches to the group aggregate for a group admin", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := setupMetricsHandler(t, db, testutil.NewMockMarketClient())

		admin := testutil.NewInvestor().WithName("Admin").Build(t, db)
		m1 := testutil.NewInvestor().WithName("Alice").Build(t, db)
		m2 := testutil.NewInvestor().WithName("Bob").Build(t, db)
		testutil.CreateGroupMember(t, db, admin.ID, m1.ID)
		testutil.CreateGroupMember(t, db, admin.ID, m2.ID)
		testutil.NewPeriodBalance(m1.ID, "2024-01").WithBalances(100, 150).Build(t, db)
		testutil.NewPeriodBalance(m2.ID, "2024-01").WithBalances(200, 180).Build(t, db)

		req := withEffectiveID(httptest.NewRequest(http.MethodGet, "/api/metrics/investor-overview", nil), admin.ID)
		w := httptest.NewRecorder()

		handler.InvestorOverview(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var overview model.InvestorOverview
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&overview)

		if overview.InvestorName != "Alice + 1 more" {
			t.Errorf("Expected aggregate display name, got %q", overview.InvestorName)
		}
		if overview.InitialValue != 300 || overview.CurrentValue != 330 {
			t.Errorf("Expected summed balances 300/330, got %f/%f", overview.InitialValue, overview.CurrentValue)
		}
	})

	t.Run("returns 400 for an inverted month range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := setupMetricsHandler(t, db, testutil.NewMockMarketClient())

		investor := testutil.NewInvestor().Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/metrics/investor-overview", map[string]string{
			"from": "2024-06",
			"to":   "2024-01",
		})
		req = withEffectiveID(req, investor.ID)
		w := httptest.NewRecorder()

		handler.InvestorOverview(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for a malformed month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := setupMetricsHandler(t, db, testutil.NewMockMarketClient())

		investor := testutil.NewInvestor().Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/metrics/investor-overview", map[string]string{
			"from": "June 2024",
		})
		req = withEffectiveID(req, investor.ID)
		w := httptest.NewRecorder()

		handler.InvestorOverview(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 for an unknown investor", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := setupMetricsHandler(t, db, testutil.NewMockMarketClient())

		req := withEffectiveID(httptest.NewRequest(http.MethodGet, "/api/metrics/investor-overview", nil), testutil.MakeID())
		w := httptest.NewRecorder()

		handler.InvestorOverview(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestMetricsHandler_Allocation(t *testing.T) {
	t.Run("returns scaled slices for the month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := setupMetricsHandler(t, db, testutil.NewMockMarketClient())

		investor := testutil.NewInvestor().Build(t, db)
		testutil.NewPeriodBalance(investor.ID, "2024-01").WithBalances(1000, 2000).Build(t, db)
		testutil.CreateAllocation(t, db, investor.ID, "2024-01", "Equities", 75)
		testutil.CreateAllocation(t, db, investor.ID, "2024-01", "Bonds", 25)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/metrics/allocation", map[string]string{
			"month": "2024-01",
		})
		req = withEffectiveID(req, investor.ID)
		w := httptest.NewRecorder()

		handler.Allocation(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var slices []model.AllocationSlice
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&slices)

		if len(slices) != 2 {
			t.Fatalf("Expected 2 slices, got %d", len(slices))
		}
		byCategory := map[string]float64{}
		for _, s := range slices {
			byCategory[s.Category] = s.Value
		}
		if byCategory["Equities"] != 1500 || byCategory["Bonds"] != 500 {
			t.Errorf("Expected values scaled against the current total, got %+v", byCategory)
		}
	})

	t.Run("returns 400 when the month is missing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := setupMetricsHandler(t, db, testutil.NewMockMarketClient())

		investor := testutil.NewInvestor().Build(t, db)

		req := withEffectiveID(httptest.NewRequest(http.MethodGet, "/api/metrics/allocation", nil), investor.ID)
		w := httptest.NewRecorder()

		handler.Allocation(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestMetricsHandler_ROIComparison(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := setupMetricsHandler(t, db, testutil.NewMockMarketClient())

	investor := testutil.NewInvestor().Build(t, db)
	testutil.NewPeriodBalance(investor.ID, "2023-12").WithBalances(1000, 1000).Build(t, db)
	testutil.NewPeriodBalance(investor.ID, "2024-01").WithBalances(1000, 1100).Build(t, db)
	testutil.CreateBenchmarkMonth(t, db, "SPY", "2024-01", 2.5)
	testutil.CreateBenchmarkMonth(t, db, "SPY", "2024-02", -1.0)

	req := withEffectiveID(httptest.NewRequest(http.MethodGet, "/api/metrics/roi_comparison", nil), investor.ID)
	w := httptest.NewRecorder()

	handler.ROIComparison(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var rows []model.ROIComparisonRow
	//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
	json.NewDecoder(w.Body).Decode(&rows)

	byMonth := map[string]model.ROIComparisonRow{}
	for _, row := range rows {
		byMonth[row.Month] = row
	}

	jan := byMonth["2024-01"]
	if jan.Portfolio == nil || *jan.Portfolio != 10 {
		t.Errorf("Expected portfolio ROI 10%% for January, got %v", jan.Portfolio)
	}
	if jan.Benchmark == nil || *jan.Benchmark != 2.5 {
		t.Errorf("Expected benchmark ROI 2.5%% for January, got %v", jan.Benchmark)
	}

	feb := byMonth["2024-02"]
	if feb.Portfolio != nil {
		t.Errorf("Expected no portfolio side for February, got %v", *feb.Portfolio)
	}
	if feb.Benchmark == nil || *feb.Benchmark != -1.0 {
		t.Errorf("Expected benchmark ROI -1%% for February, got %v", feb.Benchmark)
	}
}

func TestMetricsHandler_RefreshBenchmark(t *testing.T) {
	t.Run("returns 202 on a successful refresh", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := setupMetricsHandler(t, db, testutil.NewMockMarketClient())

		req := httptest.NewRequest(http.MethodPost, "/api/market/refresh", nil)
		w := httptest.NewRecorder()

		handler.RefreshBenchmark(w, req)

		if w.Code != http.StatusAccepted {
			t.Errorf("Expected 202, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 502 when the provider fetch fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		client := testutil.NewMockMarketClient().WithError(errors.New("provider unavailable"))
		handler := setupMetricsHandler(t, db, client)

		req := httptest.NewRequest(http.MethodPost, "/api/market/refresh", nil)
		w := httptest.NewRecorder()

		handler.RefreshBenchmark(w, req)

		if w.Code != http.StatusBadGateway {
			t.Errorf("Expected 502, got %d: %s", w.Code, w.Body.String())
		}
	})
}
