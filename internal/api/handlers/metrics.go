package handlers

import (
	"errors"
	"net/http"
	"time"

	custommiddleware "github.com/ba3ai/clarus-backend/internal/api/middleware"
	"github.com/ba3ai/clarus-backend/internal/api/response"
	"github.com/ba3ai/clarus-backend/internal/apperrors"
	"github.com/ba3ai/clarus-backend/internal/repository"
	"github.com/ba3ai/clarus-backend/internal/service"
	"github.com/ba3ai/clarus-backend/internal/validation"
)

// MetricsHandler handles the dashboard metric HTTP requests: the investor
// overview KPI block, the allocation breakdown, and the ROI series.
type MetricsHandler struct {
	overviewService  *service.OverviewService
	metricsService   *service.MetricsService
	groupService     *service.GroupService
	benchmarkService *service.BenchmarkService
	defaultSymbol    string
}

// NewMetricsHandler creates a new MetricsHandler
func NewMetricsHandler(
	overviewService *service.OverviewService,
	metricsService *service.MetricsService,
	groupService *service.GroupService,
	benchmarkService *service.BenchmarkService,
	defaultSymbol string,
) *MetricsHandler {
	return &MetricsHandler{
		overviewService:  overviewService,
		metricsService:   metricsService,
		groupService:     groupService,
		benchmarkService: benchmarkService,
		defaultSymbol:    defaultSymbol,
	}
}

// monthRange reads the optional from/to query parameters as YYYY-MM month
// keys. An absent from means all history; an absent to means through the
// current month.
func monthRange(r *http.Request) (time.Time, time.Time, error) {
	var from, to time.Time

	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := repository.ParseMonth(v)
		if err != nil {
			return from, to, err
		}
		from = parsed
	}

	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := repository.ParseMonth(v)
		if err != nil {
			return from, to, err
		}
		to = parsed
	} else {
		to = time.Now()
	}

	if !from.IsZero() && from.After(to) {
		return from, to, apperrors.ErrInvalidDateRange
	}

	return from, to, nil
}

// InvestorOverview handles GET requests for the dashboard KPI block scoped
// to the resolved view-as investor. When that investor administers a group
// the aggregate overview over its members is returned instead; a member
// that fails to resolve is skipped, never fatal.
//
// Endpoint: GET /api/metrics/investor-overview?from=YYYY-MM&to=YYYY-MM
// Response: 200 OK with InvestorOverview
// Error: 400 Bad Request if the month range is invalid
// Error: 404 Not Found if the investor does not exist
// Error: 500 Internal Server Error if computation fails
func (h *MetricsHandler) InvestorOverview(w http.ResponseWriter, r *http.Request) {
	investorID := custommiddleware.EffectiveID(r.Context())

	from, to, err := monthRange(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid month range", err.Error())
		return
	}

	isAdmin, err := h.groupService.IsGroupAdmin(investorID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveOverview.Error(), err.Error())
		return
	}

	if isAdmin {
		group, err := h.groupService.GetGroup(investorID)
		if err != nil {
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveOverview.Error(), err.Error())
			return
		}

		overview, err := h.overviewService.GroupOverview(r.Context(), group.Members, from, to)
		if err != nil {
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveOverview.Error(), err.Error())
			return
		}

		response.RespondJSON(w, http.StatusOK, overview)
		return
	}

	overview, err := h.overviewService.InvestorOverview(investorID, from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestorNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestorNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveOverview.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, overview)
}

// Periods handles GET requests for the ordered list of reporting months.
//
// Endpoint: GET /api/metrics/periods
// Response: 200 OK with array of YYYY-MM strings
// Error: 500 Internal Server Error if retrieval fails
func (h *MetricsHandler) Periods(w http.ResponseWriter, _ *http.Request) {
	periods, err := h.metricsService.GetPeriods()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve periods", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, periods)
}

// Allocation handles GET requests for the scaled allocation breakdown of
// the resolved view-as investor in a given month.
//
// Endpoint: GET /api/metrics/allocation?month=YYYY-MM
// Response: 200 OK with array of AllocationSlice
// Error: 400 Bad Request if the month is missing or invalid
// Error: 404 Not Found if the investor does not exist
// Error: 500 Internal Server Error if computation fails
func (h *MetricsHandler) Allocation(w http.ResponseWriter, r *http.Request) {
	investorID := custommiddleware.EffectiveID(r.Context())

	month := r.URL.Query().Get("month")
	if err := validation.ValidatePeriod(month); err != nil {
		response.RespondError(w, http.StatusBadRequest, "month must be in YYYY-MM format", err.Error())
		return
	}

	slices, err := h.metricsService.Allocation(investorID, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestorNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestorNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to compute allocation", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, slices)
}

// PortfolioROIMonthly handles GET requests for the resolved investor's
// monthly ROI series. Months without underlying data carry null, not zero.
//
// Endpoint: GET /api/portfolio/roi_monthly?from=YYYY-MM&to=YYYY-MM
// Response: 200 OK with array of MonthlyROIPoint
// Error: 400 Bad Request if the month range is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *MetricsHandler) PortfolioROIMonthly(w http.ResponseWriter, r *http.Request) {
	investorID := custommiddleware.EffectiveID(r.Context())

	from, to, err := monthRange(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid month range", err.Error())
		return
	}

	points, err := h.metricsService.MonthlyROI(investorID, from, to)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve ROI series", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, points)
}

// MarketROIMonthly handles GET requests for the cached benchmark monthly
// ROI series.
//
// Endpoint: GET /api/market/roi_monthly?symbol=SPY&from=YYYY-MM&to=YYYY-MM
// Response: 200 OK with array of BenchmarkPoint
// Error: 400 Bad Request if the month range is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *MetricsHandler) MarketROIMonthly(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		symbol = h.defaultSymbol
	}

	from, to, err := monthRange(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid month range", err.Error())
		return
	}

	series, err := h.benchmarkService.Series(symbol, fromKey(from), repository.MonthKey(to))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve benchmark series", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, series)
}

// ROIComparison handles GET requests for the month-zipped comparison of the
// resolved investor's ROI series against a benchmark. A month present in
// only one series carries null on the other side.
//
// Endpoint: GET /api/metrics/roi_comparison?symbol=SPY&from=YYYY-MM&to=YYYY-MM
// Response: 200 OK with array of ROIComparisonRow
// Error: 400 Bad Request if the month range is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *MetricsHandler) ROIComparison(w http.ResponseWriter, r *http.Request) {
	investorID := custommiddleware.EffectiveID(r.Context())

	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		symbol = h.defaultSymbol
	}

	from, to, err := monthRange(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid month range", err.Error())
		return
	}

	portfolio, err := h.metricsService.MonthlyROI(investorID, from, to)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve ROI series", err.Error())
		return
	}

	benchmark, err := h.benchmarkService.Series(symbol, fromKey(from), repository.MonthKey(to))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve benchmark series", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, service.ZipComparison(portfolio, benchmark))
}

// RefreshBenchmark handles POST requests to refetch a benchmark series from
// the market data provider. Overlapping refreshes for the same symbol keep
// only the most recently requested result.
//
// Endpoint: POST /api/market/refresh?symbol=SPY&from=YYYY-MM&to=YYYY-MM
// Response: 202 Accepted
// Error: 400 Bad Request if the month range is invalid
// Error: 502 Bad Gateway if the provider fetch fails
func (h *MetricsHandler) RefreshBenchmark(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		symbol = h.defaultSymbol
	}

	from, to, err := monthRange(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid month range", err.Error())
		return
	}
	if from.IsZero() {
		// Default refresh window: trailing five years.
		from = to.AddDate(-5, 0, 0)
	}

	if err := h.benchmarkService.Refresh(r.Context(), symbol, from, to); err != nil {
		response.RespondError(w, http.StatusBadGateway, "benchmark refresh failed", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusAccepted, nil)
}

// fromKey converts a possibly-zero range start into a month key; a zero
// time becomes the lowest possible key so the range means "all history".
func fromKey(from time.Time) string {
	if from.IsZero() {
		return "0000-00"
	}
	return repository.MonthKey(from)
}
