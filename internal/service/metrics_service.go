package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/ba3ai/clarus-backend/internal/model"
	"github.com/ba3ai/clarus-backend/internal/repository"
)

// placeholderCategory is the neutral slice emitted when an allocation
// breakdown has no positive percentages, so the chart renders a ring
// rather than nothing.
const placeholderCategory = "Unallocated"

// MetricsService builds the chart-ready metric shapes: the reporting period
// list, the scaled allocation breakdown, and the month-keyed ROI series.
type MetricsService struct {
	metricsRepo     *repository.MetricsRepository
	overviewService *OverviewService
}

// NewMetricsService creates a new MetricsService with the provided dependencies.
func NewMetricsService(
	metricsRepo *repository.MetricsRepository,
	overviewService *OverviewService,
) *MetricsService {
	return &MetricsService{
		metricsRepo:     metricsRepo,
		overviewService: overviewService,
	}
}

// GetPeriods returns the ordered list of valid reporting months.
func (s *MetricsService) GetPeriods() ([]string, error) {
	return s.metricsRepo.GetPeriods()
}

// Allocation returns an investor's holdings breakdown for a month, with each
// category's percentage scaled into a dollar amount against the investor's
// current total as of that month: value = round(total * percent / 100, 2).
//
// Slices with a non-positive scaled value are dropped. If no slice has a
// positive percentage, a single neutral placeholder slice worth the total
// is returned instead.
func (s *MetricsService) Allocation(investorID, month string) ([]model.AllocationSlice, error) {
	asOf, err := repository.ParseMonth(month)
	if err != nil {
		return nil, err
	}

	// Current total as of the requested month: overview over all history
	// up to and including that month.
	overview, err := s.overviewService.InvestorOverview(investorID, time.Time{}, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to compute current total: %w", err)
	}
	total := overview.CurrentValue

	slices, err := s.metricsRepo.GetAllocation(investorID, month)
	if err != nil {
		return nil, err
	}

	scaled := []model.AllocationSlice{}
	for _, slice := range slices {
		value := round(total * slice.Percent / 100)
		if value <= 0 {
			continue
		}
		scaled = append(scaled, model.AllocationSlice{
			Category: slice.Category,
			Percent:  slice.Percent,
			Value:    value,
		})
	}

	if len(scaled) == 0 {
		scaled = append(scaled, model.AllocationSlice{
			Category: placeholderCategory,
			Percent:  100,
			Value:    round(total),
		})
	}

	return scaled, nil
}

// MonthlyROI builds an investor's monthly ROI series over the inclusive
// [from, to] month range. Each month's ROI is derived from its balance
// record: (ending - beginning) / beginning * 100.
//
// Months flagged by the reporting pipeline as having no underlying data are
// carried through with a nil value and missing set to true, never as zero.
// Months with a zero beginning balance also carry a nil value.
func (s *MetricsService) MonthlyROI(investorID string, from, to time.Time) ([]model.MonthlyROIPoint, error) {
	balances, err := s.metricsRepo.GetPeriodBalances(investorID, from, to)
	if err != nil {
		return nil, err
	}

	points := make([]model.MonthlyROIPoint, 0, len(balances))
	for _, b := range balances {
		point := model.MonthlyROIPoint{
			Month:   repository.MonthKey(b.AsOfDate),
			Missing: !b.HasData,
		}
		if b.HasData && b.BeginningBalance != 0 {
			roi := round((b.EndingBalance - b.BeginningBalance) / b.BeginningBalance * 100)
			point.ROIPct = &roi
		}
		points = append(points, point)
	}

	return points, nil
}

// ZipComparison merges the platform and benchmark monthly ROI series into
// one ordered list keyed by month label. A month present in only one series
// carries nil on the other side rather than zero; the missing flag from the
// platform series is carried through.
func ZipComparison(portfolio []model.MonthlyROIPoint, benchmark []model.BenchmarkPoint) []model.ROIComparisonRow {
	rowsByMonth := map[string]*model.ROIComparisonRow{}

	for _, p := range portfolio {
		rowsByMonth[p.Month] = &model.ROIComparisonRow{
			Month:     p.Month,
			Portfolio: p.ROIPct,
			Missing:   p.Missing,
		}
	}

	for _, b := range benchmark {
		row, exists := rowsByMonth[b.Month]
		if !exists {
			row = &model.ROIComparisonRow{Month: b.Month}
			rowsByMonth[b.Month] = row
		}
		roi := round(b.ROIPct)
		row.Benchmark = &roi
	}

	months := make([]string, 0, len(rowsByMonth))
	for month := range rowsByMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	rows := make([]model.ROIComparisonRow, 0, len(months))
	for _, month := range months {
		rows = append(rows, *rowsByMonth[month])
	}

	return rows
}
