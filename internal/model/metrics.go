package model

import "time"

// PeriodBalance represents one investor's balances for a single reporting
// month. AsOfDate is normalized to the first day of the month in UTC.
// HasData is false for months the reporting pipeline produced no underlying
// data; such months still appear in series output, flagged as missing.
type PeriodBalance struct {
	ID               string    `json:"id"`
	InvestorID       string    `json:"investor_id"`
	AsOfDate         time.Time `json:"as_of_date"`
	BeginningBalance float64   `json:"beginning_balance"`
	EndingBalance    float64   `json:"ending_balance"`
	HasData          bool      `json:"has_data"`
}

// TimeSpan describes the period an overview covers.
// Years is (EndDate - StartDate) in days divided by 365.25.
type TimeSpan struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Years     float64   `json:"years"`
}

// InvestorOverview is the KPI set displayed on the investor overview page.
// IRRPct is nil when no annualized return can be derived (zero initial
// value or a zero-length time span).
type InvestorOverview struct {
	InvestorName string     `json:"investor_name"`
	InitialValue float64    `json:"initial_value"`
	CurrentValue float64    `json:"current_value"`
	ROIPct       float64    `json:"roi_pct"`
	MOIC         float64    `json:"moic"`
	IRRPct       *float64   `json:"irr_pct"`
	TimeSpan     *TimeSpan  `json:"time_span"`
	JoinDate     *time.Time `json:"join_date"`
}

// AllocationSlice is one category of an investor's holdings breakdown.
// Percent comes from the reporting pipeline; Value is computed against the
// overview's current total for chart display.
type AllocationSlice struct {
	Category string  `json:"category"`
	Percent  float64 `json:"percent"`
	Value    float64 `json:"value"`
}

// MonthlyROIPoint is one month of a ROI series. ROIPct is nil when the
// month has no usable balance data; Missing marks months the reporting
// pipeline explicitly flagged as having no underlying data.
type MonthlyROIPoint struct {
	Month   string   `json:"month"`
	ROIPct  *float64 `json:"roi_pct"`
	Missing bool     `json:"missing"`
}

// ROIComparisonRow zips the platform and benchmark series for one month.
// A side absent for that month carries nil, never zero.
type ROIComparisonRow struct {
	Month     string   `json:"month"`
	Portfolio *float64 `json:"portfolio"`
	Benchmark *float64 `json:"benchmark"`
	Missing   bool     `json:"missing"`
}

// BenchmarkPoint is one cached month of a market benchmark's ROI series.
type BenchmarkPoint struct {
	Symbol string  `json:"symbol"`
	Month  string  `json:"month"`
	ROIPct float64 `json:"roi_pct"`
}
