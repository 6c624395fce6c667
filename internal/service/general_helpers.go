package service

import "math"

// RoundingPrecision is the multiplier used to round monetary values and
// percentages to two decimal places across the service layer.
const RoundingPrecision = 100.0

// round rounds a float64 value to two decimal places using the package RoundingPrecision constant.
// This function is used throughout the service layer to ensure consistent rounding of monetary
// values and derived percentages in API responses.
//
// The rounding uses the standard "round half up" approach via math.Round.
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}

// RatioPrecision is the multiplier used to round unitless ratios (MOIC) to
// three decimal places. Ratios carry more signal per digit than amounts, so
// they keep one place more than monetary values.
const RatioPrecision = 1000.0

// roundRatio rounds a ratio to three decimal places.
func roundRatio(value float64) float64 {
	return math.Round(value*RatioPrecision) / RatioPrecision
}
