// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/donut-profit/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsNegative reports whether a value is strictly below zero. Display code uses
// it to pick the loss highlight.
func IsNegative(val float64) bool {
	return val < 0
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// ToPercent converts a probability into a whole percentage.
func ToPercent(probability float64) float64 {
	return math.Round(probability * constants.PercentageMultiplier)
}
