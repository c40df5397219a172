// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/shepline/ration-forecast/pkg/constants"
)

// IsZero checks if a value is effectively zero (within solver tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.SolverTolerance
}

// IsPositive checks if a value is positive (greater than solver tolerance)
func IsPositive(val float64) bool {
	return val > constants.SolverTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// AtLeast checks whether val meets or exceeds required, allowing the
// specified tolerance below the requirement
func AtLeast(val, required, tolerance float64) bool {
	return val >= required-tolerance
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}
