// Package constants provides shared constants for the ration-forecast application.
package constants

// Nutrition constants
const (
	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// SolverTolerance is the tolerance applied when comparing solved values
	// against requirements or bounds
	SolverTolerance = 1e-6

	// IntakeDisplayThreshold is the solved intake below which a feed is
	// treated as unused for reporting purposes
	IntakeDisplayThreshold = 0.001

	// MinForageUtilizationFraction is the fraction of the daily dry-matter
	// intake limit used as the forage floor under the minimum-forage policy
	MinForageUtilizationFraction = 0.5

	// SupplementProteinFraction caps how much of the required protein may
	// come from a derived-bound supplement (at most one third)
	SupplementProteinFraction = 1.0 / 3.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"
)
