// Package constants provides shared constants for the donut-profit application.
package constants

import "time"

// Chart constants
const (
	// ChartStep is the production volume increment between chart points
	ChartStep = 25

	// ChartMinUpperBound is the smallest volume the chart always reaches
	ChartMinUpperBound = 1000.0

	// ChartUpperBoundFactor scales donutsMade to extend the chart past it
	ChartUpperBoundFactor = 1.5

	// ComparisonFrequencyOffset is added to the busy day frequency for the
	// comparison line, capped at MaxFrequency
	ComparisonFrequencyOffset = 0.2

	// MaxFrequency is the upper bound of any probability
	MaxFrequency = 1.0

	// MaxDonutsMade is the largest production volume accepted from outside.
	// It keeps the chart at most MaxDonutsMade*ChartUpperBoundFactor/ChartStep
	// points long.
	MaxDonutsMade = 100000.0

	// MaxOptimizerIterations caps the number of candidates one search evaluates
	MaxOptimizerIterations = 100000
)

// Financial constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatXLSX is the Excel workbook output format
	OutputFormatXLSX = "xlsx"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)
