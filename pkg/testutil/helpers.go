// Package testutil provides common utility functions for testing.
package testutil

import (
	"testing"

	"github.com/iwvelando/donut-profit/internal/params"
	"github.com/iwvelando/donut-profit/internal/profit"
)

// FindPoint finds the chart point at the given production volume.
// Returns a pointer to the point if found, nil otherwise.
func FindPoint(chart []profit.ChartPoint, donutsMade float64) *profit.ChartPoint {
	for i := range chart {
		if chart[i].DonutsMade == donutsMade {
			return &chart[i]
		}
	}
	return nil
}

// ParamsWith returns the default parameters with the given overrides applied,
// failing the test on an unknown name.
func ParamsWith(t testing.TB, overrides map[string]float64) params.Parameters {
	t.Helper()
	p, err := params.FromMap(params.Defaults(), overrides)
	if err != nil {
		t.Fatalf("invalid test parameters: %v", err)
	}
	return p
}
