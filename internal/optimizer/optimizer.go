// Package optimizer searches one parameter's slider range for the value that
// maximizes expected daily profit.
package optimizer

import (
	"fmt"
	"math"

	"github.com/iwvelando/donut-profit/internal/params"
	"github.com/iwvelando/donut-profit/internal/profit"
	"github.com/iwvelando/donut-profit/pkg/constants"
	"github.com/iwvelando/donut-profit/pkg/format"
	"github.com/iwvelando/donut-profit/pkg/mathutil"
	"github.com/iwvelando/donut-profit/pkg/optimization"
	"go.uber.org/zap"
)

const valueEpsilon = 1e-9

// Options bounds the search. Zero Min, Max and Step fall back to the slider
// range of Field; an empty Field means donutsMade.
type Options struct {
	Field string  `json:"field,omitempty" yaml:"field,omitempty" mapstructure:"field"`
	Min   float64 `json:"min,omitempty" yaml:"min,omitempty" mapstructure:"min"`
	Max   float64 `json:"max,omitempty" yaml:"max,omitempty" mapstructure:"max"`
	Step  float64 `json:"step,omitempty" yaml:"step,omitempty" mapstructure:"step"`
}

// Runner performs the search.
type Runner struct {
	logger *zap.Logger
	field  string
	min    float64
	max    float64
	step   float64
	count  int
}

// NewRunner validates opts and constructs a Runner. The bounds are clamped to
// the field's domain and the search may not exceed
// constants.MaxOptimizerIterations candidates.
func NewRunner(logger *zap.Logger, opts Options) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	field := opts.Field
	if field == "" {
		field = params.DonutsMade
	}
	r, err := params.RangeFor(field)
	if err != nil {
		return nil, fmt.Errorf("optimizer: %w", err)
	}
	ceiling, err := params.Ceiling(r.Name)
	if err != nil {
		return nil, fmt.Errorf("optimizer: %w", err)
	}

	minVal, maxVal, step := r.Min, r.Max, r.Step
	if opts.Min != 0 || opts.Max != 0 {
		minVal, maxVal = opts.Min, opts.Max
	}
	if opts.Step != 0 {
		step = opts.Step
	}

	for _, v := range []float64{minVal, maxVal, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("optimizer: bounds must be finite, got min %v max %v step %v", minVal, maxVal, step)
		}
	}
	if step <= 0 {
		return nil, fmt.Errorf("optimizer: step must be positive, got %v", step)
	}
	if maxVal < minVal {
		return nil, fmt.Errorf("optimizer: max %v is below min %v", maxVal, minVal)
	}

	minVal = math.Max(minVal, 0)
	maxVal = math.Min(maxVal, ceiling)
	if maxVal < minVal {
		return nil, fmt.Errorf("optimizer: range [%v, %v] lies outside the domain of %s", opts.Min, opts.Max, r.Name)
	}

	span := math.Floor((maxVal-minVal)/step + valueEpsilon)
	if !(span < constants.MaxOptimizerIterations) {
		return nil, fmt.Errorf("optimizer: searching [%v, %v] in steps of %v exceeds %d candidates",
			minVal, maxVal, step, constants.MaxOptimizerIterations)
	}

	return &Runner{
		logger: logger,
		field:  r.Name,
		min:    minVal,
		max:    maxVal,
		step:   step,
		count:  int(span) + 1,
	}, nil
}

// Run scans [min, max] in step increments and returns the value with the
// highest expected daily profit. Ties keep the lowest value.
func (r *Runner) Run(p params.Parameters) (optimization.Summary, error) {
	original, err := p.Get(r.field)
	if err != nil {
		return optimization.Summary{}, err
	}

	originalProfit := profit.Calculate(p).ExpectedDailyProfit
	bestValue := math.NaN()
	bestProfit := math.Inf(-1)
	iterations := 0

	for i := 0; i < r.count; i++ {
		value := r.min + float64(i)*r.step
		candidate, err := p.Set(r.field, value)
		if err != nil {
			return optimization.Summary{}, err
		}
		expected := profit.Calculate(candidate).ExpectedDailyProfit
		iterations++
		if expected > bestProfit+valueEpsilon {
			bestValue = value
			bestProfit = expected
		}
	}

	if iterations == 0 {
		return optimization.Summary{}, fmt.Errorf("optimizer: no candidate of %s was evaluated", r.field)
	}

	summary := optimization.Summary{
		Field:            r.field,
		Original:         original,
		Value:            bestValue,
		Min:              r.min,
		Max:              r.max,
		Step:             r.step,
		OriginalProfit:   originalProfit,
		ExpectedProfit:   bestProfit,
		Improvement:      bestProfit - originalProfit,
		Iterations:       iterations,
		OriginalDisplay:  fmt.Sprintf("%v", mathutil.Round(original)),
		ValueDisplay:     fmt.Sprintf("%v", mathutil.Round(bestValue)),
		ImprovementLabel: format.Currency(bestProfit - originalProfit),
	}
	switch {
	case mathutil.WithinTolerance(summary.Improvement, 0, constants.CurrencyTolerance):
		summary.Notes = append(summary.Notes,
			fmt.Sprintf("current %s %v is already within a cent of the best candidate", r.field, original))
	case summary.Improvement < 0:
		summary.Notes = append(summary.Notes,
			fmt.Sprintf("current %s %v lies outside the searched range and beats every candidate", r.field, original))
	}

	r.logger.Info("optimizer searched parameter",
		zap.String("op", "optimizer.Run"),
		zap.String("field", r.field),
		zap.Float64("original", original),
		zap.Float64("optimized", bestValue),
		zap.Float64("originalProfit", originalProfit),
		zap.Float64("expectedProfit", bestProfit),
		zap.Int("iterations", iterations),
	)

	return summary, nil
}
