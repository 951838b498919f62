// Package profit computes the daily financial metrics of the shop and the
// profit-vs-volume chart series from a parameter set.
package profit

import (
	"fmt"
	"math"
	"time"

	"github.com/iwvelando/donut-profit/internal/params"
	"github.com/iwvelando/donut-profit/pkg/constants"
	"github.com/iwvelando/donut-profit/pkg/mathutil"
	"go.uber.org/zap"
)

// Metrics holds the summary figures derived from one parameter set.
type Metrics struct {
	TotalDailyCost      float64 `json:"totalDailyCost"`
	RevenueNormal       float64 `json:"revenueNormal"`
	RevenueBusy         float64 `json:"revenueBusy"`
	ProfitNormal        float64 `json:"profitNormal"`
	ProfitBusy          float64 `json:"profitBusy"`
	ExpectedDailyProfit float64 `json:"expectedDailyProfit"`
	BreakEvenDonuts     float64 `json:"breakEvenDonuts"`
}

// ChartPoint is the expected profit at one production volume.
type ChartPoint struct {
	DonutsMade        float64 `json:"donutsMade"`
	ProfitCurrentFreq float64 `json:"profitCurrentFreq"`
	ProfitHigherFreq  float64 `json:"profitHigherFreq"`
}

// ChartLabels names the two chart lines.
type ChartLabels struct {
	CurrentFreq string `json:"currentFreq"`
	HigherFreq  string `json:"higherFreq"`
}

// Result bundles everything a front end renders after an edit.
type Result struct {
	Parameters params.Parameters `json:"parameters"`
	Metrics    Metrics           `json:"metrics"`
	Chart      []ChartPoint      `json:"chart"`
	Labels     ChartLabels       `json:"labels"`
}

type scenario struct {
	totalDailyCost float64
	revenueNormal  float64
	revenueBusy    float64
	profitNormal   float64
	profitBusy     float64
}

// at evaluates the cost and both demand scenarios with volume units produced.
func at(p params.Parameters, volume float64) scenario {
	var s scenario
	s.totalDailyCost = p.IngredientCost*volume + p.LaborCost*p.LaborHours + p.Overhead
	s.revenueNormal = p.DonutPrice * math.Min(volume, p.NormalSales)
	s.revenueBusy = p.DonutPrice * math.Min(volume, p.BusySales)
	s.profitNormal = s.revenueNormal - s.totalDailyCost
	s.profitBusy = s.revenueBusy - s.totalDailyCost
	return s
}

func (s scenario) expected(frequency float64) float64 {
	return (1-frequency)*s.profitNormal + frequency*s.profitBusy
}

// Calculate derives the summary metrics for p.
func Calculate(p params.Parameters) Metrics {
	s := at(p, p.DonutsMade)

	breakEven := 0.0
	if p.DonutPrice > 0 {
		breakEven = math.Ceil(s.totalDailyCost / p.DonutPrice)
	}

	return Metrics{
		TotalDailyCost:      s.totalDailyCost,
		RevenueNormal:       s.revenueNormal,
		RevenueBusy:         s.revenueBusy,
		ProfitNormal:        s.profitNormal,
		ProfitBusy:          s.profitBusy,
		ExpectedDailyProfit: s.expected(p.BusyDayFrequency),
		BreakEvenDonuts:     breakEven,
	}
}

// ComparisonFrequency is the busy day frequency of the chart's comparison line.
func ComparisonFrequency(frequency float64) float64 {
	return math.Min(constants.MaxFrequency, frequency+constants.ComparisonFrequencyOffset)
}

// UpperBound is the largest production volume the chart may reach. It never
// exceeds the chart of constants.MaxDonutsMade, whatever p holds.
func UpperBound(p params.Parameters) float64 {
	upper := p.DonutsMade * constants.ChartUpperBoundFactor
	if !(upper > constants.ChartMinUpperBound) {
		return constants.ChartMinUpperBound
	}
	return math.Min(upper, constants.MaxDonutsMade*constants.ChartUpperBoundFactor)
}

// Chart builds the expected profit curve from zero up to UpperBound in
// ChartStep increments. Profits are rounded to whole dollars.
func Chart(p params.Parameters) []ChartPoint {
	upper := UpperBound(p)
	higher := ComparisonFrequency(p.BusyDayFrequency)

	n := int(math.Floor(upper / constants.ChartStep))
	points := make([]ChartPoint, 0, n+1)
	for i := 0; i <= n; i++ {
		volume := float64(i * constants.ChartStep)
		s := at(p, volume)
		points = append(points, ChartPoint{
			DonutsMade:        volume,
			ProfitCurrentFreq: math.Round(s.expected(p.BusyDayFrequency)),
			ProfitHigherFreq:  math.Round(s.expected(higher)),
		})
	}
	return points
}

// Labels returns the legend names of the two chart lines.
func Labels(p params.Parameters) ChartLabels {
	return ChartLabels{
		CurrentFreq: frequencyLabel(p.BusyDayFrequency),
		HigherFreq:  frequencyLabel(ComparisonFrequency(p.BusyDayFrequency)),
	}
}

func frequencyLabel(frequency float64) string {
	return fmt.Sprintf("Expected Profit (at %.0f%% busy freq.)", mathutil.ToPercent(frequency))
}

// Evaluate computes the metrics, chart and labels for p.
func Evaluate(logger *zap.Logger, p params.Parameters) Result {
	if logger == nil {
		logger = zap.NewNop()
	}

	start := time.Now()
	result := Result{
		Parameters: p,
		Metrics:    Calculate(p),
		Chart:      Chart(p),
		Labels:     Labels(p),
	}

	logger.Debug("profit evaluated",
		zap.String("op", "profit.Evaluate"),
		zap.Float64("expectedDailyProfit", result.Metrics.ExpectedDailyProfit),
		zap.Float64("breakEvenDonuts", result.Metrics.BreakEvenDonuts),
		zap.Int("chartPoints", len(result.Chart)),
		zap.Duration("duration", time.Since(start)),
	)

	return result
}
