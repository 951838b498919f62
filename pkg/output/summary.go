package output

import (
	"github.com/iwvelando/donut-profit/internal/profit"
	"github.com/iwvelando/donut-profit/pkg/format"
)

// SummaryLine is one row of the textual summary panel.
type SummaryLine struct {
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Display  string  `json:"display"`
	Tone     string  `json:"tone,omitempty"`
	Emphasis bool    `json:"emphasis,omitempty"`
}

// Summary lays out the metrics the way the summary panel shows them. Only
// profit lines carry a tone. Display groups thousands ("$1,000.00") where a
// plain two-decimal rendering would read "$1000.00"; Value keeps the
// unformatted amount for clients that want the latter.
func Summary(m profit.Metrics) []SummaryLine {
	return []SummaryLine{
		{Key: "totalDailyCost", Label: "Total Daily Cost", Value: m.TotalDailyCost, Display: format.Currency(m.TotalDailyCost)},
		{Key: "revenueNormal", Label: "Revenue (Normal Day)", Value: m.RevenueNormal, Display: format.Currency(m.RevenueNormal)},
		{Key: "revenueBusy", Label: "Revenue (Busy Day)", Value: m.RevenueBusy, Display: format.Currency(m.RevenueBusy)},
		{Key: "profitNormal", Label: "Profit (Normal Day)", Value: m.ProfitNormal, Display: format.Currency(m.ProfitNormal), Tone: format.Tone(m.ProfitNormal)},
		{Key: "profitBusy", Label: "Profit (Busy Day)", Value: m.ProfitBusy, Display: format.Currency(m.ProfitBusy), Tone: format.Tone(m.ProfitBusy)},
		{Key: "expectedDailyProfit", Label: "Expected Daily Profit", Value: m.ExpectedDailyProfit, Display: format.Currency(m.ExpectedDailyProfit), Tone: format.Tone(m.ExpectedDailyProfit), Emphasis: true},
		{Key: "breakEvenDonuts", Label: "Break-Even Donuts", Value: m.BreakEvenDonuts, Display: format.Whole(m.BreakEvenDonuts)},
	}
}
