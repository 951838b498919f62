// Package output provides utilities for formatting and displaying profit results.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/donut-profit/internal/params"
	"github.com/iwvelando/donut-profit/internal/profit"
	"github.com/iwvelando/donut-profit/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WritePretty writes the parameters, summary and chart table to w.
func WritePretty(w io.Writer, result profit.Result) error {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	b.WriteString("--- Parameters ---\n")
	for _, r := range params.Ranges() {
		v, _ := result.Parameters.Get(r.Name)
		_, _ = p.Fprintf(&b, "%-26s %v\n", r.Label+":", v)
	}

	b.WriteString("\n--- Summary ---\n")
	for _, line := range Summary(result.Metrics) {
		marker := ""
		if line.Tone == format.ToneNegative {
			marker = " (loss)"
		}
		fmt.Fprintf(&b, "%-22s %s%s\n", line.Label+":", line.Display, marker)
	}

	b.WriteString("\n--- Profit vs. Donuts Made ---\n")
	fmt.Fprintf(&b, "Donuts | %s | %s\n", result.Labels.CurrentFreq, result.Labels.HigherFreq)
	fmt.Fprintf(&b, "______ | %s | %s\n", underline(result.Labels.CurrentFreq), underline(result.Labels.HigherFreq))
	for _, pt := range result.Chart {
		_, _ = p.Fprintf(&b, "%6.0f | $%.0f | $%.0f\n", pt.DonutsMade, pt.ProfitCurrentFreq, pt.ProfitHigherFreq)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func underline(s string) string {
	return strings.Repeat("_", len(s))
}

// CsvString returns the chart series in comma-separated value format.
func CsvString(result profit.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, `"donutsMade","profitCurrentFreq (%s)","profitHigherFreq (%s)"`,
		result.Labels.CurrentFreq, result.Labels.HigherFreq)
	b.WriteString("\n")
	for _, pt := range result.Chart {
		fmt.Fprintf(&b, `"%.0f","%.0f","%.0f"`, pt.DonutsMade, pt.ProfitCurrentFreq, pt.ProfitHigherFreq)
		b.WriteString("\n")
	}
	return b.String()
}

// WriteCSV writes CsvString(result) to w.
func WriteCSV(w io.Writer, result profit.Result) error {
	_, err := io.WriteString(w, CsvString(result))
	return err
}

// Report is the JSON document written by WriteJSON.
type Report struct {
	Parameters params.Parameters   `json:"parameters"`
	Metrics    profit.Metrics      `json:"metrics"`
	Summary    []SummaryLine       `json:"summary"`
	Chart      []profit.ChartPoint `json:"chart"`
	Labels     profit.ChartLabels  `json:"labels"`
}

// NewReport assembles the JSON report for result.
func NewReport(result profit.Result) Report {
	return Report{
		Parameters: result.Parameters,
		Metrics:    result.Metrics,
		Summary:    Summary(result.Metrics),
		Chart:      result.Chart,
		Labels:     result.Labels,
	}
}

// WriteJSON writes the indented JSON report to w.
func WriteJSON(w io.Writer, result profit.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewReport(result))
}
