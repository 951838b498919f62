package integration

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iwvelando/donut-profit/internal/config"
	"github.com/iwvelando/donut-profit/internal/optimizer"
	"github.com/iwvelando/donut-profit/internal/params"
	"github.com/iwvelando/donut-profit/internal/profit"
	"github.com/iwvelando/donut-profit/pkg/constants"
	"github.com/iwvelando/donut-profit/pkg/mathutil"
	"github.com/iwvelando/donut-profit/pkg/output"
	"github.com/iwvelando/donut-profit/pkg/testutil"
	"go.uber.org/zap"
)

// TestMainIntegrationBaseline runs the configuration through the same steps
// main() does and checks the worked example.
func TestMainIntegrationBaseline(t *testing.T) {
	logger := zap.NewNop()

	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if err := conf.Parameters.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Fatalf("unexpected warnings %v", warnings)
	}

	result := profit.Evaluate(logger, conf.Parameters)

	expected := map[string]struct {
		actual   float64
		expected float64
	}{
		"totalDailyCost":      {result.Metrics.TotalDailyCost, 570},
		"revenueNormal":       {result.Metrics.RevenueNormal, 1000},
		"revenueBusy":         {result.Metrics.RevenueBusy, 1250},
		"profitNormal":        {result.Metrics.ProfitNormal, 430},
		"profitBusy":          {result.Metrics.ProfitBusy, 680},
		"expectedDailyProfit": {result.Metrics.ExpectedDailyProfit, 480},
		"breakEvenDonuts":     {result.Metrics.BreakEvenDonuts, 228},
	}
	for name, v := range expected {
		if !mathutil.WithinTolerance(v.actual, v.expected, constants.CurrencyTolerance) {
			t.Errorf("%s = %v, expected %v", name, v.actual, v.expected)
		}
	}

	if len(result.Chart) != 41 {
		t.Fatalf("expected 41 chart points, got %d", len(result.Chart))
	}
	if pt := testutil.FindPoint(result.Chart, 1000); pt == nil || pt.ProfitCurrentFreq != 280 || pt.ProfitHigherFreq != 380 {
		t.Errorf("unexpected point at 1000: %+v", pt)
	}

	var buf bytes.Buffer
	if err := output.WritePretty(&buf, result); err != nil {
		t.Fatalf("WritePretty() error = %v", err)
	}
	if !strings.Contains(buf.String(), "$480.00") {
		t.Errorf("pretty output missing expected daily profit")
	}

	runner, err := optimizer.NewRunner(logger, conf.Optimizer)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	summary, err := runner.Run(conf.Parameters)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Value != 400 {
		t.Errorf("expected optimal volume 400, got %v", summary.Value)
	}
}

// TestSliderSession replays a sequence of single-field edits and checks that
// each evaluation depends only on the current parameter set.
func TestSliderSession(t *testing.T) {
	logger := zap.NewNop()
	p := params.Defaults()

	edits := []struct {
		name  string
		value float64
	}{
		{params.DonutPrice, 3},
		{params.BusyDayFrequency, 0.5},
		{params.DonutsMade, 800},
		{params.DonutPrice, 2.5},
		{params.BusyDayFrequency, 0.2},
		{params.DonutsMade, 500},
	}

	var err error
	for _, edit := range edits {
		p, err = p.Set(edit.name, edit.value)
		if err != nil {
			t.Fatalf("Set(%s) error = %v", edit.name, err)
		}
		fresh := profit.Evaluate(logger, p)
		again := profit.Evaluate(logger, p)
		if fresh.Metrics != again.Metrics || len(fresh.Chart) != len(again.Chart) {
			t.Fatalf("evaluation after %s edit is not repeatable", edit.name)
		}
	}

	// Back at the defaults the results match a fresh session.
	if p != params.Defaults() {
		t.Fatalf("expected defaults after reverting edits, got %+v", p)
	}
	final := profit.Evaluate(logger, p)
	baseline := profit.Evaluate(logger, params.Defaults())
	if final.Metrics != baseline.Metrics {
		t.Fatalf("metrics differ after reverting edits: %+v vs %+v", final.Metrics, baseline.Metrics)
	}
}
