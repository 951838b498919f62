package integration

import (
	"testing"
	"time"

	"github.com/iwvelando/donut-profit/internal/optimizer"
	"github.com/iwvelando/donut-profit/internal/params"
	"github.com/iwvelando/donut-profit/internal/profit"
	"go.uber.org/zap"
)

// TestPerformance checks that a full evaluation at the largest slider values
// stays well within an interactive budget.
func TestPerformance(t *testing.T) {
	logger := zap.NewNop()
	p, _ := params.Defaults().Set(params.DonutsMade, 1500)

	start := time.Now()
	for i := 0; i < 1000; i++ {
		result := profit.Evaluate(logger, p)
		if len(result.Chart) != 91 {
			t.Fatalf("expected 91 chart points, got %d", len(result.Chart))
		}
	}
	elapsed := time.Since(start)

	if elapsed > 2*time.Second {
		t.Errorf("1000 evaluations took %v", elapsed)
	}
	t.Logf("1000 evaluations completed in %v", elapsed)
}

func BenchmarkEvaluate(b *testing.B) {
	logger := zap.NewNop()
	p := params.Defaults()
	for i := 0; i < b.N; i++ {
		profit.Evaluate(logger, p)
	}
}

func BenchmarkChartLargest(b *testing.B) {
	p, _ := params.Defaults().Set(params.DonutsMade, 1500)
	for i := 0; i < b.N; i++ {
		profit.Chart(p)
	}
}

func BenchmarkOptimizer(b *testing.B) {
	runner, err := optimizer.NewRunner(zap.NewNop(), optimizer.Options{})
	if err != nil {
		b.Fatalf("NewRunner() error = %v", err)
	}
	p := params.Defaults()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := runner.Run(p); err != nil {
			b.Fatalf("Run() error = %v", err)
		}
	}
}
