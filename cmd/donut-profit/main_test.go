package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/donut-profit/internal/params"
	"github.com/iwvelando/donut-profit/internal/profit"
)

func TestApplyEdits(t *testing.T) {
	p, err := applyEdits(params.Defaults(), []string{"donutPrice=3", "overhead = 150", "donutPrice=3.5"})
	if err != nil {
		t.Fatalf("applyEdits() error = %v", err)
	}
	if p.DonutPrice != 3.5 {
		t.Errorf("expected last edit to win, got %v", p.DonutPrice)
	}
	if p.Overhead != 150 {
		t.Errorf("expected overhead 150, got %v", p.Overhead)
	}
}

func TestApplyEditsErrors(t *testing.T) {
	tests := []struct {
		name string
		edit string
	}{
		{"Missing equals", "donutPrice"},
		{"Bad number", "donutPrice=cheap"},
		{"Unknown parameter", "sprinkles=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := applyEdits(params.Defaults(), []string{tt.edit}); err == nil {
				t.Fatalf("expected error for %q", tt.edit)
			}
		})
	}

	_, err := applyEdits(params.Defaults(), []string{"sprinkles=1"})
	if !errors.Is(err, params.ErrUnknownParameter) {
		t.Fatalf("expected ErrUnknownParameter, got %v", err)
	}
}

func TestLoadConfigurationFallsBackToDefaults(t *testing.T) {
	conf, usedDefaults, err := loadConfiguration(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("loadConfiguration() error = %v", err)
	}
	if !usedDefaults {
		t.Errorf("expected fallback to be reported")
	}
	if conf.Parameters != params.Defaults() {
		t.Fatalf("expected defaults, got %+v", conf.Parameters)
	}
}

func TestWriteResultToFile(t *testing.T) {
	result := profit.Evaluate(nil, params.Defaults())
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "profit.csv")
	if err := writeResult(result, "csv", csvPath); err != nil {
		t.Fatalf("writeResult(csv) error = %v", err)
	}
	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("failed to read CSV: %v", err)
	}
	if !strings.HasPrefix(string(data), `"donutsMade"`) {
		t.Errorf("unexpected CSV header: %s", strings.SplitN(string(data), "\n", 2)[0])
	}

	xlsxPath := filepath.Join(dir, "profit.xlsx")
	if err := writeResult(result, "xlsx", xlsxPath); err != nil {
		t.Fatalf("writeResult(xlsx) error = %v", err)
	}
	if info, err := os.Stat(xlsxPath); err != nil || info.Size() == 0 {
		t.Fatalf("expected non-empty workbook, err = %v", err)
	}
}
