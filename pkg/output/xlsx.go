package output

import (
	"fmt"

	"github.com/iwvelando/donut-profit/internal/params"
	"github.com/iwvelando/donut-profit/internal/profit"
	"github.com/iwvelando/donut-profit/pkg/format"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the exported workbook.
const (
	SummarySheet = "Summary"
	ChartSheet   = "Chart"
)

// Workbook builds an Excel workbook with the parameters and summary on one
// sheet and the chart series on another.
func Workbook(result profit.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename summary sheet: %w", err)
	}
	if _, err := f.NewSheet(ChartSheet); err != nil {
		return nil, fmt.Errorf("failed to create chart sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	lossStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Color: "#C53030"},
		NumFmt: 4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create loss style: %w", err)
	}
	gainStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Color: "#2F855A"},
		NumFmt: 4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gain style: %w", err)
	}

	rows := [][]interface{}{{"Parameter", "Value"}}
	for _, r := range params.Ranges() {
		v, _ := result.Parameters.Get(r.Name)
		rows = append(rows, []interface{}{r.Label, v})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Metric", "Value"})
	summaryStart := len(rows) + 1
	lines := Summary(result.Metrics)
	for _, line := range lines {
		rows = append(rows, []interface{}{line.Label, line.Value})
	}
	if err := writeRows(f, SummarySheet, rows); err != nil {
		return nil, err
	}
	_ = f.SetRowStyle(SummarySheet, 1, 1, headerStyle)
	_ = f.SetRowStyle(SummarySheet, summaryStart-1, summaryStart-1, headerStyle)
	for i, line := range lines {
		if line.Tone == "" {
			continue
		}
		style := gainStyle
		if line.Tone == format.ToneNegative {
			style = lossStyle
		}
		cell, _ := excelize.CoordinatesToCellName(2, summaryStart+i)
		_ = f.SetCellStyle(SummarySheet, cell, cell, style)
	}
	_ = f.SetColWidth(SummarySheet, "A", "A", 30)
	_ = f.SetColWidth(SummarySheet, "B", "B", 15)

	chartRows := [][]interface{}{{"Donuts Made", result.Labels.CurrentFreq, result.Labels.HigherFreq}}
	for _, pt := range result.Chart {
		chartRows = append(chartRows, []interface{}{pt.DonutsMade, pt.ProfitCurrentFreq, pt.ProfitHigherFreq})
	}
	if err := writeRows(f, ChartSheet, chartRows); err != nil {
		return nil, err
	}
	_ = f.SetRowStyle(ChartSheet, 1, 1, headerStyle)
	_ = f.SetColWidth(ChartSheet, "A", "A", 15)
	_ = f.SetColWidth(ChartSheet, "B", "C", 40)

	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

// WriteXLSX saves the workbook for result at path.
func WriteXLSX(path string, result profit.Result) error {
	f, err := Workbook(result)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}
